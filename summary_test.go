package crowdstreet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"reflect"
	"testing"
)

// threeOfferings is a ledger spanning two entities and three offerings.
func threeOfferings(t *testing.T) *Portfolio {
	t.Helper()
	p, err := New(sliceSource{
		contributionRow(1, "E1", "S1", "O1", "Initial funding", "2022-03-01", "1000"),
		contributionRow(2, "E2", "S2", "O2", "Initial funding", "2022-04-01", "500"),
		contributionRow(3, "E1", "S1", "O3", "Initial funding", "2022-05-01", "700"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = p.ReadDistributions(sliceSource{
		distributionRow(10, "E1", "S1", "O1", "2022-06-01", "250", "50", "200"),
	})
	if err != nil {
		t.Fatalf("ReadDistributions() error = %v", err)
	}
	return p
}

func TestPortfolio_SummaryRowCounts(t *testing.T) {
	p := threeOfferings(t)

	tests := []struct {
		v    Verbosity
		want int
	}{
		{WholePortfolio, 1},
		{PerEntity, 2},
		{PerOffering, 3},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			if got := len(p.Summary(tt.v, Filter{})); got != tt.want {
				t.Errorf("Summary(%s) = %d rows, want %d", tt.v, got, tt.want)
			}
		})
	}

	// Nothing matching, nothing written.
	if got := len(p.Summary(WholePortfolio, Filter{Start: MustParse("2030-01-01")})); got != 0 {
		t.Errorf("Summary on empty match = %d rows, want 0", got)
	}
}

func TestPortfolio_SummaryWholePortfolio(t *testing.T) {
	p := threeOfferings(t)

	rows := p.Summary(WholePortfolio, Filter{})
	if len(rows) != 1 {
		t.Fatalf("Summary() = %d rows, want 1", len(rows))
	}
	r := rows[0]
	// Group-key cells blank when the verbosity does not break them down.
	if r.Entity != "" || r.Sponsor != "" || r.Offering != "" {
		t.Errorf("group key = %q/%q/%q, want blanks", r.Entity, r.Sponsor, r.Offering)
	}
	fixed(t, "CapitalContributed", r.CapitalContributed, "2200.00")
	fixed(t, "CapitalBalance", r.CapitalBalance, "2000.00")
	fixed(t, "Distributions", r.Distributions, "250.00")
}

func TestPortfolio_SummaryGroupsInFirstSeenOrder(t *testing.T) {
	p := threeOfferings(t)

	rows := p.Summary(PerOffering, Filter{})
	var got []string
	for _, r := range rows {
		got = append(got, r.Offering)
	}
	// First-seen order of the filtered ledger, never sorted.
	if want := []string{"O1", "O2", "O3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("group order = %v, want %v", got, want)
	}

	rows = p.Summary(PerOffering, Filter{Entity: "E1"})
	got = nil
	for _, r := range rows {
		got = append(got, r.Offering)
	}
	if want := []string{"O1", "O3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("filtered group order = %v, want %v", got, want)
	}
}

func TestPortfolio_SummaryKeepsGroupFiltersAtLowVerbosity(t *testing.T) {
	p := threeOfferings(t)

	// E1 holds O1 (1000) and O3 (700); E2's 500 must stay out of the
	// aggregates even though verbosity 0 does not group by entity.
	rows := p.Summary(WholePortfolio, Filter{Entity: "E1"})
	if len(rows) != 1 {
		t.Fatalf("Summary() = %d rows, want 1", len(rows))
	}
	fixed(t, "CapitalContributed", rows[0].CapitalContributed, "1700.00")
	fixed(t, "Distributions", rows[0].Distributions, "250.00")

	// Verbosity 1 groups by entity only; the offering constraint still holds.
	rows = p.Summary(PerEntity, Filter{Offering: "O3"})
	if len(rows) != 1 {
		t.Fatalf("Summary() = %d rows, want 1", len(rows))
	}
	if rows[0].Entity != "E1" {
		t.Errorf("Entity = %q, want E1", rows[0].Entity)
	}
	fixed(t, "CapitalContributed", rows[0].CapitalContributed, "700.00")
}

func TestPortfolio_SummaryPerOfferingMetrics(t *testing.T) {
	p := threeOfferings(t)

	rows := p.Summary(PerOffering, Filter{Offering: "O1"})
	if len(rows) != 1 {
		t.Fatalf("Summary() = %d rows, want 1", len(rows))
	}
	r := rows[0]
	if r.Entity != "E1" || r.Sponsor != "S1" || r.Offering != "O1" {
		t.Errorf("group key = %q/%q/%q", r.Entity, r.Sponsor, r.Offering)
	}
	fixed(t, "CapitalCommitted", r.CapitalCommitted, "1000.00")
	fixed(t, "CapitalContributed", r.CapitalContributed, "1000.00")
	fixed(t, "CapitalBalance", r.CapitalBalance, "800.00")
	fixed(t, "Distributions", r.Distributions, "250.00")
	fixed(t, "ReturnOnCapital", r.ReturnOnCapital, "50.00")
	fixed(t, "ReturnOfCapital", r.ReturnOfCapital, "200.00")
}

func TestPortfolio_SaveSummary(t *testing.T) {
	p := threeOfferings(t)

	sink := &sliceSink{}
	n, err := p.SaveSummary(sink, PerEntity, Filter{})
	if err != nil {
		t.Fatalf("SaveSummary() error = %v", err)
	}
	if n != 2 {
		t.Errorf("SaveSummary() = %d data rows, want 2", n)
	}
	if !reflect.DeepEqual(sink.header, SummaryColumns) {
		t.Errorf("header = %v, want %v", sink.header, SummaryColumns)
	}
	if len(sink.rows) != n {
		t.Errorf("sink received %d rows, reported %d", len(sink.rows), n)
	}
}

// TestSummary_RoundTrip writes the summary through a delimited sink and
// re-parses it: every numeric cell must reproduce the in-memory 2-decimal
// rendering exactly.
func TestSummary_RoundTrip(t *testing.T) {
	p := threeOfferings(t)

	var buf bytes.Buffer
	if _, err := p.SaveSummary(NewDelimitedSink("buffer", &buf, '\t'), PerOffering, Filter{}); err != nil {
		t.Fatalf("SaveSummary() error = %v", err)
	}

	cr := csv.NewReader(&buf)
	cr.Comma = '\t'
	records, err := cr.ReadAll()
	if err != nil {
		t.Fatalf("re-parsing summary: %v", err)
	}
	if len(records) != 4 { // header + 3 groups
		t.Fatalf("re-parsed %d records, want 4", len(records))
	}

	want := p.Summary(PerOffering, Filter{})
	for i, r := range want {
		if got := records[i+1]; !reflect.DeepEqual(got, r.Record()) {
			t.Errorf("row %d = %v, want %v", i, got, r.Record())
		}
	}
}

func TestPortfolio_SaveTransactions(t *testing.T) {
	p := threeOfferings(t)

	sink := &sliceSink{}
	n, err := p.SaveTransactions(sink, Filter{Entity: "E1"})
	if err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}
	if n != 3 { // two contributions and one distribution
		t.Errorf("SaveTransactions() = %d rows, want 3", n)
	}
	if !reflect.DeepEqual(sink.header, TransactionColumns) {
		t.Errorf("header = %v, want %v", sink.header, TransactionColumns)
	}
}

func TestParseVerbosity(t *testing.T) {
	for v := 0; v <= 2; v++ {
		if _, err := ParseVerbosity(v); err != nil {
			t.Errorf("ParseVerbosity(%d) error = %v", v, err)
		}
	}
	if _, err := ParseVerbosity(3); err == nil {
		t.Error("ParseVerbosity(3) should fail")
	}
}

func ExamplePortfolio_SaveSummary() {
	p, _ := New(sliceSource{
		contributionRow(1, "E1", "S1", "O1", "Initial funding", "2022-03-01", "1000"),
	})
	_ = p.ReadDistributions(sliceSource{
		distributionRow(10, "E1", "S1", "O1", "2022-06-01", "250", "50", "200"),
	})

	n, _ := p.SaveSummary(NewDelimitedSink("stdout", os.Stdout, ','), PerOffering, Filter{})
	fmt.Println(n, "row(s)")
	// Output:
	// Entity,Sponsor,Offering,Capital Committed,Capital Contributed,Capital Balance,Distributions,Return on Capital,Return of Capital
	// E1,S1,O1,1000.00,1000.00,800.00,250.00,50.00,200.00
	// 1 row(s)
}
