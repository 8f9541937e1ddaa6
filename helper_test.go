package crowdstreet

import (
	"errors"
	"strconv"
	"testing"
)

// sliceSource is a RowSource over an in-memory slice of rows.
type sliceSource []Row

func (s sliceSource) Rows() ([]Row, error) { return s, nil }

// failingSource is a RowSource whose read always fails.
type failingSource struct{}

func (failingSource) Rows() ([]Row, error) {
	return nil, &SourceReadError{Name: "failing", Err: errors.New("boom")}
}

// sliceSink is a RowSink capturing what was written.
type sliceSink struct {
	header []string
	rows   [][]string
}

func (s *sliceSink) WriteAll(header []string, rows [][]string) error {
	s.header = header
	s.rows = rows
	return nil
}

// contributionRow builds a raw Capital Contribution report row.
func contributionRow(id int, entity, sponsor, offering, desc, date, amount string) Row {
	return Row{
		colEntity:             entity,
		colSponsor:            sponsor,
		colOffering:           offering,
		colContributionDesc:   desc,
		colContributionID:     strconv.Itoa(id),
		colContributionDate:   date,
		colContributionAmount: amount,
	}
}

// distributionRow builds a raw Distributions report row.
func distributionRow(id int, entity, sponsor, offering, date, total, onCapital, ofCapital string) Row {
	return Row{
		colEntity:            entity,
		colSponsor:           sponsor,
		colOffering:          offering,
		colDistributionDesc:  "Quarterly distribution",
		colDistributionID:    strconv.Itoa(id),
		colPeriodEnd:         date,
		colDistributionTotal: total,
		colReturnOnCapital:   onCapital,
		colReturnOfCapital:   ofCapital,
		colWithhold:          "",
	}
}

// newTestPortfolio loads a minimal account: one E1/S1/O1 contribution of
// 1000 on 2022-03-01 and one distribution of 250 (200 of capital, 50 on
// capital) on 2022-06-01.
func newTestPortfolio(t *testing.T) *Portfolio {
	t.Helper()
	p, err := New(sliceSource{
		contributionRow(1, "E1", "S1", "O1", "Initial funding", "2022-03-01", "1000"),
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

// fixed is a shorthand asserting a Money's 2-decimal rendering.
func fixed(t *testing.T, name string, got Money, want string) {
	t.Helper()
	if got.StringFixed() != want {
		t.Errorf("%s = %s, want %s", name, got.StringFixed(), want)
	}
}
