package crowdstreet

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Verbosity selects the grouping level of a summary table.
type Verbosity int

const (
	// WholePortfolio rolls the whole portfolio into a single row.
	WholePortfolio Verbosity = iota
	// PerEntity writes one row per distinct investing entity.
	PerEntity
	// PerOffering writes one row per distinct (entity, sponsor, offering)
	// triple. This is the Crowdstreet dashboard's own granularity.
	PerOffering
)

// ParseVerbosity converts the 0/1/2 CLI notion into a Verbosity.
func ParseVerbosity(v int) (Verbosity, error) {
	if v < int(WholePortfolio) || v > int(PerOffering) {
		return 0, fmt.Errorf("unknown verbosity %d: want 0, 1 or 2", v)
	}
	return Verbosity(v), nil
}

// SummaryColumns is the fixed header of the summary table.
var SummaryColumns = []string{
	"Entity",
	"Sponsor",
	"Offering",
	"Capital Committed",
	"Capital Contributed",
	"Capital Balance",
	"Distributions",
	"Return on Capital",
	"Return of Capital",
}

// SummaryRow is one aggregate row of the summary table. Group-key fields
// that the verbosity does not break down stay blank.
type SummaryRow struct {
	Entity   string
	Sponsor  string
	Offering string

	CapitalCommitted   Money
	CapitalContributed Money
	CapitalBalance     Money
	Distributions      Money
	ReturnOnCapital    Money
	ReturnOfCapital    Money
}

// Record renders the row in [SummaryColumns] order, monetary cells fixed to
// 2 decimals.
func (r SummaryRow) Record() []string {
	return []string{
		r.Entity,
		r.Sponsor,
		r.Offering,
		r.CapitalCommitted.StringFixed(),
		r.CapitalContributed.StringFixed(),
		r.CapitalBalance.StringFixed(),
		r.Distributions.StringFixed(),
		r.ReturnOnCapital.StringFixed(),
		r.ReturnOfCapital.StringFixed(),
	}
}

// groupKey is the identity of one summary row.
type groupKey struct{ entity, sponsor, offering string }

// key projects a transaction onto the group dimensions the verbosity keeps.
func (v Verbosity) key(tx Transaction) groupKey {
	switch v {
	case WholePortfolio:
		return groupKey{}
	case PerEntity:
		return groupKey{entity: tx.Entity}
	default:
		return groupKey{entity: tx.Entity, sponsor: tx.Sponsor, offering: tx.Offering}
	}
}

// Summary computes one aggregate row per group present in the filtered
// ledger. Groups appear in first-seen order of the filtered transaction
// record, not alphabetically: output order is deterministic and follows
// the reports.
func (p *Portfolio) Summary(v Verbosity, f Filter) []SummaryRow {
	var order []groupKey
	seen := map[groupKey]bool{}
	for _, tx := range p.Transactions(f) {
		k := v.key(tx)
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, k := range order {
		// Re-apply the caller's filter narrowed to the group's key. Key
		// dimensions the verbosity does not break down stay blank in k and
		// must not erase the caller's own constraints.
		g := f
		if k.entity != "" {
			g.Entity = k.entity
		}
		if k.sponsor != "" {
			g.Sponsor = k.sponsor
		}
		if k.offering != "" {
			g.Offering = k.offering
		}
		rows = append(rows, SummaryRow{
			Entity:             k.entity,
			Sponsor:            k.sponsor,
			Offering:           k.offering,
			CapitalCommitted:   p.CapitalCommitted(g),
			CapitalContributed: p.CapitalContributed(g),
			CapitalBalance:     p.CapitalBalance(g),
			Distributions:      p.Distributions(g),
			ReturnOnCapital:    p.ReturnOnCapital(g),
			ReturnOfCapital:    p.ReturnOfCapital(g),
		})
	}
	return rows
}

// SaveSummary writes the summary table (header plus one row per group) to
// the sink and returns the number of data rows written.
func (p *Portfolio) SaveSummary(sink RowSink, v Verbosity, f Filter) (int, error) {
	rows := p.Summary(v, f)
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	if err := sink.WriteAll(SummaryColumns, records); err != nil {
		return 0, err
	}
	log.Info().Int("groups", len(records)).Stringer("verbosity", v).Msg("summary saved")
	return len(records), nil
}

func (v Verbosity) String() string {
	switch v {
	case WholePortfolio:
		return "portfolio"
	case PerEntity:
		return "entity"
	case PerOffering:
		return "offering"
	default:
		return "unknown"
	}
}

// SaveTransactions writes the transaction table for the matching
// transactions, in ledger order, and returns the number of data rows.
func (p *Portfolio) SaveTransactions(sink RowSink, f Filter) (int, error) {
	txs := p.Transactions(f)
	records := make([][]string, 0, len(txs))
	for _, tx := range txs {
		records = append(records, tx.Record())
	}
	if err := sink.WriteAll(TransactionColumns, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
