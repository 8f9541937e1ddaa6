package crowdstreet

// This file contains the per-period breakdown: the portfolio's life sliced
// into calendar months, quarters or years, with stock metrics (committed,
// contributed, balance) cumulative to each period's end and flow metrics
// (returns of and on capital) counted within the period.

// PeriodColumns is the fixed header of the per-period table.
var PeriodColumns = []string{
	"Period",
	"Capital Committed",
	"Capital Contributed",
	"Capital Balance",
	"Return of Capital",
	"Return on Capital",
}

// PeriodRow is the portfolio state over one calendar period.
type PeriodRow struct {
	Range Range

	// Cumulative from inception to Range.To.
	CapitalCommitted   Money
	CapitalContributed Money
	CapitalBalance     Money

	// Within Range only.
	ReturnOfCapital Money
	ReturnOnCapital Money
}

// Record renders the row in [PeriodColumns] order.
func (r PeriodRow) Record() []string {
	return []string{
		r.Range.Label(),
		r.CapitalCommitted.StringFixed(),
		r.CapitalContributed.StringFixed(),
		r.CapitalBalance.StringFixed(),
		r.ReturnOfCapital.StringFixed(),
		r.ReturnOnCapital.StringFixed(),
	}
}

// PeriodSummary slices the filtered ledger into calendar periods, one row
// per period from the first transaction (or f.Start) to the last (or
// f.End). Periods with no activity still get a row: balances carry over.
func (p *Portfolio) PeriodSummary(period Period, f Filter) []PeriodRow {
	span := p.span(f)
	if span.From.IsZero() {
		return nil
	}

	var rows []PeriodRow
	for pr := range span.Periods(period) {
		rows = append(rows, PeriodRow{
			Range:              pr,
			CapitalCommitted:   p.CapitalCommitted(f.dates(Date{}, pr.To)),
			CapitalContributed: p.CapitalContributed(f.dates(Date{}, pr.To)),
			CapitalBalance:     p.CapitalBalance(f.dates(Date{}, pr.To)),
			ReturnOfCapital:    p.ReturnOfCapital(f.dates(pr.From, pr.To)),
			ReturnOnCapital:    p.ReturnOnCapital(f.dates(pr.From, pr.To)),
		})
	}
	return rows
}

// span returns the date range the period breakdown should cover: the
// filter's bounds where set, the filtered ledger's first and last
// transaction dates otherwise.
func (p *Portfolio) span(f Filter) Range {
	from, to := f.Start, f.End
	if from.IsZero() || to.IsZero() {
		txs := p.Transactions(f)
		if len(txs) == 0 {
			return Range{}
		}
		first, last := txs[0].Date, txs[0].Date
		for _, tx := range txs[1:] {
			if tx.Date.Before(first) {
				first = tx.Date
			}
			if tx.Date.After(last) {
				last = tx.Date
			}
		}
		if from.IsZero() {
			from = first
		}
		if to.IsZero() {
			to = last
		}
	}
	return NewRange(from, to)
}

// SavePeriodSummary writes the per-period table to the sink and returns the
// number of data rows written.
func (p *Portfolio) SavePeriodSummary(sink RowSink, period Period, f Filter) (int, error) {
	rows := p.PeriodSummary(period, f)
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.Record())
	}
	if err := sink.WriteAll(PeriodColumns, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
