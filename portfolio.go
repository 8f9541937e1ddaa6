package crowdstreet

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

// Portfolio is the ledger of all Crowdstreet transactions of one account.
//
// Transactions are kept in insertion order: the contributions report first,
// then every distributions report in the order it was added. Every
// aggregate is computed on demand from this record; no total is stored
// redundantly, so read operations never mutate state.
//
// A Portfolio is meant for single-threaded use within one analysis session.
type Portfolio struct {
	transactions []Transaction

	// Distinct group-key values in first-seen order. Membership of a
	// distribution row is checked against these.
	entities  []string
	sponsors  []string
	offerings []string

	// IDs already loaded, per transaction type. Reports exported twice
	// overlap; duplicates are skipped, not errors.
	seen map[TxType]map[int64]bool

	inception Date // earliest transaction date
}

// New creates a Portfolio from the "Capital Contribution" report. The load
// is all-or-nothing: any malformed row fails the whole call.
func New(src RowSource) (*Portfolio, error) {
	p := &Portfolio{seen: map[TxType]map[int64]bool{
		Contribution: {},
		Distribution: {},
	}}

	rows, err := src.Rows()
	if err != nil {
		return nil, err
	}
	log.Info().Int("rows", len(rows)).Msg("reading contribution report")

	txs, err := p.parseAll(rows, Contribution)
	if err != nil {
		return nil, err
	}
	p.commit(txs)
	return p, nil
}

// ReadDistributions appends the transactions of a "Distributions" report.
//
// The call is all-or-nothing: on any error the ledger is left exactly as it
// was. Calling it twice with the same report is harmless, duplicate IDs are
// skipped with a warning.
func (p *Portfolio) ReadDistributions(src RowSource) error {
	rows, err := src.Rows()
	if err != nil {
		return err
	}
	log.Info().Int("rows", len(rows)).Msg("reading distributions report")

	txs, err := p.parseAll(rows, Distribution)
	if err != nil {
		return err
	}
	p.commit(txs)
	return nil
}

// parseAll turns every row into a Transaction of the wanted type without
// touching the ledger, so a failure mid-read leaves the Portfolio in its
// pre-call state.
func (p *Portfolio) parseAll(rows []Row, want TxType) ([]Transaction, error) {
	pending := map[int64]bool{}
	txs := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := NewTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if tx.Type != want {
			return nil, fmt.Errorf("row %d: %w", i+1,
				&MalformedRowError{Reason: fmt.Sprintf("unexpected %s row in a %s report", tx.Type, want)})
		}
		if tx.Type == Distribution {
			if err := p.checkMembership(tx); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		if p.seen[tx.Type][tx.ID] || pending[tx.ID] {
			log.Warn().
				Int64("id", tx.ID).
				Stringer("type", tx.Type).
				Stringer("date", tx.Date).
				Msg("skipping duplicate transaction")
			continue
		}
		pending[tx.ID] = true
		txs = append(txs, tx)
	}
	return txs, nil
}

// checkMembership verifies that a distribution names an entity, sponsor and
// offering already seen in the contributions report. A distribution for an
// unknown offering means the two reports do not belong to the same account.
func (p *Portfolio) checkMembership(tx Transaction) error {
	if !slices.Contains(p.sponsors, tx.Sponsor) {
		return &MalformedRowError{Column: colSponsor, Reason: fmt.Sprintf("sponsor %q not in contributions report", tx.Sponsor)}
	}
	if !slices.Contains(p.offerings, tx.Offering) {
		return &MalformedRowError{Column: colOffering, Reason: fmt.Sprintf("offering %q not in contributions report", tx.Offering)}
	}
	if !slices.Contains(p.entities, tx.Entity) {
		return &MalformedRowError{Column: colEntity, Reason: fmt.Sprintf("entity %q not in contributions report", tx.Entity)}
	}
	return nil
}

// commit appends fully parsed transactions to the ledger and updates the
// derived indexes.
func (p *Portfolio) commit(txs []Transaction) {
	for _, tx := range txs {
		p.transactions = append(p.transactions, tx)
		p.seen[tx.Type][tx.ID] = true
		if !slices.Contains(p.entities, tx.Entity) {
			p.entities = append(p.entities, tx.Entity)
		}
		if !slices.Contains(p.sponsors, tx.Sponsor) {
			p.sponsors = append(p.sponsors, tx.Sponsor)
		}
		if !slices.Contains(p.offerings, tx.Offering) {
			p.offerings = append(p.offerings, tx.Offering)
		}
		if p.inception.IsZero() || tx.Date.Before(p.inception) {
			p.inception = tx.Date
		}
	}
}

// Transactions returns the subsequence of the ledger matching the filter,
// in original insertion order. A zero filter returns the full ledger. An
// empty result is an empty slice, never an error.
func (p *Portfolio) Transactions(f Filter) []Transaction {
	txs := []Transaction{}
	for _, tx := range p.transactions {
		if f.Matches(tx) {
			txs = append(txs, tx)
		}
	}
	return txs
}

// Entities returns the distinct investing entities in first-seen order.
func (p *Portfolio) Entities() []string { return slices.Clone(p.entities) }

// Sponsors returns the distinct sponsors in first-seen order.
func (p *Portfolio) Sponsors() []string { return slices.Clone(p.sponsors) }

// Offerings returns the distinct offerings in first-seen order.
func (p *Portfolio) Offerings() []string { return slices.Clone(p.offerings) }

// Inception returns the date of the earliest transaction.
func (p *Portfolio) Inception() Date { return p.inception }

// sum adds pick(tx) over every matching transaction, exactly.
func (p *Portfolio) sum(f Filter, pick func(Transaction) (Money, bool)) Money {
	total := M(0, USD)
	for _, tx := range p.transactions {
		if !f.Matches(tx) {
			continue
		}
		if v, ok := pick(tx); ok {
			total = total.Add(v)
		}
	}
	return total
}

// CapitalContributed returns the magnitude of capital invested over the
// matching contributions. Contributions are recorded negative; the
// magnitude is what the Crowdstreet dashboard shows.
func (p *Portfolio) CapitalContributed(f Filter) Money {
	return p.sum(f, func(tx Transaction) (Money, bool) {
		return tx.CapitalContribution, tx.Type == Contribution
	}).Neg()
}

// CapitalCommitted is like CapitalContributed but excludes follow-on
// "Capital Call" contributions: those fund capital that was already
// committed when the offering was first subscribed.
func (p *Portfolio) CapitalCommitted(f Filter) Money {
	return p.sum(f, func(tx Transaction) (Money, bool) {
		return tx.CapitalContribution, tx.Type == Contribution && tx.Description != "Capital Call"
	}).Neg()
}

// ReturnOfCapital returns the matching distributions' return OF capital:
// invested principal coming back.
func (p *Portfolio) ReturnOfCapital(f Filter) Money {
	return p.sum(f, func(tx Transaction) (Money, bool) {
		return tx.ReturnOfCapital, tx.Type == Distribution
	})
}

// ReturnOnCapital returns the matching distributions' return ON capital:
// income earned on the investment.
func (p *Portfolio) ReturnOnCapital(f Filter) Money {
	return p.sum(f, func(tx Transaction) (Money, bool) {
		return tx.ReturnOnCapital, tx.Type == Distribution
	})
}

// Distributions returns the sum of the matching distributions' totals.
func (p *Portfolio) Distributions(f Filter) Money {
	return p.sum(f, func(tx Transaction) (Money, bool) {
		return tx.TotalDistribution, tx.Type == Distribution
	})
}

// CapitalBalance returns the invested principal still at work: capital
// contributed minus capital returned.
func (p *Portfolio) CapitalBalance(f Filter) Money {
	return p.CapitalContributed(f).Sub(p.ReturnOfCapital(f))
}
