package crowdstreet

// Filter restricts a transaction query. The zero value matches every
// transaction; a zero field leaves its dimension unconstrained.
//
// String fields are exact matches. Start and End bound the transaction
// date, both ends inclusive. Unknown filter keywords cannot exist: the
// filter surface is this struct.
type Filter struct {
	Entity   string // investing entity
	Sponsor  string
	Offering string
	Start    Date // inclusive, zero means since inception
	End      Date // inclusive, zero means up to today
}

// Matches reports whether the transaction passes every constraint set on
// the filter.
func (f Filter) Matches(tx Transaction) bool {
	if f.Entity != "" && tx.Entity != f.Entity {
		return false
	}
	if f.Sponsor != "" && tx.Sponsor != f.Sponsor {
		return false
	}
	if f.Offering != "" && tx.Offering != f.Offering {
		return false
	}
	return NewRange(f.Start, f.End).Contains(tx.Date)
}

// dates returns a copy of f with the date bounds replaced.
func (f Filter) dates(start, end Date) Filter {
	f.Start, f.End = start, end
	return f
}
