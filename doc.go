// Package crowdstreet reads and analyzes Crowdstreet investor reports.
//
// Crowdstreet publishes two delimited reports per account: a "Capital
// Contribution" report listing every capital call and funding event, and a
// "Distributions" report listing every cash distribution with its split
// between return ON capital and return OF capital.
//
// The core functionalities include:
//   - Transaction Normalization: each raw report row becomes a typed,
//     immutable Transaction with exact decimal amounts and a calendar date.
//   - Portfolio Ledger: an insertion-ordered record of all transactions,
//     queryable by investing entity, sponsor, offering and date range.
//   - Aggregation: capital committed, contributed, balance, distributions
//     and the on/of capital splits, all computed on demand from the
//     transaction record, never stored redundantly.
//   - Summary Tables: delimited roll-ups at portfolio, entity or offering
//     level, plus a per-period (month, quarter, year) breakdown.
//
// This package serves as the foundational logic for the `cstreet`
// command-line tool.
package crowdstreet
