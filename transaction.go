package crowdstreet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// TxType identifies the two kinds of ledger entries.
type TxType int

const (
	// Contribution is a capital outflow from the investor into an offering.
	Contribution TxType = iota
	// Distribution is a cash payment from an offering back to the investor.
	Distribution
)

func (t TxType) String() string {
	switch t {
	case Contribution:
		return "Contribution"
	case Distribution:
		return "Distribution"
	default:
		return "Unknown"
	}
}

// ParseTxType converts a user-supplied type name into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contribution", "contributions":
		return Contribution, nil
	case "distribution", "distributions":
		return Distribution, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q: want contribution or distribution", s)
	}
}

// Column names of the Crowdstreet report kinds.
const (
	colSponsor   = "Sponsor"
	colOffering  = "Offering"
	colEntity    = "Investing Entity"
	colWithhold  = "Withholdings"
	colPeriodEnd = "Period End Date"

	colContributionAmount = "Capital Contribution Amount"
	colContributionID     = "Capital Contribution ID"
	colContributionDesc   = "Transaction Description"
	colContributionDate   = "Transaction Date"

	colDistributionID    = "Distribution ID"
	colDistributionDesc  = "Description"
	colDistributionTotal = "Total Distribution"
	colReturnOnCapital   = "Return on Capital"
	colReturnOfCapital   = "Return of Capital"
)

// Classify inspects the columns present in a row and decides which report
// kind it came from. Classification is by column presence, never by the
// shape of individual values.
func Classify(r Row) (TxType, error) {
	_, contribution := r[colContributionAmount]
	_, distribution := r[colDistributionID]
	switch {
	case contribution && distribution:
		return 0, &MalformedRowError{Reason: "row carries both contribution and distribution columns"}
	case contribution:
		return Contribution, nil
	case distribution:
		return Distribution, nil
	default:
		return 0, &MalformedRowError{Reason: "row is neither a contribution nor a distribution"}
	}
}

// Transaction is one normalized ledger entry, built once from a report row
// and immutable thereafter. Fields that do not apply to the transaction's
// type stay at their zero value.
type Transaction struct {
	Entity      string // investing entity
	Sponsor     string
	Offering    string
	Type        TxType
	Description string
	ID          int64
	Date        Date // "Transaction Date" or "Period End Date"

	// Contribution only. Stored negative: capital flowing out of the
	// investor's pocket.
	CapitalContribution Money

	// Distribution only.
	TotalDistribution Money
	ReturnOnCapital   Money
	ReturnOfCapital   Money
	Withholdings      Money
}

// NewTransaction builds a Transaction from a raw report row of either kind.
func NewTransaction(r Row) (Transaction, error) {
	kind, err := Classify(r)
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{Type: kind}
	if tx.Sponsor, err = r.required(colSponsor); err != nil {
		return Transaction{}, err
	}
	if tx.Offering, err = r.required(colOffering); err != nil {
		return Transaction{}, err
	}
	if tx.Entity, err = r.required(colEntity); err != nil {
		return Transaction{}, err
	}

	switch kind {
	case Contribution:
		err = tx.fillContribution(r)
	case Distribution:
		err = tx.fillDistribution(r)
	}
	if err != nil {
		return Transaction{}, err
	}

	log.Debug().
		Stringer("type", tx.Type).
		Str("sponsor", tx.Sponsor).
		Str("offering", tx.Offering).
		Stringer("date", tx.Date).
		Msg("transaction built")
	return tx, nil
}

func (tx *Transaction) fillContribution(r Row) error {
	var err error
	if tx.Description, err = r.required(colContributionDesc); err != nil {
		return err
	}
	if tx.ID, err = r.id(colContributionID); err != nil {
		return err
	}
	if tx.Date, err = r.date(colContributionDate); err != nil {
		return err
	}
	amount, err := r.money(colContributionAmount)
	if err != nil {
		return err
	}
	// The report stores contribution amounts unsigned; the ledger records
	// them negative, outflow convention.
	tx.CapitalContribution = amount.Abs().Neg()
	return nil
}

func (tx *Transaction) fillDistribution(r Row) error {
	var err error
	if tx.Description, err = r.required(colDistributionDesc); err != nil {
		return err
	}
	if tx.ID, err = r.id(colDistributionID); err != nil {
		return err
	}
	if tx.Date, err = r.date(colPeriodEnd); err != nil {
		return err
	}
	if tx.ReturnOfCapital, err = r.money(colReturnOfCapital); err != nil {
		return err
	}
	if tx.ReturnOnCapital, err = r.money(colReturnOnCapital); err != nil {
		return err
	}
	if tx.Withholdings, err = r.money(colWithhold); err != nil {
		return err
	}

	parts := tx.ReturnOnCapital.Add(tx.ReturnOfCapital)
	total, ok := r[colDistributionTotal]
	if !ok || strings.TrimSpace(total) == "" {
		// No total column: derive it from the two parts.
		tx.TotalDistribution = parts
		return nil
	}
	if tx.TotalDistribution, err = r.money(colDistributionTotal); err != nil {
		return err
	}
	// Blank part cells mean the report only states the total; an explicit
	// "0" is a stated value and takes part in the check.
	if strings.TrimSpace(r[colReturnOnCapital]) == "" && strings.TrimSpace(r[colReturnOfCapital]) == "" {
		return nil
	}
	// Validate, never recompute: a total that disagrees with its parts
	// means the report is corrupt.
	if !tx.TotalDistribution.Equal(parts) {
		return &MalformedRowError{
			Column: colDistributionTotal,
			Reason: "total " + tx.TotalDistribution.StringFixed() + " does not equal return on + of capital " + parts.StringFixed(),
		}
	}
	return nil
}

// required returns the value of a column that must be present.
func (r Row) required(col string) (string, error) {
	v, ok := r[col]
	if !ok {
		return "", &MalformedRowError{Column: col, Reason: "missing column"}
	}
	return strings.TrimSpace(v), nil
}

func (r Row) id(col string) (int64, error) {
	v, err := r.required(col)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &MalformedRowError{Column: col, Err: err}
	}
	return id, nil
}

func (r Row) date(col string) (Date, error) {
	v, err := r.required(col)
	if err != nil {
		return Date{}, err
	}
	d, err := ParseDate(v)
	if err != nil {
		return Date{}, &MalformedRowError{Column: col, Err: err}
	}
	return d, nil
}

func (r Row) money(col string) (Money, error) {
	v, err := r.required(col)
	if err != nil {
		return Money{}, err
	}
	m, err := ParseMoney(v, USD)
	if err != nil {
		return Money{}, &MalformedRowError{Column: col, Err: err}
	}
	return m, nil
}

// TransactionColumns is the fixed column order of the transaction table.
// The order is the same for every transaction regardless of type.
var TransactionColumns = []string{
	"Investing Entity",
	"Sponsor",
	"Offering",
	"Transaction Type",
	"Description",
	"Id",
	"Date",
	"Capital Contribution",
	"Total Distribution",
	"Return On Capital",
	"Return Of Capital",
	"Withholdings",
}

// TransactionHeaders returns the transaction table column names joined by
// the delimiter.
func TransactionHeaders(delimiter string) string {
	return strings.Join(TransactionColumns, delimiter)
}

// Record returns the transaction's field values in transaction table
// order. Fields that do not apply to the transaction's type render blank.
func (tx Transaction) Record() []string {
	record := []string{
		tx.Entity,
		tx.Sponsor,
		tx.Offering,
		tx.Type.String(),
		tx.Description,
		strconv.FormatInt(tx.ID, 10),
		tx.Date.String(),
		"", "", "", "", "",
	}
	switch tx.Type {
	case Contribution:
		record[7] = tx.CapitalContribution.StringFixed()
	case Distribution:
		record[8] = tx.TotalDistribution.StringFixed()
		record[9] = tx.ReturnOnCapital.StringFixed()
		record[10] = tx.ReturnOfCapital.StringFixed()
		record[11] = tx.Withholdings.StringFixed()
	}
	return record
}

// Row returns the transaction's field values joined by the delimiter, in
// the same order as [TransactionHeaders].
func (tx Transaction) Row(delimiter string) string {
	return strings.Join(tx.Record(), delimiter)
}
