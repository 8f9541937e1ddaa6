package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/crowdstreet"
	"github.com/google/subcommands"
)

// transactionsCmd holds the flags for the 'transactions' subcommand.
type transactionsCmd struct {
	reportFlags
	filterFlags
	txType     string
	outputFile string
	separator  string
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list the normalized transactions" }
func (*transactionsCmd) Usage() string {
	return `cstreet transactions -c <contributions> [-d <distributions>] [-entity <e>] [-sponsor <s>] [-offering <o>] [-type <t>] [-start <date>] [-end <date>] [-o <file>] [-sep tab|comma]

  Lists every transaction matching the filters, in report order, with the
  fixed transaction table columns. Without -o the table is rendered to the
  terminal.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.txType, "type", "", "Only contribution or distribution transactions.")
	f.StringVar(&c.outputFile, "o", "", "Write the table to this file instead of the terminal.")
	f.StringVar(&c.separator, "sep", "tab", "Field separator for -o: tab or comma.")
}

func (c *transactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		return fail(err)
	}
	p, err := c.load()
	if err != nil {
		return fail(err)
	}

	txs := p.Transactions(filter)
	if c.txType != "" {
		want, err := crowdstreet.ParseTxType(c.txType)
		if err != nil {
			return fail(err)
		}
		kept := txs[:0]
		for _, tx := range txs {
			if tx.Type == want {
				kept = append(kept, tx)
			}
		}
		txs = kept
	}
	records := make([][]string, 0, len(txs))
	for _, tx := range txs {
		records = append(records, tx.Record())
	}

	if c.outputFile != "" {
		comma, err := parseComma(c.separator)
		if err != nil {
			return fail(err)
		}
		sink := crowdstreet.NewFileSink(c.outputFile, comma)
		if err := sink.WriteAll(crowdstreet.TransactionColumns, records); err != nil {
			return fail(err)
		}
		fmt.Printf("%d transactions written to %q\n", len(records), c.outputFile)
		return subcommands.ExitSuccess
	}

	printMarkdown("# Transactions\n\n" + mdTable(crowdstreet.TransactionColumns, records))
	return subcommands.ExitSuccess
}
