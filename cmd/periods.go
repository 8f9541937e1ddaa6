package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/crowdstreet"
	"github.com/google/subcommands"
)

// periodsCmd holds the flags for the 'periods' subcommand.
type periodsCmd struct {
	reportFlags
	filterFlags
	period     string
	outputFile string
	separator  string
}

func (*periodsCmd) Name() string     { return "periods" }
func (*periodsCmd) Synopsis() string { return "break the portfolio down by calendar period" }
func (*periodsCmd) Usage() string {
	return `cstreet periods -c <contributions> [-d <distributions>] [-p month|quarter|year] [-start <date>] [-end <date>] [-o <file>] [-sep tab|comma]

  Writes one row per calendar period of the portfolio's life: committed,
  contributed and balance cumulative to the period's end, returns of and on
  capital within the period, plus a final TOTAL row.
`
}

func (c *periodsCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	c.filterFlags.SetFlags(f)
	f.StringVar(&c.period, "p", "year", "Calendar period: month, quarter or year.")
	f.StringVar(&c.outputFile, "o", "", "Write the table to this file instead of the terminal.")
	f.StringVar(&c.separator, "sep", "tab", "Field separator for -o: tab or comma.")
}

func (c *periodsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := crowdstreet.ParsePeriod(c.period)
	if err != nil {
		return fail(err)
	}
	filter, err := c.filter()
	if err != nil {
		return fail(err)
	}
	p, err := c.load()
	if err != nil {
		return fail(err)
	}

	rows := p.PeriodSummary(period, filter)
	records := make([][]string, 0, len(rows)+1)
	for _, r := range rows {
		records = append(records, r.Record())
	}
	records = append(records, totalRecord(p, filter))

	if c.outputFile != "" {
		comma, err := parseComma(c.separator)
		if err != nil {
			return fail(err)
		}
		sink := crowdstreet.NewFileSink(c.outputFile, comma)
		if err := sink.WriteAll(crowdstreet.PeriodColumns, records); err != nil {
			return fail(err)
		}
		fmt.Printf("%d periods written to %q\n", len(records), c.outputFile)
		return subcommands.ExitSuccess
	}

	printMarkdown(fmt.Sprintf("# Portfolio by %s\n\n", period.Name()) + mdTable(crowdstreet.PeriodColumns, records))
	return subcommands.ExitSuccess
}

// totalRecord is the all-time closing row of the period table.
func totalRecord(p *crowdstreet.Portfolio, f crowdstreet.Filter) []string {
	return []string{
		"TOTAL",
		p.CapitalCommitted(f).StringFixed(),
		p.CapitalContributed(f).StringFixed(),
		p.CapitalBalance(f).StringFixed(),
		p.ReturnOfCapital(f).StringFixed(),
		p.ReturnOnCapital(f).StringFixed(),
	}
}
