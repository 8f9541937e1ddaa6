// Package cmd implements the CLI application to analyze Crowdstreet reports.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/crowdstreet"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the cstreet tool.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&transactionsCmd{},
	&periodsCmd{},
}

// reportFlags holds the input-report flags shared by every subcommand.
type reportFlags struct {
	contributions string
	distributions string
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.contributions, "c", "", "Capital Contribution report (.tsv or .csv), required.")
	f.StringVar(&r.distributions, "d", "", "Distributions report (.tsv or .csv), optional.")
}

// load builds the Portfolio from the report flags.
func (r *reportFlags) load() (*crowdstreet.Portfolio, error) {
	if r.contributions == "" {
		return nil, fmt.Errorf("missing -c: a Capital Contribution report is required")
	}
	src, err := crowdstreet.OpenReport(r.contributions)
	if err != nil {
		return nil, err
	}
	p, err := crowdstreet.New(src)
	if err != nil {
		return nil, err
	}
	if r.distributions == "" {
		return p, nil
	}
	dist, err := crowdstreet.OpenReport(r.distributions)
	if err != nil {
		return nil, err
	}
	if err := p.ReadDistributions(dist); err != nil {
		return nil, err
	}
	return p, nil
}

// filterFlags holds the transaction-filter flags shared by every subcommand.
type filterFlags struct {
	entity   string
	sponsor  string
	offering string
	start    string
	end      string
}

func (c *filterFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entity, "entity", "", "Only this investing entity.")
	f.StringVar(&c.sponsor, "sponsor", "", "Only this sponsor.")
	f.StringVar(&c.offering, "offering", "", "Only this offering.")
	f.StringVar(&c.start, "start", "", "Only transactions on or after this date (YYYY-MM-DD).")
	f.StringVar(&c.end, "end", "", "Only transactions on or before this date (YYYY-MM-DD).")
}

func (c *filterFlags) filter() (crowdstreet.Filter, error) {
	f := crowdstreet.Filter{Entity: c.entity, Sponsor: c.sponsor, Offering: c.offering}
	var err error
	if c.start != "" {
		if f.Start, err = crowdstreet.ParseDate(c.start); err != nil {
			return f, err
		}
	}
	if c.end != "" {
		if f.End, err = crowdstreet.ParseDate(c.end); err != nil {
			return f, err
		}
	}
	return f, nil
}

// parseComma maps the -sep flag onto a field delimiter.
func parseComma(sep string) (rune, error) {
	switch sep {
	case "tab", "\t", "":
		return '\t', nil
	case "comma", ",":
		return ',', nil
	default:
		return 0, fmt.Errorf("unknown separator %q: want tab or comma", sep)
	}
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails (e.g. dumb terminals).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// mdTable renders a header and rows as a markdown table.
func mdTable(header []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}
