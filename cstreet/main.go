package main

import (
	"context"
	"flag"
	"os"
	"path"
	"time"

	"github.com/etnz/crowdstreet/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var verbose = flag.Bool("verbose", false, "Log every transaction as it is loaded.")

func main() {
	// Shell completion runs (and exits) before anything else.
	completion().Complete("cstreet")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")

	flag.Parse()
	setupLogging(*verbose)

	os.Exit(int(commander.Execute(context.Background())))
}

// setupLogging configures the global zerolog logger for console use.
func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}

// completion describes the CLI for shell completion.
func completion() *complete.Command {
	reports := map[string]complete.Predictor{
		"c":        predict.Files("*.tsv"),
		"d":        predict.Files("*.tsv"),
		"o":        predict.Files("*"),
		"sep":      predict.Set{"tab", "comma"},
		"entity":   predict.Something,
		"sponsor":  predict.Something,
		"offering": predict.Something,
		"start":    predict.Something,
		"end":      predict.Something,
	}
	summary := map[string]complete.Predictor{"v": predict.Set{"0", "1", "2"}}
	transactions := map[string]complete.Predictor{"type": predict.Set{"contribution", "distribution"}}
	periods := map[string]complete.Predictor{"p": predict.Set{"month", "quarter", "year"}}
	for k, v := range reports {
		summary[k] = v
		transactions[k] = v
		periods[k] = v
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"summary":      {Flags: summary},
			"transactions": {Flags: transactions},
			"periods":      {Flags: periods},
		},
		Flags: map[string]complete.Predictor{"verbose": predict.Nothing},
	}
}
