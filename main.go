package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dtnitsch/css-prioritize/internal/aggregate"
	"github.com/dtnitsch/css-prioritize/pkg/help"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "css-prioritize",
		Usage: "tally property usage across units to decide which properties to prioritize",
		Commands: []*cli.Command{
			{
				Name:      "tally",
				Usage:     "reduce usage batches into one combined tally",
				ArgsUsage: "[input files...]",
				Action:    aggregate.TallyAction,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "usage batch file (YAML or JSON), repeatable",
						EnvVars: []string{"CSS_PRIORITIZE_INPUTS"},
					},
					&cli.StringFlag{
						Name:    "initial",
						Usage:   "tally file to reduce into",
						EnvVars: []string{"CSS_PRIORITIZE_INITIAL"},
					},
					&cli.StringFlag{
						Name:    "weight",
						Value:   "binary",
						Usage:   "weight policy: binary, identity, threshold, capped",
						EnvVars: []string{"CSS_PRIORITIZE_WEIGHT"},
					},
					&cli.IntFlag{
						Name:  "threshold-min",
						Value: 1,
						Usage: "threshold: counts above this score --threshold-weight",
					},
					&cli.IntFlag{
						Name:  "threshold-weight",
						Value: 1,
						Usage: "threshold: score for counts above --threshold-min",
					},
					&cli.IntFlag{
						Name:  "cap",
						Value: 1,
						Usage: "capped: maximum contribution per unit",
					},
					&cli.BoolFlag{
						Name:  "fold-vendor-prefixes",
						Usage: "count -webkit-foo and friends as foo in name lists",
					},
					&cli.IntFlag{
						Name:    "workers",
						Value:   4,
						Usage:   "number of input files reduced concurrently",
						EnvVars: []string{"CSS_PRIORITIZE_WORKERS"},
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "yaml",
						Usage:   "output format: yaml or json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the tally to this file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "summary",
						Usage: "write a JSON run manifest to this file",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "print the N most used properties",
					},
					quietFlag(),
				},
			},
			{
				Name:      "top",
				Usage:     "print the most used properties of a tally file",
				ArgsUsage: "[tally file]",
				Action:    aggregate.TopAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "tally file (YAML or JSON)",
					},
					&cli.IntFlag{
						Name:  "top",
						Value: 25,
						Usage: "number of properties to print",
					},
					quietFlag(),
				},
			},
			{
				Name:  "quickstart",
				Usage: "print input formats and example commands",
				Action: func(c *cli.Context) error {
					_, err := fmt.Fprint(c.App.Writer, help.ColdstartYAML)
					return err
				},
			},
		},
	}
}

func quietFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "only log errors",
		EnvVars: []string{"CSS_PRIORITIZE_QUIET"},
	}
}
