package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/policies/cmd/app/commands"
	"github.com/allisson/policies/internal/app"
	"github.com/allisson/policies/internal/config"
)

func getPolicyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "validate-catalog",
			Usage: "Validate a grant catalog file without storing it",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "catalog",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Path to the catalog JSON file",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				return commands.RunValidateCatalog(
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("catalog"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "compile",
			Usage: "Compile a grant catalog file into a READ/WRITE policy document pair",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "catalog",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Path to the catalog JSON file",
				},
				&cli.StringFlag{
					Name:    "identifiers",
					Aliases: []string{"i"},
					Usage:   "JSON object mapping placeholder names to resolved values",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)

				return commands.RunCompileCatalog(
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("catalog"),
					cmd.String("identifiers"),
					cmd.String("format"),
				)
			},
		},
	}
}
