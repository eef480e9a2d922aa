package main

import (
	"github.com/meltforce/liftplan/internal/cliconfig"
	"github.com/meltforce/liftplan/internal/coach"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   cliconfig.DefaultPath(),
	}
}

// profileFlags override the [profile] section of the config file.
func profileFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "goal",
			Aliases: []string{"g"},
			Usage:   "Training goal: strength, fat-loss, hypertrophy (or 근력 향상, 체중 감량, 근육량 증가)",
		},
		&cli.StringFlag{
			Name:    "experience",
			Aliases: []string{"x"},
			Usage:   "Experience level: beginner, intermediate, advanced (or 초보자, 중급자, 고급자)",
		},
		&cli.StringSliceFlag{
			Name:    "equipment",
			Aliases: []string{"e"},
			Usage:   "Available equipment, repeatable (dumbbell, barbell, machine, kettlebell, band, bodyweight, rowing-machine, cycle-machine)",
		},
		&cli.BoolFlag{
			Name:  "no-equipment",
			Usage: "Ignore configured equipment and generate for none",
		},
		&cli.IntFlag{
			Name:    "frequency",
			Aliases: []string{"f"},
			Usage:   "Sessions per week (1-7)",
		},
	}
}

// generateCommand runs the generator locally
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a routine for a profile",
		Flags: append(profileFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		),
		Action: r.Generate,
	}
}

// templatesCommand lists the template table
func templatesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List every goal × experience template",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Templates,
	}
}

// pushCommand generates a routine and stores it on the server
func pushCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Generate a routine and save it on the LiftPlan server",
		Flags: append(profileFlags(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Generate and hash but don't send to the server",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Push even if an identical routine was pushed before",
			},
		),
		Action: r.Push,
	}
}

// historyCommand lists pushes recorded in the local state database
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show routines pushed from this machine",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries",
				Value: 20,
			},
		},
		Action: r.History,
	}
}

// coachCommand prints the server's coaching report
func coachCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "coach",
		Usage: "Show training metrics and recommendations from the configured server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "days",
				Usage: "Window length in days (7-180)",
				Value: coach.DefaultDays,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
		},
		Action: r.Coach,
	}
}

// mcpCommand serves MCP over stdio against a remote server
func mcpCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "mcp",
		Usage:  "Serve the LiftPlan MCP tools over stdio, backed by the configured server",
		Flags:  []cli.Flag{configFlag()},
		Action: r.ServeMCP,
	}
}

// configCommand manages the CLI configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write an example configuration file",
				Flags:  []cli.Flag{configFlag()},
				Action: r.ConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON instead of TOML",
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}
