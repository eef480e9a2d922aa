package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/liftplan/internal/cliconfig"
	"github.com/meltforce/liftplan/internal/coach"
	"github.com/meltforce/liftplan/internal/mcp"
	"github.com/meltforce/liftplan/internal/push"
	"github.com/meltforce/liftplan/internal/routinegen"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner, defaulting to a stderr logger and stdout.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{logger: opts.Logger, output: opts.Output}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		generateCommand, templatesCommand, pushCommand, historyCommand, coachCommand, mcpCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// slogger adapts the charm logger for packages that log via log/slog.
func (r *Runner) slogger() *slog.Logger {
	return slog.New(r.logger)
}

func (r *Runner) loadConfig(cmd *cli.Command) (*cliconfig.Config, error) {
	path := cmd.String("config")
	config, err := cliconfig.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("config loaded", "path", path)
	return config, nil
}

// profile starts from the config defaults and applies any flags given.
func profile(cmd *cli.Command, config *cliconfig.Config) routinegen.UserProfile {
	up := config.Profile.UserProfile()
	if cmd.IsSet("goal") {
		up.Goal = cmd.String("goal")
	}
	if cmd.IsSet("experience") {
		up.Experience = cmd.String("experience")
	}
	if cmd.IsSet("equipment") {
		up.Equipment = cmd.StringSlice("equipment")
	}
	if cmd.Bool("no-equipment") {
		up.Equipment = []string{}
	}
	if cmd.IsSet("frequency") {
		up.Frequency = int(cmd.Int("frequency"))
	}
	return up
}

// Generate prints a routine for the resolved profile.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	routine := routinegen.Generate(profile(cmd, config))
	if cmd.Bool("json") {
		return r.writeJSON(routine, true)
	}
	if routine.Empty() {
		r.logger.Warn("no exercise in the template fits the given equipment", "equipment", routine.Profile.Equipment.Sorted())
	}
	return r.writePlain("%s\n", renderRoutine(routine))
}

// Templates prints the template table.
func (r *Runner) Templates(ctx context.Context, cmd *cli.Command) error {
	rows := routinegen.Templates()
	if cmd.Bool("json") {
		return r.writeJSON(rows, true)
	}
	for _, row := range rows {
		if err := r.writePlain("%s\n", renderTemplate(row)); err != nil {
			return err
		}
	}
	return nil
}

// Push generates a routine and sends it to the configured server.
func (r *Runner) Push(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if config.Server.URL == "" {
		return fmt.Errorf("server.url is not configured")
	}

	state, err := push.OpenStateDB(config.StatePath())
	if err != nil {
		return err
	}
	defer state.Close()

	routine := routinegen.Generate(profile(cmd, config))
	client := push.NewClient(config.Server.URL, config.Server.APIKey)
	pusher := push.New(client, state, cmd.Bool("dry-run"), cmd.Bool("force"), r.slogger())

	res, err := pusher.Push(ctx, routine)
	if err != nil {
		return err
	}
	switch res.Status {
	case push.StatusPushed:
		return r.writePlain("pushed %s (%s)\n", res.Routine.Name, res.Routine.ID)
	case push.StatusSkipped:
		return r.writePlain("already pushed: %s (use --force to push again)\n", routine.Name)
	default:
		return r.writePlain("%s\n", renderRoutine(routine))
	}
}

// History lists pushes recorded locally.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	state, err := push.OpenStateDB(config.StatePath())
	if err != nil {
		return err
	}
	defer state.Close()

	records, err := state.History(int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("reading push history: %w", err)
	}
	if len(records) == 0 {
		return r.writePlain("no routines pushed yet\n")
	}
	return r.writePlain("%s\n", renderHistory(records))
}

// Coach fetches the coaching report for the configured user.
func (r *Runner) Coach(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if config.Server.URL == "" {
		return fmt.Errorf("server.url is not configured")
	}
	days := int(cmd.Int("days"))
	if err := coach.ValidateDays(days); err != nil {
		return err
	}

	report, err := mcp.NewHTTPClient(config.Server.URL, config.Server.APIKey).CoachReport(ctx, 0, days)
	if err != nil {
		return fmt.Errorf("fetching coach report: %w", err)
	}
	if cmd.Bool("json") {
		return r.writeJSON(report, true)
	}
	if report.InsufficientData {
		r.logger.Warn("few workouts in the window, recommendations may be unreliable", "days", days)
	}
	return r.writePlain("%s\n", renderCoachReport(report))
}

// ServeMCP serves the MCP tools over stdio, reading and writing through the
// server's REST API.
func (r *Runner) ServeMCP(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	ds := mcp.NewHTTPClient(config.Server.URL, config.Server.APIKey)
	r.logger.Info("serving MCP over stdio", "server", config.Server.URL)
	return server.ServeStdio(mcp.New(ds, Version, r.slogger()))
}

// ConfigInit writes the example configuration.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := cliconfig.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)
	return nil
}

// ConfigShow prints the effective configuration with the API key masked.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	shown := *config
	if shown.Server.APIKey != "" {
		shown.Server.APIKey = "********"
	}
	if cmd.Bool("json") {
		return r.writeJSON(shown, true)
	}
	if err := toml.NewEncoder(r.output).Encode(shown); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
