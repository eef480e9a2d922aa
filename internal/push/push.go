// Package push sends generated routines to a LiftPlan server and remembers
// what was sent.
package push

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/routinegen"
)

// Status is the outcome of a push.
type Status string

const (
	StatusPushed  Status = "pushed"
	StatusSkipped Status = "skipped"
	StatusDryRun  Status = "dry-run"
)

// Result describes one push.
type Result struct {
	Status  Status
	Hash    string
	Routine *models.RoutineRow
}

// Pusher pushes generated routines, skipping ones already recorded in the
// state database unless forced.
type Pusher struct {
	client *Client
	state  *StateDB
	dryRun bool
	force  bool
	log    *slog.Logger
}

// New creates a new Pusher.
func New(client *Client, state *StateDB, dryRun, force bool, log *slog.Logger) *Pusher {
	return &Pusher{
		client: client,
		state:  state,
		dryRun: dryRun,
		force:  force,
		log:    log,
	}
}

// Push sends r to the server. Empty routines are refused: a routine with no
// compatible exercise is not worth storing.
func (p *Pusher) Push(ctx context.Context, r routinegen.GeneratedRoutine) (*Result, error) {
	if r.Empty() {
		return nil, fmt.Errorf("routine %q has no exercises for the given equipment", r.Name)
	}

	in := models.GeneratedInput(r)
	hash, err := HashRoutine(in)
	if err != nil {
		return nil, fmt.Errorf("hashing routine: %w", err)
	}
	res := &Result{Hash: hash}

	if !p.force {
		pushed, err := p.state.IsPushed(hash)
		if err != nil {
			return nil, fmt.Errorf("checking push state: %w", err)
		}
		if pushed {
			p.log.Info("routine already pushed, skipping", "name", r.Name, "hash", hash[:12])
			res.Status = StatusSkipped
			return res, nil
		}
	}

	if p.dryRun {
		p.log.Info("dry run, not pushing", "name", r.Name, "items", len(in.Items))
		res.Status = StatusDryRun
		return res, nil
	}

	row, err := p.client.PushRoutine(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("pushing routine: %w", err)
	}
	if err := p.state.MarkPushed(hash, row.ID.String(), row.Name); err != nil {
		p.log.Warn("recording push state failed", "error", err)
	}
	p.log.Info("routine pushed", "id", row.ID, "name", row.Name, "items", len(row.Items))

	res.Status = StatusPushed
	res.Routine = row
	return res, nil
}
