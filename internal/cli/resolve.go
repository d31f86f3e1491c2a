package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/domain"
)

type candidate struct {
	id   string
	name string
}

// matchID resolves input to a candidate id. An exact id wins, then a unique
// id prefix, then a unique case-insensitive name.
func matchID(input string, cands []candidate, notFound error) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty id", notFound)
	}
	for _, c := range cands {
		if c.id == input {
			return c.id, nil
		}
	}

	var matches []string
	for _, c := range cands {
		if strings.HasPrefix(c.id, input) {
			matches = append(matches, c.id)
		}
	}
	if len(matches) == 0 {
		for _, c := range cands {
			if strings.EqualFold(c.name, input) {
				matches = append(matches, c.id)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", notFound, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePhaseID resolves a phase reference against the active timeline.
func resolvePhaseID(ctx context.Context, app *App, input string) (string, error) {
	state, err := app.Planner.State(ctx)
	if err != nil {
		return "", err
	}
	active := state.Active()
	if active == nil {
		return "", domain.ErrTimelineNotFound
	}
	cands := make([]candidate, len(active.Data.Phases))
	for i, p := range active.Data.Phases {
		cands[i] = candidate{id: p.ID, name: p.Name}
	}
	return matchID(input, cands, domain.ErrPhaseNotFound)
}

func resolveTimelineID(ctx context.Context, app *App, input string) (string, error) {
	state, err := app.Planner.State(ctx)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, len(state.Timelines))
	for i, t := range state.Timelines {
		cands[i] = candidate{id: t.ID, name: t.Name}
	}
	return matchID(input, cands, domain.ErrTimelineNotFound)
}
