// Package location supplies the optional one-shot GPS fix captured at
// startup. Best-effort only: when no fix can be produced, every location
// field in the app simply stays absent.
package location

import (
	"context"
	"os"

	"github.com/Paralinkz/ParaTrackz/internal/models"
	"github.com/Paralinkz/ParaTrackz/internal/parser"
	"github.com/Paralinkz/ParaTrackz/internal/session"
)

// EnvVar overrides the configured location when set, as "lat,lon[,accuracy]"
const EnvVar = "PARATRACKZ_LOCATION"

// Provider produces the current coordinate. Absence is not an error: a nil
// coordinate with a nil error means no fix is available.
type Provider interface {
	Current(ctx context.Context) (*models.Coordinate, error)
}

// Fetch asks the provider for a fix once, asynchronously, and stores it on
// arrival. No retry, no timeout beyond ctx: if the provider never resolves,
// locations stay absent for the whole run. The returned channel closes when
// the attempt finishes, for callers that want to wait.
func Fetch(ctx context.Context, p Provider, store *session.Store) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		loc, err := p.Current(ctx)
		if err != nil || loc == nil {
			// Degrade silently: evidence continues without geotags
			return
		}
		store.SetLocation(loc)
	}()
	return done
}

// Static always returns a fixed coordinate
type Static struct {
	Coord models.Coordinate
}

// Current implements Provider
func (s Static) Current(ctx context.Context) (*models.Coordinate, error) {
	c := s.Coord
	return &c, nil
}

// None never produces a fix
type None struct{}

// Current implements Provider
func (None) Current(ctx context.Context) (*models.Coordinate, error) {
	return nil, nil
}

// FromEnvironment builds a provider from the PARATRACKZ_LOCATION variable,
// falling back to the given default (usually the configured location).
// Malformed values degrade to the fallback.
func FromEnvironment(fallback Provider) Provider {
	raw := os.Getenv(EnvVar)
	if raw == "" {
		return fallback
	}
	coord, err := parser.ParseCoordinate(raw)
	if err != nil {
		return fallback
	}
	return Static{Coord: *coord}
}
