// Package discovery drives the bulk "explore" operation: one call to the
// discovery collaborator, with the loading, failure and result states the
// UI renders.
package discovery

import (
	"errors"
	"fmt"

	"github.com/marcus/dcleaner/internal/project"
)

// PlaceholderCount is the number of skeleton entries shown while loading.
const PlaceholderCount = 5

// State is the discovery session state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

// String returns a display label for the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

var (
	// ErrInFlight is returned by Explore while a discovery call is pending.
	ErrInFlight = errors.New("discovery already in progress")

	// ErrFailure wraps errors returned by the discovery collaborator.
	ErrFailure = errors.New("discovery failed")

	// ErrMalformed marks a result set that violates the Project contract.
	ErrMalformed = errors.New("malformed discovery result")
)

// Session holds the state of the discovery workflow. It is not safe for
// concurrent use; all calls happen on the UI update loop.
type Session struct {
	state      State
	results    []project.Project
	err        error
	violations []string
	seq        uint64
}

// New returns an idle session.
func New() *Session {
	return &Session{}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Loading reports whether a discovery call is in flight.
func (s *Session) Loading() bool { return s.state == StateLoading }

// Results returns the loaded projects in collaborator order. It is empty
// unless the session is Loaded.
func (s *Session) Results() []project.Project { return s.results }

// Err returns the failure of the last discovery, if any.
func (s *Session) Err() error { return s.err }

// Violations lists the contract violations of the last result set when it
// was rejected as malformed.
func (s *Session) Violations() []string { return s.violations }

// Seq returns the sequence number of the latest request.
func (s *Session) Seq() uint64 { return s.seq }

// Explore moves the session to Loading and returns the sequence number the
// caller must pass to Fetch. Previous results are dropped before anything
// else happens so stale entries never render next to the loading state.
func (s *Session) Explore() (uint64, error) {
	if s.state == StateLoading {
		return 0, ErrInFlight
	}
	s.results = nil
	s.err = nil
	s.violations = nil
	s.state = StateLoading
	s.seq++
	return s.seq, nil
}

// Resolve applies the outcome of the discovery call identified by seq.
// Outcomes of superseded requests are ignored and Resolve returns false.
func (s *Session) Resolve(seq uint64, projects []project.Project, err error) bool {
	if s.state != StateLoading || seq != s.seq {
		return false
	}
	if err != nil {
		s.state = StateFailed
		s.err = fmt.Errorf("%w: %w", ErrFailure, err)
		return true
	}
	if verr := project.Validate(projects); verr != nil {
		s.state = StateFailed
		s.err = fmt.Errorf("%w: %w", ErrMalformed, verr)
		s.violations = project.Violations(verr)
		return true
	}
	s.state = StateLoaded
	s.results = projects
	return true
}

// Placeholders returns how many skeleton entries to render.
func (s *Session) Placeholders() int {
	if s.state == StateLoading {
		return PlaceholderCount
	}
	return 0
}

// Lookup returns the loaded project at path.
func (s *Session) Lookup(path string) (project.Project, bool) {
	for _, p := range s.results {
		if p.Path == path {
			return p, true
		}
	}
	return project.Project{}, false
}
