// Package cleanup implements the per-project confirm → clean → notice
// workflow. Each discovered project owns an independent Session keyed by
// its path.
package cleanup

import (
	"errors"
	"fmt"
)

// State is the cleanup session state.
type State int

const (
	StateIdle State = iota
	StateConfirming
	StateCleaning
	StateCleaned
)

// String returns a display label for the state.
func (s State) String() string {
	switch s {
	case StateConfirming:
		return "confirming"
	case StateCleaning:
		return "cleaning"
	case StateCleaned:
		return "cleaned"
	default:
		return "idle"
	}
}

var (
	// ErrInvalidTransition is returned when an action does not apply to
	// the current state.
	ErrInvalidTransition = errors.New("invalid cleanup transition")

	// ErrFailure wraps errors returned by the cleanup collaborator.
	ErrFailure = errors.New("cleanup failed")
)

// Session is the cleanup state of one project. It is not safe for
// concurrent use; all calls happen on the UI update loop.
type Session struct {
	path      string
	state     State
	reclaimed int64
	err       error
	attempts  int

	noticeVisible bool
	noticeGen     uint64
}

// NewSession returns an idle session for the project at path.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Path returns the project path the session belongs to.
func (s *Session) Path() string { return s.path }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Reclaimed returns the bytes reported by the collaborator once Cleaned.
func (s *Session) Reclaimed() int64 { return s.reclaimed }

// Err returns the failure of the last cleanup attempt. It is cleared when a
// new attempt is confirmed.
func (s *Session) Err() error { return s.err }

// Attempts returns how many cleanup calls were issued.
func (s *Session) Attempts() int { return s.attempts }

// NoticeVisible reports whether the success notice is showing.
func (s *Session) NoticeVisible() bool { return s.noticeVisible }

// Cleaned reports whether the project has been cleaned.
func (s *Session) Cleaned() bool { return s.state == StateCleaned }

// RequestClean registers the intent to delete. No destructive action
// happens until Confirm.
func (s *Session) RequestClean() error {
	if s.state != StateIdle {
		return s.invalid("request clean")
	}
	s.state = StateConfirming
	return nil
}

// Cancel aborts a pending confirmation.
func (s *Session) Cancel() error {
	if s.state != StateConfirming {
		return s.invalid("cancel")
	}
	s.state = StateIdle
	return nil
}

// Confirm starts cleaning. The caller must issue exactly one collaborator
// call per successful Confirm and report its outcome with Complete.
func (s *Session) Confirm() error {
	if s.state != StateConfirming {
		return s.invalid("confirm")
	}
	s.state = StateCleaning
	s.err = nil
	s.attempts++
	return nil
}

// Complete applies the outcome of the collaborator call. On success the
// session becomes Cleaned and the notice is shown; the returned generation
// identifies the notice for HideNotice. On failure the session returns to
// Idle with the error kept so it can be displayed; the user may retry.
func (s *Session) Complete(reclaimed int64, err error) (uint64, error) {
	if s.state != StateCleaning {
		return 0, s.invalid("complete")
	}
	if err != nil {
		s.state = StateIdle
		s.err = fmt.Errorf("%w: %s: %w", ErrFailure, s.path, err)
		return 0, nil
	}
	s.state = StateCleaned
	s.reclaimed = reclaimed
	s.noticeVisible = true
	s.noticeGen++
	return s.noticeGen, nil
}

// HideNotice hides the success notice if gen is still current. The cleaned
// state itself is unaffected.
func (s *Session) HideNotice(gen uint64) bool {
	if !s.noticeVisible || gen != s.noticeGen {
		return false
	}
	s.noticeVisible = false
	return true
}

// Teardown hides the notice and invalidates any pending notice timer.
func (s *Session) Teardown() {
	s.noticeVisible = false
	s.noticeGen++
}

func (s *Session) invalid(action string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, s.state)
}
