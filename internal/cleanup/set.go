package cleanup

import (
	"errors"
	"fmt"

	"github.com/marcus/dcleaner/internal/project"
)

// ErrInFlight is returned when a cleanup call for the path is still running,
// possibly on behalf of a session that has since been replaced.
var ErrInFlight = errors.New("cleanup already in flight")

// Set holds one Session per project path. It also tracks the cleanup calls
// in flight per path; that record outlives Replace and Reset so a path never
// has two calls running at once.
type Set struct {
	sessions map[string]*Session
	inFlight map[string]flight
	token    uint64
}

type flight struct {
	token   uint64
	session *Session
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{
		sessions: make(map[string]*Session),
		inFlight: make(map[string]flight),
	}
}

// Get returns the session for path, creating an idle one on first use.
func (s *Set) Get(path string) *Session {
	if sess, ok := s.sessions[path]; ok {
		return sess
	}
	sess := NewSession(path)
	s.sessions[path] = sess
	return sess
}

// Lookup returns the session for path without creating one.
func (s *Set) Lookup(path string) (*Session, bool) {
	sess, ok := s.sessions[path]
	return sess, ok
}

// Replace discards every session and creates idle ones for projects. It is
// called when a new discovery replaces the result set.
func (s *Set) Replace(projects []project.Project) {
	s.Reset()
	for _, p := range projects {
		s.sessions[p.Path] = NewSession(p.Path)
	}
}

// Reset tears down and discards every session. Calls in flight stay
// tracked.
func (s *Set) Reset() {
	for _, sess := range s.sessions {
		sess.Teardown()
	}
	s.sessions = make(map[string]*Session)
}

// Confirm confirms the session at path and returns the token that
// identifies the resulting call. It fails with ErrInFlight while an earlier
// call for the same path has not finished.
func (s *Set) Confirm(path string) (uint64, error) {
	if _, busy := s.inFlight[path]; busy {
		return 0, fmt.Errorf("%w: %s", ErrInFlight, path)
	}
	sess := s.Get(path)
	if err := sess.Confirm(); err != nil {
		return 0, err
	}
	s.token++
	s.inFlight[path] = flight{token: s.token, session: sess}
	return s.token, nil
}

// Finish records that the call identified by token has returned. It returns
// the session that issued the call when that session is still live and
// Cleaning; otherwise the result belongs to a replaced session.
func (s *Set) Finish(path string, token uint64) (*Session, bool) {
	f, ok := s.inFlight[path]
	if !ok || f.token != token {
		return nil, false
	}
	delete(s.inFlight, path)
	if cur, live := s.sessions[path]; !live || cur != f.session || cur.state != StateCleaning {
		return nil, false
	}
	return f.session, true
}

// InFlight reports whether a cleanup call for path is running.
func (s *Set) InFlight(path string) bool {
	_, ok := s.inFlight[path]
	return ok
}

// Len returns the number of sessions.
func (s *Set) Len() int { return len(s.sessions) }

// Cleaning returns how many cleanup calls are in flight, including calls
// issued by sessions that were replaced since.
func (s *Set) Cleaning() int { return len(s.inFlight) }

// CleanedCount returns how many sessions are Cleaned.
func (s *Set) CleanedCount() int {
	return s.count(StateCleaned)
}

// Reclaimed sums the bytes reclaimed by cleaned sessions.
func (s *Set) Reclaimed() int64 {
	var total int64
	for _, sess := range s.sessions {
		if sess.state == StateCleaned {
			total += sess.reclaimed
		}
	}
	return total
}

func (s *Set) count(state State) int {
	n := 0
	for _, sess := range s.sessions {
		if sess.state == state {
			n++
		}
	}
	return n
}
