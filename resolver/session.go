package resolver

import (
	"context"
	"sync"

	"github.com/tranvictor/jarvis-contacts/logger"
)

// Session resolves successive inputs of one form field. Every Update gets
// a sequence number; a result is published only if no later Update was
// issued in the meantime, so a slow name lookup can never overwrite the
// state of a newer input.
type Session struct {
	resolver  *Resolver
	networkID string
	mode      Mode
	onChange  func(State)

	mu     sync.Mutex
	seq    uint64
	latest State
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession creates a Session. onChange, which may be nil, receives every
// published State in order. It is called with the session lock held and
// must not call back into the Session.
func NewSession(r *Resolver, networkID string, mode Mode, onChange func(State)) *Session {
	return &Session{
		resolver:  r,
		networkID: networkID,
		mode:      mode,
		onChange:  onChange,
		latest:    State{NetworkID: networkID, Mode: mode},
	}
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) NetworkID() string {
	return s.networkID
}

// Update starts resolving raw and returns its sequence number. Inputs that
// need no lookup are published before Update returns; names are resolved
// in the background and any previous in-flight lookup is cancelled.
func (s *Session) Update(ctx context.Context, raw string) uint64 {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	seq := s.seq

	if Classify(raw) != KindName {
		st := s.resolver.Resolve(ctx, raw, s.networkID, s.mode)
		st.Seq = seq
		s.publishLocked(st)
		s.mu.Unlock()
		return seq
	}

	lookupCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer cancel()
		st := s.resolver.Resolve(lookupCtx, raw, s.networkID, s.mode)
		st.Seq = seq
		s.publish(st)
	}()
	return seq
}

func (s *Session) publish(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishLocked(st)
}

func (s *Session) publishLocked(st State) {
	if st.Seq != s.seq {
		logger.L().Debugw("discarding stale resolution",
			"input", st.Input, "seq", st.Seq, "latest", s.seq)
		return
	}
	s.latest = st
	if s.onChange != nil {
		s.onChange(st)
	}
}

// Latest returns the most recently published State.
func (s *Session) Latest() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Wait blocks until every background lookup started so far has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels the in-flight lookup, if any, and waits for it.
func (s *Session) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}
