package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dlriva/proposalforge/internal/domain"
	"github.com/dlriva/proposalforge/internal/domain/proposal"
)

// DraftService manages in-memory editing sessions. Each session pairs a
// draft document with a step sequencer and belongs to one owner. Sessions
// live only in this process; an idle session is reclaimed after the TTL.
type DraftService struct {
	proposals *ProposalService
	ttl       time.Duration

	mu       sync.Mutex
	sessions map[string]*draftSession
}

// draftSession pairs one draft with its sequencer. The session mutex
// serializes handlers that land on different goroutines for the same
// session; concurrent editors remain unsupported. ownerID is immutable
// and lastUsed is guarded by the service lock.
type draftSession struct {
	ownerID  string
	lastUsed time.Time

	mu         sync.Mutex
	proposalID string // empty until first save of a new proposal
	draft      *proposal.Draft
	seq        *proposal.Sequencer
}

// SessionState is the session view returned to the editor.
type SessionState struct {
	ID         string            `json:"id"`
	ProposalID string            `json:"proposal_id,omitempty"`
	Step       int               `json:"step"`
	MaxReached int               `json:"max_reached"`
	FinalStep  bool              `json:"final_step"`
	Document   proposal.Document `json:"document"`
}

// NewDraftService creates a new draft session manager.
func NewDraftService(proposals *ProposalService, ttl time.Duration) *DraftService {
	return &DraftService{
		proposals: proposals,
		ttl:       ttl,
		sessions:  make(map[string]*draftSession),
	}
}

// Start opens a new session. With a proposal id the session edits that
// proposal's document; otherwise it starts from the seeded defaults.
func (s *DraftService) Start(ctx context.Context, ownerID, proposalID string) (*SessionState, error) {
	sess := &draftSession{
		ownerID:  ownerID,
		draft:    proposal.NewDraft(),
		seq:      proposal.NewSequencer(),
		lastUsed: time.Now(),
	}

	if proposalID != "" {
		p, err := s.proposals.Get(ctx, ownerID, proposalID)
		if err != nil {
			return nil, err
		}
		sess.proposalID = p.ID
		sess.draft = proposal.NewDraftFrom(p.Document)
	}

	id := uuid.NewString()
	state := s.state(id, sess) // built before the session is published

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return state, nil
}

// Get returns the current state of a session.
func (s *DraftService) Get(ownerID, sessionID string) (*SessionState, error) {
	sess, err := s.lookup(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.state(sessionID, sess), nil
}

// SubmitStep validates and applies a section payload for the given step,
// then advances when the step is the current one. The draft is untouched
// when validation fails.
func (s *DraftService) SubmitStep(ownerID, sessionID string, step int, payload json.RawMessage) (*SessionState, error) {
	sess, err := s.lookup(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.seq.GoTo(step) {
		return nil, fmt.Errorf("%w: step %d is not reachable", domain.ErrValidation, step)
	}
	key := proposal.StepSection(step)

	prev := sess.draft.Get()
	if err := sess.draft.Patch(key, payload); err != nil {
		return nil, err
	}
	doc := sess.draft.Get()
	if err := doc.ValidateSection(key); err != nil {
		sess.draft.Set(prev)
		return nil, err
	}

	sess.seq.Advance()
	return s.state(sessionID, sess), nil
}

// GoTo moves the session to an already-reached step.
func (s *DraftService) GoTo(ownerID, sessionID string, step int) (*SessionState, error) {
	sess, err := s.lookup(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.seq.GoTo(step) {
		return nil, fmt.Errorf("%w: step %d is not reachable", domain.ErrValidation, step)
	}
	return s.state(sessionID, sess), nil
}

// Save persists the session's document: an update when the session came
// from an existing proposal (or was saved before), a create otherwise.
// The session stays open so editing can continue.
func (s *DraftService) Save(ctx context.Context, ownerID, sessionID string) (*proposal.Proposal, error) {
	sess, err := s.lookup(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	doc := sess.draft.Get()

	var p *proposal.Proposal
	if sess.proposalID == "" {
		p, err = s.proposals.Create(ctx, ownerID, doc)
	} else {
		p, err = s.proposals.Update(ctx, ownerID, sess.proposalID, doc, "")
	}
	if err != nil {
		return nil, err
	}

	sess.proposalID = p.ID
	return p, nil
}

// Close discards a session.
func (s *DraftService) Close(ownerID, sessionID string) error {
	if _, err := s.lookup(ownerID, sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// StartSweeper launches a background goroutine that reclaims idle
// sessions. It stops when ctx is cancelled.
func (s *DraftService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.sweep(time.Now()); n > 0 {
					slog.Info("reclaimed idle draft sessions", "count", n)
				}
			}
		}
	}()
}

func (s *DraftService) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reclaimed int
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.ttl {
			delete(s.sessions, id)
			reclaimed++
		}
	}
	return reclaimed
}

// lookup fetches a session, enforcing ownership and refreshing the idle
// timer. A session owned by someone else behaves like a missing one.
func (s *DraftService) lookup(ownerID, sessionID string) (*draftSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.ownerID != ownerID {
		return nil, fmt.Errorf("draft session %s: %w", sessionID, domain.ErrNotFound)
	}
	sess.lastUsed = time.Now()
	return sess, nil
}

// state builds the editor view. Callers hold sess.mu.
func (s *DraftService) state(id string, sess *draftSession) *SessionState {
	return &SessionState{
		ID:         id,
		ProposalID: sess.proposalID,
		Step:       sess.seq.Current(),
		MaxReached: sess.seq.MaxReached(),
		FinalStep:  sess.seq.IsFinal(),
		Document:   sess.draft.Get(),
	}
}
