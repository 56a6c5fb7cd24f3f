package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dlriva/proposalforge/internal/domain"
	"github.com/dlriva/proposalforge/internal/domain/proposal"
)

func newTestDraftService(store *mockStore) *DraftService {
	return NewDraftService(NewProposalService(store, newMockCache()), time.Hour)
}

func basicPayload(t *testing.T, clientName, title string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(proposal.Basic{
		ClientName:       clientName,
		ProjectTitle:     title,
		ConsultancyName:  "DL Consulting",
		ConsultancyEmail: "hello@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestDraftService_StartFresh(t *testing.T) {
	svc := newTestDraftService(&mockStore{})

	state, err := svc.Start(context.Background(), "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.ID == "" {
		t.Fatal("expected session id")
	}
	if state.Step != 1 || state.MaxReached != 1 {
		t.Fatalf("expected fresh session at step 1, got %d/%d", state.Step, state.MaxReached)
	}
	// Seeded defaults are present.
	if len(state.Document.Timeline.NextSteps) != 3 {
		t.Errorf("expected 3 seeded next steps, got %d", len(state.Document.Timeline.NextSteps))
	}
}

func TestDraftService_StartFromProposal(t *testing.T) {
	store := &mockStore{}
	proposals := NewProposalService(store, newMockCache())
	svc := NewDraftService(proposals, time.Hour)
	ctx := context.Background()

	p, err := proposals.Create(ctx, "owner-1", validDoc())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	state, err := svc.Start(ctx, "owner-1", p.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.ProposalID != p.ID {
		t.Errorf("proposal id = %q, want %q", state.ProposalID, p.ID)
	}
	if state.Document.Basic.ClientName != "Acme Corp" {
		t.Errorf("expected loaded document, got client %q", state.Document.Basic.ClientName)
	}

	// Another owner's proposal is invisible.
	if _, err := svc.Start(ctx, "owner-2", p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign proposal, got %v", err)
	}
}

func TestDraftService_SubmitStepAdvances(t *testing.T) {
	svc := newTestDraftService(&mockStore{})
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	state, err = svc.SubmitStep("owner-1", state.ID, 1, basicPayload(t, "Acme", "Rollout"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if state.Step != 2 {
		t.Errorf("step = %d, want 2", state.Step)
	}
	if state.Document.Basic.ClientName != "Acme" {
		t.Errorf("client = %q, want Acme", state.Document.Basic.ClientName)
	}
}

func TestDraftService_SubmitStepValidationLeavesDraftUntouched(t *testing.T) {
	svc := newTestDraftService(&mockStore{})
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitStep("owner-1", state.ID, 1, basicPayload(t, "Acme", "Rollout")); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Empty client name fails basic validation.
	_, err = svc.SubmitStep("owner-1", state.ID, 1, basicPayload(t, "", "Rollout"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	after, err := svc.Get("owner-1", state.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.Document.Basic.ClientName != "Acme" {
		t.Errorf("draft changed on failed validation: %q", after.Document.Basic.ClientName)
	}
}

func TestDraftService_SubmitUnreachedStep(t *testing.T) {
	svc := newTestDraftService(&mockStore{})

	state, err := svc.Start(context.Background(), "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.SubmitStep("owner-1", state.ID, 4, basicPayload(t, "A", "B")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unreached step, got %v", err)
	}
}

func TestDraftService_GoTo(t *testing.T) {
	svc := newTestDraftService(&mockStore{})
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitStep("owner-1", state.ID, 1, basicPayload(t, "Acme", "Rollout")); err != nil {
		t.Fatalf("submit: %v", err)
	}

	back, err := svc.GoTo("owner-1", state.ID, 1)
	if err != nil {
		t.Fatalf("goto: %v", err)
	}
	if back.Step != 1 || back.MaxReached != 2 {
		t.Fatalf("expected step 1 with high-water 2, got %d/%d", back.Step, back.MaxReached)
	}

	if _, err := svc.GoTo("owner-1", state.ID, 5); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for forward jump, got %v", err)
	}
}

func TestDraftService_SaveCreatesThenUpdates(t *testing.T) {
	store := &mockStore{}
	svc := newTestDraftService(store)
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitStep("owner-1", state.ID, 1, basicPayload(t, "Acme", "Rollout")); err != nil {
		t.Fatalf("submit: %v", err)
	}

	p, err := svc.Save(ctx, "owner-1", state.ID)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.ID == "" || p.Status != proposal.StatusDraft {
		t.Fatalf("unexpected saved proposal: %+v", p)
	}

	// Second save updates the same row.
	if _, err := svc.SubmitStep("owner-1", state.ID, 2, mustJSON(t, proposal.Context{CurrentSituation: "slow"})); err != nil {
		t.Fatalf("submit: %v", err)
	}
	again, err := svc.Save(ctx, "owner-1", state.ID)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if again.ID != p.ID {
		t.Fatalf("second save created a new row: %s vs %s", again.ID, p.ID)
	}
	if len(store.proposals) != 1 {
		t.Fatalf("expected 1 stored proposal, got %d", len(store.proposals))
	}
}

func TestDraftService_SaveRequiresClientName(t *testing.T) {
	svc := newTestDraftService(&mockStore{})
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.Save(ctx, "owner-1", state.ID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty required fields, got %v", err)
	}
}

func TestDraftService_FailedSaveLeavesDraftUntouched(t *testing.T) {
	store := &mockStore{}
	svc := newTestDraftService(store)
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitStep("owner-1", state.ID, 1, basicPayload(t, "Acme", "Rollout")); err != nil {
		t.Fatalf("submit basic: %v", err)
	}

	// Tokens that save-time normalization would rewrite to fallbacks.
	raw, err := json.Marshal(proposal.Context{Challenges: []proposal.Challenge{
		{Icon: "custom-icon", Title: "Slow turnaround", Color: "magenta"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SubmitStep("owner-1", state.ID, 2, raw); err != nil {
		t.Fatalf("submit context: %v", err)
	}

	store.createErr = errors.New("connection refused")
	if _, err := svc.Save(ctx, "owner-1", state.ID); err == nil {
		t.Fatal("expected save to fail")
	}

	after, err := svc.Get("owner-1", state.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	ch := after.Document.Context.Challenges[0]
	if ch.Color != "magenta" || ch.Icon != "custom-icon" {
		t.Fatalf("failed save altered the draft: color=%q icon=%q", ch.Color, ch.Icon)
	}

	// The untouched draft saves cleanly once the store recovers.
	store.createErr = nil
	if _, err := svc.Save(ctx, "owner-1", state.ID); err != nil {
		t.Fatalf("retry save: %v", err)
	}
}

func TestDraftService_ConcurrentSessionAccess(t *testing.T) {
	svc := newTestDraftService(&mockStore{})
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitStep("owner-1", state.ID, 1, basicPayload(t, "Acme", "Rollout")); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Reads and step moves on one session from several goroutines must
	// not corrupt the sequencer (run with -race).
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				if _, err := svc.Get("owner-1", state.ID); err != nil {
					t.Errorf("get: %v", err)
				}
				if _, err := svc.GoTo("owner-1", state.ID, 1); err != nil {
					t.Errorf("goto: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	after, err := svc.Get("owner-1", state.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.MaxReached != 2 {
		t.Errorf("max reached = %d, want 2", after.MaxReached)
	}
}

func TestDraftService_OwnershipAndClose(t *testing.T) {
	svc := newTestDraftService(&mockStore{})
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.Get("owner-2", state.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign session, got %v", err)
	}

	if err := svc.Close("owner-1", state.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := svc.Get("owner-1", state.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after close, got %v", err)
	}
}

func TestDraftService_SweepReclaimsIdleSessions(t *testing.T) {
	svc := NewDraftService(NewProposalService(&mockStore{}, newMockCache()), time.Minute)
	ctx := context.Background()

	state, err := svc.Start(ctx, "owner-1", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Not yet idle.
	if n := svc.sweep(time.Now()); n != 0 {
		t.Fatalf("expected 0 reclaimed, got %d", n)
	}
	// Pretend an hour passed.
	if n := svc.sweep(time.Now().Add(time.Hour)); n != 1 {
		t.Fatalf("expected 1 reclaimed, got %d", n)
	}
	if _, err := svc.Get("owner-1", state.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}
