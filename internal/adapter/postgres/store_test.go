package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dlriva/proposalforge/internal/adapter/postgres"
	"github.com/dlriva/proposalforge/internal/domain"
	"github.com/dlriva/proposalforge/internal/domain/proposal"
	"github.com/dlriva/proposalforge/internal/domain/user"
)

// setupStore creates a pgxpool connection, runs all migrations, and returns a
// ready-to-use Store. The pool is closed via t.Cleanup.
func setupStore(t *testing.T) *postgres.Store {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("requires DATABASE_URL")
	}

	ctx := context.Background()

	if err := postgres.RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return postgres.NewStore(pool)
}

// createTestOwner registers a throwaway user and returns its ID. Proposals
// cascade on user deletion, so cleanup only needs to remove the user.
func createTestOwner(t *testing.T, store *postgres.Store) string {
	t.Helper()
	u := &user.User{
		ID:           uuid.NewString(),
		Email:        "owner-" + uuid.NewString()[:8] + "@example.com",
		Name:         "Test Owner",
		PasswordHash: "x",
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create test owner: %v", err)
	}
	return u.ID
}

func TestStore_ProposalCRUD(t *testing.T) {
	store := setupStore(t)
	ownerID := createTestOwner(t, store)
	ctx := context.Background()

	doc := proposal.DefaultDocument()
	doc.Basic.ClientName = "Acme Corp"
	doc.Basic.ProjectTitle = "Support Automation"
	doc.Normalize()

	total := 1200.0
	created, err := store.CreateProposal(ctx, &proposal.Proposal{
		OwnerID:      ownerID,
		ClientName:   doc.Basic.ClientName,
		ProjectTitle: doc.Basic.ProjectTitle,
		Status:       proposal.StatusDraft,
		SelectedTier: "Smart",
		TotalValue:   &total,
		Document:     doc,
	})
	if err != nil {
		t.Fatalf("CreateProposal: %v", err)
	}
	if created.ID == "" {
		t.Fatal("CreateProposal returned empty ID")
	}
	if created.ClientName != "Acme Corp" {
		t.Fatalf("expected client 'Acme Corp', got %q", created.ClientName)
	}

	t.Run("Get", func(t *testing.T) {
		got, err := store.GetProposal(ctx, ownerID, created.ID)
		if err != nil {
			t.Fatalf("GetProposal: %v", err)
		}
		if got.Document.Basic.ClientName != "Acme Corp" {
			t.Fatalf("document round-trip lost client name, got %q", got.Document.Basic.ClientName)
		}
		if got.SelectedTier != "Smart" {
			t.Fatalf("expected selected tier 'Smart', got %q", got.SelectedTier)
		}
		if got.TotalValue == nil || *got.TotalValue != 1200 {
			t.Fatalf("expected total value 1200, got %v", got.TotalValue)
		}
	})

	t.Run("GetWrongOwner", func(t *testing.T) {
		otherOwner := createTestOwner(t, store)
		_, err := store.GetProposal(ctx, otherOwner, created.ID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		created.Status = proposal.StatusSent
		created.ClientName = "Acme Corp Ltd"
		created.Document.Basic.ClientName = "Acme Corp Ltd"
		updated, err := store.UpdateProposal(ctx, created)
		if err != nil {
			t.Fatalf("UpdateProposal: %v", err)
		}
		if updated.Status != proposal.StatusSent {
			t.Fatalf("expected status sent, got %q", updated.Status)
		}
		if !updated.UpdatedAt.After(created.CreatedAt) {
			t.Fatal("expected updated_at to advance")
		}
	})

	t.Run("List", func(t *testing.T) {
		summaries, err := store.ListProposals(ctx, ownerID)
		if err != nil {
			t.Fatalf("ListProposals: %v", err)
		}
		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
		if summaries[0].ID != created.ID {
			t.Fatalf("expected summary for %s, got %s", created.ID, summaries[0].ID)
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		emptyOwner := createTestOwner(t, store)
		summaries, err := store.ListProposals(ctx, emptyOwner)
		if err != nil {
			t.Fatalf("ListProposals: %v", err)
		}
		if summaries == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(summaries) != 0 {
			t.Fatalf("expected 0 summaries, got %d", len(summaries))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.DeleteProposal(ctx, ownerID, created.ID); err != nil {
			t.Fatalf("DeleteProposal: %v", err)
		}
		if err := store.DeleteProposal(ctx, ownerID, created.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on double delete, got %v", err)
		}
	})
}

func TestStore_UserLookup(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	u := &user.User{
		ID:           uuid.NewString(),
		Email:        "lookup-" + uuid.NewString()[:8] + "@example.com",
		Name:         "Lookup User",
		PasswordHash: "hash",
	}
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := store.GetUserByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected user %s, got %s", u.ID, got.ID)
	}

	if _, err := store.GetUser(ctx, uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}
