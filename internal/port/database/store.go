// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/dlriva/proposalforge/internal/domain/proposal"
	"github.com/dlriva/proposalforge/internal/domain/user"
)

// Store is the port interface for database operations. Proposal operations
// are owner-scoped: an id that exists but belongs to another owner behaves
// exactly like a missing row.
type Store interface {
	// Proposals
	ListProposals(ctx context.Context, ownerID string) ([]proposal.Summary, error)
	GetProposal(ctx context.Context, ownerID, id string) (*proposal.Proposal, error)
	CreateProposal(ctx context.Context, p *proposal.Proposal) (*proposal.Proposal, error)
	UpdateProposal(ctx context.Context, p *proposal.Proposal) (*proposal.Proposal, error)
	DeleteProposal(ctx context.Context, ownerID, id string) error

	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
}
