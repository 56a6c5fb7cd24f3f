package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dlriva/proposalforge/internal/domain/proposal"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) ListProposals(ctx context.Context, ownerID string) ([]proposal.Summary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, client_name, project_title, status, selected_tier, total_value, created_at, updated_at
		 FROM proposals WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	defer rows.Close()

	var summaries []proposal.Summary
	for rows.Next() {
		var (
			sum  proposal.Summary
			tier *string
		)
		if err := rows.Scan(&sum.ID, &sum.ClientName, &sum.ProjectTitle, &sum.Status, &tier, &sum.TotalValue, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proposal summary: %w", err)
		}
		if tier != nil {
			sum.SelectedTier = *tier
		}
		summaries = append(summaries, sum)
	}
	return orEmpty(summaries), rows.Err()
}

func (s *Store) GetProposal(ctx context.Context, ownerID, id string) (*proposal.Proposal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, client_name, project_title, status, selected_tier, total_value, data, created_at, updated_at
		 FROM proposals WHERE id = $1 AND owner_id = $2`, id, ownerID)

	p, err := scanProposal(row)
	if err != nil {
		return nil, notFoundWrap(err, "get proposal %s", id)
	}
	return p, nil
}

func (s *Store) CreateProposal(ctx context.Context, p *proposal.Proposal) (*proposal.Proposal, error) {
	data, err := json.Marshal(p.Document)
	if err != nil {
		return nil, fmt.Errorf("marshal proposal document: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO proposals (owner_id, client_name, project_title, status, selected_tier, total_value, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, owner_id, client_name, project_title, status, selected_tier, total_value, data, created_at, updated_at`,
		p.OwnerID, p.ClientName, p.ProjectTitle, p.Status, nullIfEmpty(p.SelectedTier), p.TotalValue, data)

	created, err := scanProposal(row)
	if err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	return created, nil
}

func (s *Store) UpdateProposal(ctx context.Context, p *proposal.Proposal) (*proposal.Proposal, error) {
	data, err := json.Marshal(p.Document)
	if err != nil {
		return nil, fmt.Errorf("marshal proposal document: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE proposals
		 SET client_name = $3, project_title = $4, status = $5, selected_tier = $6, total_value = $7, data = $8, updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING id, owner_id, client_name, project_title, status, selected_tier, total_value, data, created_at, updated_at`,
		p.ID, p.OwnerID, p.ClientName, p.ProjectTitle, p.Status, nullIfEmpty(p.SelectedTier), p.TotalValue, data)

	updated, err := scanProposal(row)
	if err != nil {
		return nil, notFoundWrap(err, "update proposal %s", p.ID)
	}
	return updated, nil
}

func (s *Store) DeleteProposal(ctx context.Context, ownerID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM proposals WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return execExpectOne(tag, err, "delete proposal %s", id)
}

func scanProposal(row scannable) (*proposal.Proposal, error) {
	var (
		p    proposal.Proposal
		tier *string
		data []byte
	)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.ClientName, &p.ProjectTitle, &p.Status, &tier, &p.TotalValue, &data, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if tier != nil {
		p.SelectedTier = *tier
	}
	if err := json.Unmarshal(data, &p.Document); err != nil {
		return nil, fmt.Errorf("unmarshal proposal document: %w", err)
	}
	return &p, nil
}
