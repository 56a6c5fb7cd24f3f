package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dlriva/proposalforge/internal/domain"
)

// scannable lets scanProposal and scanUser accept both pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// nullIfEmpty maps "" to NULL for nullable text columns such as
// selected_tier on a proposal that has no tier chosen yet.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// orEmpty replaces a nil slice with an empty one so list responses
// marshal as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// notFoundWrap translates pgx.ErrNoRows into domain.ErrNotFound, keeping
// the row-level detail in the message. Any other error is wrapped as-is.
func notFoundWrap(err error, format string, args ...any) error {
	cause := err
	if errors.Is(err, pgx.ErrNoRows) {
		cause = domain.ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, cause)...)
}

// execExpectOne turns a zero-row UPDATE or DELETE into domain.ErrNotFound.
// Owner-scoped statements hit this when the id exists but belongs to a
// different account.
func execExpectOne(tag pgconn.CommandTag, err error, format string, args ...any) error {
	switch {
	case err != nil:
		return fmt.Errorf(format+": %w", append(args, err)...)
	case tag.RowsAffected() == 0:
		return fmt.Errorf(format+": %w", append(args, domain.ErrNotFound)...)
	}
	return nil
}
