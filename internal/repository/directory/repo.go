// Package directory looks up user contact details for channel transports
// and resolves unsubscribe tokens. Token signing and validation happen
// upstream; here the token is an opaque stored column.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wb-go/wbf/dbpg"
)

var ErrUserNotFound = errors.New("user not found")

type Repository struct {
	db *dbpg.DB
}

func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// EmailFor returns the email address of a user.
func (r *Repository) EmailFor(ctx context.Context, userID string) (string, error) {
	query := `
		SELECT email
		FROM users
		WHERE id = $1;
    `

	var email string
	err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user email: %w", err)
	}

	return email, nil
}

// UserForToken resolves an unsubscribe token to a user id.
func (r *Repository) UserForToken(ctx context.Context, token string) (string, error) {
	query := `
		SELECT id
		FROM users
		WHERE unsubscribe_token = $1;
    `

	var userID string
	err := r.db.Master.QueryRowContext(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to resolve unsubscribe token: %w", err)
	}

	return userID, nil
}
