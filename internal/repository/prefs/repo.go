package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/kraalhub/notifier/internal/model"
)

// Repository provides methods to interact with the notification_prefs table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new preferences repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetPreferences returns the stored preferences for a user, or the defaults
// when the user has never saved any. Absence of a row is not an error.
func (r *Repository) GetPreferences(ctx context.Context, userID string) (model.Prefs, error) {
	query := `
		SELECT user_id, email_global, push_global, inapp_global,
		       buy_request, listing, "order",
		       digest_frequency, max_per_day,
		       species_interest, provinces_interest, updated_at
		FROM notification_prefs
		WHERE user_id = $1;
    `

	var p model.Prefs
	err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.EmailGlobal, &p.PushGlobal, &p.InAppGlobal,
		&p.BuyRequest, &p.Listing, &p.Order,
		&p.DigestFrequency, &p.MaxPerDay,
		pq.Array(&p.SpeciesInterest), pq.Array(&p.ProvincesInterest), &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultPrefs(userID), nil
		}
		return model.Prefs{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	return p, nil
}

// UpsertPreferences writes the full preference row for a user, creating it
// lazily on first write.
func (r *Repository) UpsertPreferences(ctx context.Context, p model.Prefs) error {
	query := `
		INSERT INTO notification_prefs (
		    user_id, email_global, push_global, inapp_global,
		    buy_request, listing, "order",
		    digest_frequency, max_per_day,
		    species_interest, provinces_interest, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (user_id) DO UPDATE SET
		    email_global = EXCLUDED.email_global,
		    push_global = EXCLUDED.push_global,
		    inapp_global = EXCLUDED.inapp_global,
		    buy_request = EXCLUDED.buy_request,
		    listing = EXCLUDED.listing,
		    "order" = EXCLUDED."order",
		    digest_frequency = EXCLUDED.digest_frequency,
		    max_per_day = EXCLUDED.max_per_day,
		    species_interest = EXCLUDED.species_interest,
		    provinces_interest = EXCLUDED.provinces_interest,
		    updated_at = now();
    `

	_, err := r.db.ExecContext(
		ctx, query,
		p.UserID, p.EmailGlobal, p.PushGlobal, p.InAppGlobal,
		p.BuyRequest, p.Listing, p.Order,
		p.DigestFrequency, p.MaxPerDay,
		pq.Array(p.SpeciesInterest), pq.Array(p.ProvincesInterest),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}

// DisableEmail forces email_global off for a user, creating the row with
// defaults if needed. Used by the unsubscribe flow.
func (r *Repository) DisableEmail(ctx context.Context, userID string) error {
	p, err := r.GetPreferences(ctx, userID)
	if err != nil {
		return err
	}

	p.EmailGlobal = false
	return r.UpsertPreferences(ctx, p)
}
