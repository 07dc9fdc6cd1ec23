package prefs

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"

	"github.com/kraalhub/notifier/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func prefColumns() []string {
	return []string{
		"user_id", "email_global", "push_global", "inapp_global",
		"buy_request", "listing", "order",
		"digest_frequency", "max_per_day",
		"species_interest", "provinces_interest", "updated_at",
	}
}

func TestGetPreferences_Stored(t *testing.T) {
	repo, mock := setupMockDB(t)

	now := time.Now()
	mock.ExpectQuery("SELECT user_id, email_global").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(prefColumns()).
			AddRow("user-1", false, true, true, true, false, true,
				model.DigestDaily, 3, "{Cattle,Goats}", "{Gauteng}", now))

	p, err := repo.GetPreferences(context.Background(), "user-1")
	require.NoError(t, err)

	assert.False(t, p.EmailGlobal)
	assert.False(t, p.Listing)
	assert.Equal(t, model.DigestDaily, p.DigestFrequency)
	assert.Equal(t, 3, p.MaxPerDay)
	assert.Equal(t, []string{"Cattle", "Goats"}, p.SpeciesInterest)
	assert.Equal(t, []string{"Gauteng"}, p.ProvincesInterest)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPreferences_DefaultsWhenAbsent(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT user_id, email_global").
		WithArgs("new-user").
		WillReturnRows(sqlmock.NewRows(prefColumns()))

	p, err := repo.GetPreferences(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPrefs("new-user"), p)

	// Reading again without a write must yield the same defaults.
	mock.ExpectQuery("SELECT user_id, email_global").
		WithArgs("new-user").
		WillReturnRows(sqlmock.NewRows(prefColumns()))

	again, err := repo.GetPreferences(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Equal(t, p, again)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertPreferences(t *testing.T) {
	repo, mock := setupMockDB(t)

	p := model.DefaultPrefs("user-1")
	p.MaxPerDay = 10
	p.SpeciesInterest = []string{"Sheep"}

	mock.ExpectExec("INSERT INTO notification_prefs").
		WithArgs(p.UserID, p.EmailGlobal, p.PushGlobal, p.InAppGlobal,
			p.BuyRequest, p.Listing, p.Order,
			p.DigestFrequency, p.MaxPerDay,
			pq.Array(p.SpeciesInterest), pq.Array(p.ProvincesInterest)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertPreferences(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDisableEmail(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT user_id, email_global").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(prefColumns()))

	p := model.DefaultPrefs("user-1")
	p.EmailGlobal = false

	mock.ExpectExec("INSERT INTO notification_prefs").
		WithArgs(p.UserID, false, p.PushGlobal, p.InAppGlobal,
			p.BuyRequest, p.Listing, p.Order,
			p.DigestFrequency, p.MaxPerDay,
			pq.Array(p.SpeciesInterest), pq.Array(p.ProvincesInterest)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DisableEmail(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
