package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatch/miniapp-backend/internal/telegram"
)

var userCols = []string{
	"id", "telegram_id", "first_name", "last_name", "username",
	"photo_url", "is_premium", "activity_description", "created_at", "updated_at",
}

func userRow(mockNow time.Time, id uint64, tgID int64, first, last, username string, updated time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).
		AddRow(id, tgID, first, last, username, "", false, "", mockNow, updated)
}

func TestUserRepo_Upsert_CreatesAndRefreshes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	// First login: row inserted, created_at == updated_at.
	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(42), "Ann", "", "", "", false).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE telegram_id=").
		WithArgs(int64(42)).
		WillReturnRows(userRow(now, 7, 42, "Ann", "", "", now))

	first, err := repo.Upsert(ctx, &telegram.User{ID: 42, FirstName: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), first.ID)
	assert.Equal(t, "Ann", first.FirstName)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	// Second login with a changed first name: same internal id comes back,
	// profile refreshed, updated_at advanced.
	later := now.Add(time.Minute)
	mock.ExpectExec("INSERT INTO users").
		WithArgs(int64(42), "Anna", "", "", "", false).
		WillReturnResult(sqlmock.NewResult(7, 2))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE telegram_id=").
		WithArgs(int64(42)).
		WillReturnRows(userRow(now, 7, 42, "Anna", "", "", later))

	second, err := repo.Upsert(ctx, &telegram.User{ID: 42, FirstName: "Anna"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Anna", second.FirstName)
	assert.True(t, second.UpdatedAt.After(second.CreatedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Upsert_StoreUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(sql.ErrConnDone)

	_, err = repo.Upsert(context.Background(), &telegram.User{ID: 42, FirstName: "Ann"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(userRow(now, 7, 42, "Ann", "Lee", "ann42", now))

	u, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.TelegramID)
	assert.Equal(t, "ann42", u.Username)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(uint64(8)).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_UpdateActivity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	mock.ExpectExec("UPDATE users SET activity_description=").
		WithArgs("selling houseplants", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateActivity(context.Background(), 7, "selling houseplants"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
