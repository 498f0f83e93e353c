package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeyKuradeAK/nuventa/pkg/database"
	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

func newProfileTestFixture(t *testing.T) (*ProfileRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewProfileRepository(mock)
	return repo, mock
}

func profileRows(first, last, address string, cart, wishlist []string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"first_name", "last_name", "address", "cart", "wishlist", "updated_at"}).
		AddRow(first, last, address, cart, wishlist, time.Now())
}

func TestProfileRepository_Get_Success(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT first_name, last_name, address").
		WithArgs("user-1").
		WillReturnRows(profileRows("Asha", "Rao", "12 Marine Drive", []string{"p1"}, []string{"p2"}))

	p, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.FirstName)
	assert.Equal(t, "Rao", p.LastName)
	assert.Equal(t, []string{"p1"}, p.Cart)
	assert.Equal(t, []string{"p2"}, p.Wishlist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Get_NotFound(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT first_name, last_name, address").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Upsert_Success(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO shoppers").
		WithArgs("user-1", "Asha", "Rao", "12 Marine Drive").
		WillReturnRows(profileRows("Asha", "Rao", "12 Marine Drive", nil, nil))

	p, err := repo.Upsert(context.Background(), "user-1", "Asha", "Rao", "12 Marine Drive")
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.FirstName)
	assert.Equal(t, []string{}, p.Cart)
	assert.Equal(t, []string{}, p.Wishlist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Upsert_QueryError(t *testing.T) {
	repo, mock := newProfileTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO shoppers").
		WithArgs("user-1", "Asha", "Rao", "").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Upsert(context.Background(), "user-1", "Asha", "Rao", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert profile")
	assert.NoError(t, mock.ExpectationsWereMet())
}
