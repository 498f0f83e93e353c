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

	"github.com/AmeyKuradeAK/nuventa/internal/domain"
	"github.com/AmeyKuradeAK/nuventa/pkg/database"
	apperrors "github.com/AmeyKuradeAK/nuventa/pkg/errors"
)

func newMembershipTestFixture(t *testing.T) (*MembershipRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewMembershipRepository(mock)
	return repo, mock
}

func membershipRows(cart, wishlist []string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"cart", "wishlist", "updated_at"}).
		AddRow(cart, wishlist, time.Now())
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestMembershipRepository_Get_Success(t *testing.T) {
	repo, mock := newMembershipTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT cart, wishlist, updated_at").
		WithArgs("user-1").
		WillReturnRows(membershipRows([]string{"p1", "p2"}, []string{"p3"}))

	m, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", m.Identity)
	assert.Equal(t, []string{"p1", "p2"}, m.Cart)
	assert.Equal(t, []string{"p3"}, m.Wishlist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Get_NotFound(t *testing.T) {
	repo, mock := newMembershipTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT cart, wishlist, updated_at").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Get_NullArrays(t *testing.T) {
	repo, mock := newMembershipTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT cart, wishlist, updated_at").
		WithArgs("user-1").
		WillReturnRows(membershipRows(nil, nil))

	m, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{}, m.Cart)
	assert.Equal(t, []string{}, m.Wishlist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Get_TimeoutIsUnavailable(t *testing.T) {
	repo, mock := newMembershipTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT cart, wishlist, updated_at").
		WithArgs("user-1").
		WillReturnError(context.DeadlineExceeded)

	_, err := repo.Get(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Toggle
// ---------------------------------------------------------------------------

func TestMembershipRepository_Toggle_Add(t *testing.T) {
	repo, mock := newMembershipTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO shoppers").
		WithArgs("user-1", "p9").
		WillReturnRows(membershipRows([]string{"p1", "p9"}, []string{}))

	m, err := repo.Toggle(context.Background(), "user-1", domain.SetCart, "p9", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p9"}, m.Cart)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Toggle_Remove(t *testing.T) {
	repo, mock := newMembershipTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE shoppers").
		WithArgs("user-1", "p3").
		WillReturnRows(membershipRows([]string{}, []string{}))

	m, err := repo.Toggle(context.Background(), "user-1", domain.SetWishlist, "p3", false)
	require.NoError(t, err)
	assert.Empty(t, m.Wishlist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Toggle_RemoveMissingRecord(t *testing.T) {
	repo, mock := newMembershipTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE shoppers").
		WithArgs("ghost", "p1").
		WillReturnError(pgx.ErrNoRows)

	m, err := repo.Toggle(context.Background(), "ghost", domain.SetCart, "p1", false)
	require.NoError(t, err)
	assert.Equal(t, "ghost", m.Identity)
	assert.Empty(t, m.Cart)
	assert.Empty(t, m.Wishlist)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_Toggle_QueryError(t *testing.T) {
	repo, mock := newMembershipTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO shoppers").
		WithArgs("user-1", "p1").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Toggle(context.Background(), "user-1", domain.SetCart, "p1", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add to cart")
	assert.NoError(t, mock.ExpectationsWereMet())
}
