package listing

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StayService/pkg/dbmetrics"
)

var listingColumns = []string{"id", "host_id", "title", "address", "price_per_night"}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, host_id, title, address, price_per_night FROM listings WHERE id = $1")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(listingColumns).AddRow(int64(10), int64(7), "Sea view flat", "Goa", "1000.00"))

	l, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(7), l.HostID)
	assert.Equal(t, "1000", l.NightlyRate.String())
	assert.True(t, l.IsHostedBy(7))

	mock.ExpectQuery("FROM listings").WillReturnRows(sqlmock.NewRows(listingColumns))
	_, err = repo.GetByID(context.Background(), 11)
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestRepository_LockByID_OutsideTransactionDoesNotLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))

	mock.ExpectQuery(`WHERE id = \$1$`).
		WillReturnRows(sqlmock.NewRows(listingColumns).AddRow(int64(10), int64(7), "t", "a", "1000"))

	_, err = repo.LockByID(context.Background(), 10)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
