package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/seeder/internal/repository"
)

func TestStore_InTx_Commits(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	var n int
	err := NewStore(mock).InTx(context.Background(), func(r repository.Repositories) error {
		var err error
		n, err = r.Catalog.CountSizes(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InTx_RollsBackOnError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("stage failed")
	err := NewStore(mock).InTx(context.Background(), func(repository.Repositories) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_Truncate(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`TRUNCATE TABLE "payments", "orders" RESTART IDENTITY CASCADE`)).
		WillReturnResult(pgxmock.NewResult("TRUNCATE TABLE", 0))

	err := NewMaintenanceRepository(mock).Truncate(context.Background(), []string{"payments", "orders"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_TruncateQuotesNames(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`TRUNCATE TABLE "x; DROP TABLE y" RESTART IDENTITY CASCADE`)).
		WillReturnResult(pgxmock.NewResult("TRUNCATE TABLE", 0))

	require.NoError(t, NewMaintenanceRepository(mock).Truncate(context.Background(), []string{"x; DROP TABLE y"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_TruncateNothing(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	require.NoError(t, NewMaintenanceRepository(mock).Truncate(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeededTables_ChildrenBeforeParents(t *testing.T) {
	pos := make(map[string]int, len(repository.SeededTables))
	for i, name := range repository.SeededTables {
		pos[name] = i
	}

	pairs := [][2]string{
		{"promotion_products", "promotions"},
		{"product_reviews", "orders"},
		{"payments", "orders"},
		{"order_items", "orders"},
		{"product_images", "product_variants"},
		{"product_variants", "products"},
		{"products", "categories"},
	}
	for _, p := range pairs {
		assert.Less(t, pos[p[0]], pos[p[1]], "%s must come before %s", p[0], p[1])
	}
}
