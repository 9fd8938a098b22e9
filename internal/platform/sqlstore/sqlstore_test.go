package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_RejectsNonMemoryDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)

	_, err = Open(context.Background(), "file:/tmp/store.db")
	require.ErrorContains(t, err, "not an in-memory database")
}

func TestOpen_SingleConnection(t *testing.T) {
	db, err := Open(context.Background(), NamedMemoryDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, Close(db)) })

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	require.NoError(t, db.Exec("CREATE TABLE probe (id INTEGER)").Error)
	require.NoError(t, db.Exec("INSERT INTO probe (id) VALUES (1)").Error)
	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM probe").Scan(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestClose_NilIsNoop(t *testing.T) {
	require.NoError(t, Close(nil))
}
