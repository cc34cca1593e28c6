package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Эти тесты ходят в настоящие базы и запускаются только при заданных переменных.

func exerciseBlobStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "test-" + time.Now().Format("20060102150405.000000000")

	_, err := store.Get(ctx, key)
	require.ErrorIs(t, err, ErrBlobNotFound)

	require.NoError(t, store.Put(ctx, key, []byte(`{"schemaVersion":2,"teams":[]}`)))
	require.NoError(t, store.Put(ctx, key, []byte(`{"schemaVersion":2,"teams":[{"id":"t1","name":"Lions"}]}`)))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":2,"teams":[{"id":"t1","name":"Lions"}]}`, string(got))
}

func TestPostgresBlobStoreIntegration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, EnsureAppStateSchema(context.Background(), db))
	exerciseBlobStore(t, NewPostgresBlobStore(db))
}

func TestMongoBlobStoreIntegration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, uri)
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	exerciseBlobStore(t, NewMongoBlobStore(client.Database("tournament_test")))
}
