package mongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/mongo"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/repotest"
)

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err, "Failed to start MongoDB container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	store, err := mongo.New(ctx, mongo.Options{URI: uri, Database: "dashboard_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Ping(ctx))

	repotest.RunStore(t, store)
}

func TestNew_InvalidURI(t *testing.T) {
	_, err := mongo.New(context.Background(), mongo.Options{URI: "http://localhost"})
	require.Error(t, err)
}
