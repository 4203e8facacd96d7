package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/memory"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/repotest"
)

func TestStore(t *testing.T) {
	repotest.RunStore(t, memory.New())
}

func TestUnitRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Units()

	unit := &domain.Unit{ID: domain.NewID(), Name: "Eng"}
	require.NoError(t, repo.Create(ctx, unit))

	got, err := repo.GetByID(ctx, unit.ID)
	require.NoError(t, err)
	got.Name = "changed"
	got.Sites = append(got.Sites, domain.Site{ID: "x"})

	again, err := repo.GetByID(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eng", again.Name)
	assert.Empty(t, again.Sites)
}
