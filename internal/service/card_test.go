package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository/memory"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/service"
)

func strPtr(s string) *string { return &s }

func TestCardService_Create(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCardService(memory.New().Cards())

	card, err := svc.Create(ctx, service.CardFields{Title: strPtr("HR Resources"), Link: strPtr("https://hr")})
	require.NoError(t, err)

	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "HR Resources", card.Title)
	assert.Equal(t, "", card.Desc)
	assert.Equal(t, "https://hr", card.Link)
	assert.False(t, card.CreatedAt.IsZero())
	assert.Equal(t, card.CreatedAt, card.UpdatedAt)

	empty, err := svc.Create(ctx, service.CardFields{})
	require.NoError(t, err)
	assert.NotEqual(t, card.ID, empty.ID)

	cards, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, card.ID, cards[0].ID)
	assert.Equal(t, empty.ID, cards[1].ID)
}

func TestCardService_Update(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCardService(memory.New().Cards())

	card, err := svc.Create(ctx, service.CardFields{Title: strPtr("IT"), Desc: strPtr("Tickets")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, card.ID, service.CardFields{Title: strPtr("IT Helpdesk")})
	require.NoError(t, err)
	assert.Equal(t, "IT Helpdesk", updated.Title)
	assert.Equal(t, "Tickets", updated.Desc)
	assert.False(t, updated.UpdatedAt.Before(card.UpdatedAt))

	_, err = svc.Update(ctx, domain.NewID(), service.CardFields{Title: strPtr("ghost")})
	assert.ErrorIs(t, err, domain.ErrCardNotFound)

	cards, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestCardService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCardService(memory.New().Cards())

	card, err := svc.Create(ctx, service.CardFields{Title: strPtr("HR")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, card.ID))
	require.NoError(t, svc.Delete(ctx, card.ID))

	cards, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
