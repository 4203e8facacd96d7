// Package repotest содержит общий набор проверок для реализаций repository.Store.
// Каждый бэкенд (memory, postgres, mongo, s3) прогоняет через него свой экземпляр.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository"
)

// RunStore прогоняет проверки карточек и подразделений на одном хранилище
func RunStore(t *testing.T, store repository.Store) {
	t.Helper()

	t.Run("Cards", func(t *testing.T) { RunCardRepository(t, store.Cards()) })
	t.Run("Units", func(t *testing.T) { RunUnitRepository(t, store.Units()) })
}

// baseTime округлен до миллисекунд: MongoDB не хранит более точное время
func baseTime() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func strPtr(s string) *string { return &s }

// RunCardRepository проверяет контракт repository.CardRepository
func RunCardRepository(t *testing.T, repo repository.CardRepository) {
	ctx := context.Background()
	base := baseTime()

	first := &domain.Card{ID: domain.NewID(), Title: "HR Resources", Desc: "Policies", Link: "https://hr", CreatedAt: base, UpdatedAt: base}
	second := &domain.Card{ID: domain.NewID(), Title: "IT Helpdesk", CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second)}

	t.Run("Create and list in creation order", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, first))

		cards, err := repo.List(ctx)
		require.NoError(t, err)

		ids := cardIDs(cards)
		require.Contains(t, ids, first.ID)
		require.Contains(t, ids, second.ID)
		assert.Less(t, indexOf(ids, first.ID), indexOf(ids, second.ID), "older card must come first")

		got := cards[indexOf(ids, first.ID)]
		assert.Equal(t, "HR Resources", got.Title)
		assert.Equal(t, "Policies", got.Desc)
		assert.Equal(t, "https://hr", got.Link)
		assert.True(t, got.CreatedAt.Equal(base))
	})

	t.Run("Update changes only given fields", func(t *testing.T) {
		updatedAt := base.Add(time.Minute)
		card, err := repo.Update(ctx, first.ID, domain.CardUpdate{Title: strPtr("HR"), UpdatedAt: updatedAt})
		require.NoError(t, err)

		assert.Equal(t, first.ID, card.ID)
		assert.Equal(t, "HR", card.Title)
		assert.Equal(t, "Policies", card.Desc)
		assert.Equal(t, "https://hr", card.Link)
		assert.True(t, card.UpdatedAt.Equal(updatedAt))
		assert.True(t, card.CreatedAt.Equal(base))
	})

	t.Run("Update of unknown id", func(t *testing.T) {
		before, err := repo.List(ctx)
		require.NoError(t, err)

		unknown := domain.NewID()
		card, err := repo.Update(ctx, unknown, domain.CardUpdate{Title: strPtr("ghost"), UpdatedAt: base})
		assert.ErrorIs(t, err, domain.ErrCardNotFound)
		assert.Nil(t, card)

		after, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before), "update must not create a record")
		assert.NotContains(t, cardIDs(after), unknown)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, first.ID))
		require.NoError(t, repo.Delete(ctx, domain.NewID()), "deleting unknown id is not an error")

		cards, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, cardIDs(cards), first.ID)
		assert.Contains(t, cardIDs(cards), second.ID)
	})
}

// RunUnitRepository проверяет контракт repository.UnitRepository
func RunUnitRepository(t *testing.T, repo repository.UnitRepository) {
	ctx := context.Background()
	base := baseTime()

	unit := &domain.Unit{
		ID:          domain.NewID(),
		Name:        "Eng",
		Description: "Engineering",
		Managers:    "Alice",
		Sites:       []domain.Site{{ID: domain.NewID(), Title: "Wiki", URL: "https://wiki"}},
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	later := &domain.Unit{ID: domain.NewID(), Name: "Ops", CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second)}

	t.Run("Create, get and list", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, later))
		require.NoError(t, repo.Create(ctx, unit))

		got, err := repo.GetByID(ctx, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, "Eng", got.Name)
		assert.Equal(t, "Engineering", got.Description)
		assert.Equal(t, "Alice", got.Managers)
		require.Len(t, got.Sites, 1)
		assert.Equal(t, "Wiki", got.Sites[0].Title)
		assert.NotNil(t, got.Contacts)
		assert.Empty(t, got.Contacts)
		assert.NotNil(t, got.MailmanLists)

		units, err := repo.List(ctx)
		require.NoError(t, err)
		ids := unitIDs(units)
		require.Contains(t, ids, unit.ID)
		require.Contains(t, ids, later.ID)
		assert.Less(t, indexOf(ids, unit.ID), indexOf(ids, later.ID))
	})

	t.Run("Get unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, domain.NewID())
		assert.ErrorIs(t, err, domain.ErrUnitNotFound)
	})

	t.Run("Update top level fields", func(t *testing.T) {
		got, err := repo.Update(ctx, unit.ID, domain.UnitUpdate{Managers: strPtr("Bob"), UpdatedAt: base.Add(time.Minute)})
		require.NoError(t, err)
		assert.Equal(t, "Eng", got.Name)
		assert.Equal(t, "Bob", got.Managers)
		assert.Len(t, got.Sites, 1, "sub-lists are untouched")

		_, err = repo.Update(ctx, domain.NewID(), domain.UnitUpdate{Name: strPtr("ghost"), UpdatedAt: base})
		assert.ErrorIs(t, err, domain.ErrUnitNotFound)
	})

	t.Run("Push and pull entries", func(t *testing.T) {
		at := base.Add(2 * time.Minute)
		a := domain.Contact{ID: domain.NewID(), Name: "A", Email: "a@x.com", Role: "lead"}
		b := domain.Contact{ID: domain.NewID(), Name: "B", Email: "b@x.com", Role: "dev"}

		_, err := repo.PushEntry(ctx, unit.ID, a, at)
		require.NoError(t, err)
		got, err := repo.PushEntry(ctx, unit.ID, b, at)
		require.NoError(t, err)

		require.Len(t, got.Contacts, 2)
		assert.Equal(t, a, got.Contacts[0])
		assert.Equal(t, b, got.Contacts[1])
		assert.Len(t, got.Sites, 1)
		assert.True(t, got.UpdatedAt.Equal(at))

		list := domain.MailmanList{ID: domain.NewID(), Name: "eng-all", Address: "eng@x.com"}
		got, err = repo.PushEntry(ctx, unit.ID, list, at)
		require.NoError(t, err)
		require.Len(t, got.MailmanLists, 1)
		assert.Equal(t, list, got.MailmanLists[0])

		got, err = repo.PullEntry(ctx, unit.ID, domain.ListContacts, a.ID, at)
		require.NoError(t, err)
		require.Len(t, got.Contacts, 1)
		assert.Equal(t, b, got.Contacts[0])
		assert.Len(t, got.Sites, 1)
		assert.Len(t, got.MailmanLists, 1)

		before, err := repo.GetByID(ctx, unit.ID)
		require.NoError(t, err)
		got, err = repo.PullEntry(ctx, unit.ID, domain.ListContacts, domain.NewID(), at.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, before, got, "pulling unknown id leaves unit unchanged")
		after, err := repo.GetByID(ctx, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)

		got, err = repo.PullEntry(ctx, unit.ID, domain.ListSites, unit.Sites[0].ID, at)
		require.NoError(t, err)
		assert.Empty(t, got.Sites)
		assert.NotNil(t, got.Sites)
	})

	t.Run("Push to unknown unit", func(t *testing.T) {
		_, err := repo.PushEntry(ctx, domain.NewID(), domain.Site{ID: domain.NewID()}, base)
		assert.ErrorIs(t, err, domain.ErrUnitNotFound)

		_, err = repo.PullEntry(ctx, domain.NewID(), domain.ListSites, domain.NewID(), base)
		assert.ErrorIs(t, err, domain.ErrUnitNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, unit.ID))
		require.NoError(t, repo.Delete(ctx, unit.ID))

		_, err := repo.GetByID(ctx, unit.ID)
		assert.ErrorIs(t, err, domain.ErrUnitNotFound)
	})
}

func cardIDs(cards []*domain.Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func unitIDs(units []*domain.Unit) []string {
	ids := make([]string, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ID)
	}
	return ids
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
