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

func TestUnitService_Create(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUnitService(memory.New().Units())

	unit, err := svc.Create(ctx, service.UnitFields{Name: strPtr("Eng")}, nil, nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, unit.ID)
	assert.Equal(t, "Eng", unit.Name)
	assert.Equal(t, []domain.Site{}, unit.Sites)
	assert.Equal(t, []domain.Contact{}, unit.Contacts)
	assert.Equal(t, []domain.MailmanList{}, unit.MailmanLists)
}

func TestUnitService_CreateAssignsEntryIDs(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUnitService(memory.New().Units())

	sites := []domain.Site{{ID: "client-id", Title: "Wiki"}, {ID: "client-id", Title: "Docs"}}
	contacts := []domain.Contact{{Name: "A"}}
	unit, err := svc.Create(ctx, service.UnitFields{Name: strPtr("Eng")}, sites, contacts, nil)
	require.NoError(t, err)

	require.Len(t, unit.Sites, 2)
	assert.NotEqual(t, "client-id", unit.Sites[0].ID)
	assert.NotEqual(t, unit.Sites[0].ID, unit.Sites[1].ID)
	assert.Equal(t, "Docs", unit.Sites[1].Title)
	require.Len(t, unit.Contacts, 1)
	assert.NotEmpty(t, unit.Contacts[0].ID)
	assert.Equal(t, "client-id", sites[0].ID, "input slice is not modified")
}

func TestUnitService_Update(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUnitService(memory.New().Units())

	unit, err := svc.Create(ctx, service.UnitFields{Name: strPtr("Eng"), Managers: strPtr("Alice")}, nil, nil, nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, unit.ID, service.UnitFields{Description: strPtr("Engineering")})
	require.NoError(t, err)
	assert.Equal(t, "Eng", updated.Name)
	assert.Equal(t, "Engineering", updated.Description)
	assert.Equal(t, "Alice", updated.Managers)

	got, err := svc.Get(ctx, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.Description)

	_, err = svc.Update(ctx, domain.NewID(), service.UnitFields{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)

	units, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestUnitService_Entries(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUnitService(memory.New().Units())

	unit, err := svc.Create(ctx, service.UnitFields{Name: strPtr("Eng")}, nil, nil, nil)
	require.NoError(t, err)

	unit, err = svc.AddContact(ctx, unit.ID, domain.Contact{Name: "A", Email: "a@x.com", Role: "lead"})
	require.NoError(t, err)
	unit, err = svc.AddContact(ctx, unit.ID, domain.Contact{Name: "B", Email: "b@x.com", Role: "dev"})
	require.NoError(t, err)
	unit, err = svc.AddSite(ctx, unit.ID, domain.Site{Title: "Wiki", URL: "https://wiki"})
	require.NoError(t, err)
	unit, err = svc.AddMailmanList(ctx, unit.ID, domain.MailmanList{Name: "eng-all", Address: "eng@x.com"})
	require.NoError(t, err)

	require.Len(t, unit.Contacts, 2)
	first, second := unit.Contacts[0], unit.Contacts[1]
	assert.Equal(t, "A", first.Name)
	assert.NotEqual(t, first.ID, second.ID)
	require.Len(t, unit.Sites, 1)
	require.Len(t, unit.MailmanLists, 1)

	unit, err = svc.RemoveEntry(ctx, unit.ID, domain.ListContacts, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{second}, unit.Contacts)
	assert.Len(t, unit.Sites, 1)
	assert.Len(t, unit.MailmanLists, 1)

	unchanged, err := svc.RemoveEntry(ctx, unit.ID, domain.ListSites, "missing")
	require.NoError(t, err)
	assert.Equal(t, unit, unchanged)

	_, err = svc.RemoveEntry(ctx, unit.ID, domain.UnitList("teams"), first.ID)
	assert.ErrorIs(t, err, domain.ErrUnknownList)

	_, err = svc.AddSite(ctx, domain.NewID(), domain.Site{Title: "ghost"})
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
}

func TestUnitService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewUnitService(memory.New().Units())

	unit, err := svc.Create(ctx, service.UnitFields{Name: strPtr("Eng")}, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, unit.ID))
	require.NoError(t, svc.Delete(ctx, domain.NewID()))

	_, err = svc.Get(ctx, unit.ID)
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
}
