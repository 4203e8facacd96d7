package service

import (
	"context"
	"time"

	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/domain"
	"github.com/SeanBroadwell/uw-ischool-sharepoint-links/internal/repository"
)

// UnitService handles business logic for units and their nested lists
type UnitService struct {
	unitRepo repository.UnitRepository
	now      func() time.Time
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo repository.UnitRepository) *UnitService {
	return &UnitService{
		unitRepo: unitRepo,
		now:      now,
	}
}

// UnitFields holds the client supplied top-level unit fields (nil means absent)
type UnitFields struct {
	Name        *string
	Description *string
	Managers    *string
}

// List returns all units in creation order
func (s *UnitService) List(ctx context.Context) ([]*domain.Unit, error) {
	return s.unitRepo.List(ctx)
}

// Create stores a new unit. Initial list entries get fresh ids, whatever the client sent.
func (s *UnitService) Create(ctx context.Context, fields UnitFields, sites []domain.Site, contacts []domain.Contact, lists []domain.MailmanList) (*domain.Unit, error) {
	ts := s.now()
	unit := &domain.Unit{
		ID:          domain.NewID(),
		Name:        deref(fields.Name),
		Description: deref(fields.Description),
		Managers:    deref(fields.Managers),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	for _, site := range sites {
		site.ID = domain.NewID()
		unit.Sites = append(unit.Sites, site)
	}
	for _, contact := range contacts {
		contact.ID = domain.NewID()
		unit.Contacts = append(unit.Contacts, contact)
	}
	for _, list := range lists {
		list.ID = domain.NewID()
		unit.MailmanLists = append(unit.MailmanLists, list)
	}
	unit.Normalize()

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// Get retrieves a unit with all nested lists
func (s *UnitService) Get(ctx context.Context, id string) (*domain.Unit, error) {
	return s.unitRepo.GetByID(ctx, id)
}

// Update changes top-level fields only; nested lists are changed through Add*/Remove*
func (s *UnitService) Update(ctx context.Context, id string, fields UnitFields) (*domain.Unit, error) {
	return s.unitRepo.Update(ctx, id, domain.UnitUpdate{
		Name:        fields.Name,
		Description: fields.Description,
		Managers:    fields.Managers,
		UpdatedAt:   s.now(),
	})
}

// Delete removes a unit together with its nested lists
func (s *UnitService) Delete(ctx context.Context, id string) error {
	return s.unitRepo.Delete(ctx, id)
}

// AddSite appends a site with a fresh id and returns the updated unit
func (s *UnitService) AddSite(ctx context.Context, unitID string, site domain.Site) (*domain.Unit, error) {
	site.ID = domain.NewID()
	return s.unitRepo.PushEntry(ctx, unitID, site, s.now())
}

// AddContact appends a contact with a fresh id and returns the updated unit
func (s *UnitService) AddContact(ctx context.Context, unitID string, contact domain.Contact) (*domain.Unit, error) {
	contact.ID = domain.NewID()
	return s.unitRepo.PushEntry(ctx, unitID, contact, s.now())
}

// AddMailmanList appends a mailing list with a fresh id and returns the updated unit
func (s *UnitService) AddMailmanList(ctx context.Context, unitID string, list domain.MailmanList) (*domain.Unit, error) {
	list.ID = domain.NewID()
	return s.unitRepo.PushEntry(ctx, unitID, list, s.now())
}

// RemoveEntry removes the entry with entryID from the given list.
// The unit is returned unchanged if no entry matches.
func (s *UnitService) RemoveEntry(ctx context.Context, unitID string, list domain.UnitList, entryID string) (*domain.Unit, error) {
	if !list.Valid() {
		return nil, domain.ErrUnknownList
	}
	return s.unitRepo.PullEntry(ctx, unitID, list, entryID, s.now())
}
