package domain

import "time"

// UnitList определяет вложенный список подразделения
type UnitList string

// Вложенные списки подразделения (значения совпадают с именами полей документа)
const (
	ListSites        UnitList = "sites"
	ListContacts     UnitList = "contacts"
	ListMailmanLists UnitList = "mailmanLists"
)

// Valid проверяет, что список известен
func (l UnitList) Valid() bool {
	switch l {
	case ListSites, ListContacts, ListMailmanLists:
		return true
	}
	return false
}

// Unit представляет подразделение с упорядоченными списками сайтов, контактов и рассылок
type Unit struct {
	ID           string        `json:"_id" bson:"_id"`
	Name         string        `json:"name" bson:"name"`
	Description  string        `json:"description" bson:"description"`
	Managers     string        `json:"managers" bson:"managers"`
	Sites        []Site        `json:"sites" bson:"sites"`
	Contacts     []Contact     `json:"contacts" bson:"contacts"`
	MailmanLists []MailmanList `json:"mailmanLists" bson:"mailmanLists"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Site представляет ссылку на сайт подразделения
type Site struct {
	ID          string `json:"_id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	URL         string `json:"url" bson:"url"`
	Description string `json:"description" bson:"description"`
}

// Contact представляет контактное лицо подразделения
type Contact struct {
	ID    string `json:"_id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Role  string `json:"role" bson:"role"`
}

// MailmanList представляет список рассылки подразделения
type MailmanList struct {
	ID          string `json:"_id" bson:"_id"`
	Name        string `json:"name" bson:"name"`
	Address     string `json:"address" bson:"address"`
	Description string `json:"description" bson:"description"`
}

// Entry это элемент одного из вложенных списков подразделения
type Entry interface {
	EntryID() string
	List() UnitList
}

func (s Site) EntryID() string        { return s.ID }
func (s Site) List() UnitList         { return ListSites }
func (c Contact) EntryID() string     { return c.ID }
func (c Contact) List() UnitList      { return ListContacts }
func (m MailmanList) EntryID() string { return m.ID }
func (m MailmanList) List() UnitList  { return ListMailmanLists }

// UnitUpdate содержит изменяемые поля верхнего уровня (nil означает "не менять")
type UnitUpdate struct {
	Name        *string
	Description *string
	Managers    *string
	UpdatedAt   time.Time
}

// Apply применяет изменения к подразделению
func (u UnitUpdate) Apply(unit *Unit) {
	if u.Name != nil {
		unit.Name = *u.Name
	}
	if u.Description != nil {
		unit.Description = *u.Description
	}
	if u.Managers != nil {
		unit.Managers = *u.Managers
	}
	unit.UpdatedAt = u.UpdatedAt
}

// Normalize заменяет nil-списки пустыми, чтобы в JSON всегда были массивы
func (u *Unit) Normalize() {
	if u.Sites == nil {
		u.Sites = []Site{}
	}
	if u.Contacts == nil {
		u.Contacts = []Contact{}
	}
	if u.MailmanLists == nil {
		u.MailmanLists = []MailmanList{}
	}
}

// Append добавляет элемент в конец соответствующего списка
func (u *Unit) Append(e Entry) error {
	switch v := e.(type) {
	case Site:
		u.Sites = append(u.Sites, v)
	case Contact:
		u.Contacts = append(u.Contacts, v)
	case MailmanList:
		u.MailmanLists = append(u.MailmanLists, v)
	default:
		return ErrUnknownList
	}
	return nil
}

// Remove удаляет из списка элемент с указанным ID.
// Возвращает false если такого элемента нет (подразделение не меняется).
func (u *Unit) Remove(list UnitList, entryID string) (bool, error) {
	switch list {
	case ListSites:
		var removed bool
		u.Sites, removed = removeByID(u.Sites, entryID)
		return removed, nil
	case ListContacts:
		var removed bool
		u.Contacts, removed = removeByID(u.Contacts, entryID)
		return removed, nil
	case ListMailmanLists:
		var removed bool
		u.MailmanLists, removed = removeByID(u.MailmanLists, entryID)
		return removed, nil
	}
	return false, ErrUnknownList
}

func removeByID[E Entry](entries []E, id string) ([]E, bool) {
	kept := make([]E, 0, len(entries))
	for _, e := range entries {
		if e.EntryID() != id {
			kept = append(kept, e)
		}
	}
	return kept, len(kept) != len(entries)
}
