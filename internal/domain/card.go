package domain

import "time"

// Card представляет плитку дашборда со ссылкой на внутренний ресурс
type Card struct {
	ID        string    `json:"_id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Desc      string    `json:"desc" bson:"desc"`
	Link      string    `json:"link" bson:"link"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CardUpdate содержит изменяемые поля карточки (nil означает "не менять")
type CardUpdate struct {
	Title     *string
	Desc      *string
	Link      *string
	UpdatedAt time.Time
}

// Apply применяет изменения к карточке
func (u CardUpdate) Apply(c *Card) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Desc != nil {
		c.Desc = *u.Desc
	}
	if u.Link != nil {
		c.Link = *u.Link
	}
	c.UpdatedAt = u.UpdatedAt
}
