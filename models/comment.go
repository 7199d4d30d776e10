package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a note on a ticket. The author must have been a member of
// the ticket's project at creation time.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	TicketID  uuid.UUID `json:"ticketId" db:"ticket_id" gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null"`
	Body      string    `json:"body" db:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
}
