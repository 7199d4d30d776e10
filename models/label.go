package models

import "github.com/google/uuid"

// Label is a project-scoped tag attachable to tickets.
type Label struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
}

// TicketLabel is the join row attaching a label to a ticket. At most
// one row per (ticket, label) pair.
type TicketLabel struct {
	TicketID uuid.UUID `json:"ticketId" db:"ticket_id" gorm:"type:uuid;primaryKey;not null;constraint:OnDelete:CASCADE"`
	LabelID  uuid.UUID `json:"labelId" db:"label_id" gorm:"type:uuid;primaryKey;not null;constraint:OnDelete:CASCADE"`
}
