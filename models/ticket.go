package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus is the workflow state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusResolved   TicketStatus = "RESOLVED"
	StatusClosed     TicketStatus = "CLOSED"
)

// Valid reports whether the status is one of the known variants.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// TicketPriority is the urgency level of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

// Valid reports whether the priority is one of the known variants.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Ticket is a unit of work within a project. The assignee, when set,
// must be a member of the ticket's project.
type Ticket struct {
	ID          uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID   uuid.UUID      `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" db:"title" gorm:"type:text;not null"`
	Description *string        `json:"description,omitempty" db:"description" gorm:"type:text"`
	Status      TicketStatus   `json:"status" db:"status" gorm:"type:text;not null;default:'OPEN'"`
	Priority    TicketPriority `json:"priority" db:"priority" gorm:"type:text;not null;default:'MEDIUM'"`
	AssigneeID  *uuid.UUID     `json:"assigneeId,omitempty" db:"assignee_id" gorm:"type:uuid;index"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Assignee *User     `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID;references:ID"`
	Labels   []Label   `json:"labels,omitempty" gorm:"many2many:ticket_labels;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:TicketID;references:ID;constraint:OnDelete:CASCADE"`
}
