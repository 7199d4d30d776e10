package client

import (
	"time"

	"github.com/google/uuid"
)

// Response and request shapes mirroring the API surface. Enum values
// match the server's closed sets.

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type Member struct {
	Role string      `json:"role"`
	User UserSummary `json:"user"`
}

type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	Members     []Member  `json:"members"`
}

type ProjectDetail struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	Owner       UserSummary `json:"owner"`
	Members     []Member    `json:"members"`
	TicketCount int64       `json:"ticketCount"`
}

type Ticket struct {
	ID          uuid.UUID    `json:"id"`
	ProjectID   uuid.UUID    `json:"projectId"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	AssigneeID  *uuid.UUID   `json:"assigneeId"`
	Assignee    *UserSummary `json:"assignee,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Label struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ProjectID uuid.UUID `json:"projectId"`
}

type Comment struct {
	ID        uuid.UUID    `json:"id"`
	TicketID  uuid.UUID    `json:"ticketId"`
	AuthorID  uuid.UUID    `json:"authorId"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"createdAt"`
	Author    *UserSummary `json:"author,omitempty"`
}

type Health struct {
	OK bool   `json:"ok"`
	TS string `json:"ts"`
}

// TicketCreate is the payload for creating a ticket. Zero-value
// Status/Priority fall back to the server defaults.
type TicketCreate struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	AssigneeID  *uuid.UUID `json:"assigneeId,omitempty"`
}

// TicketUpdate is a partial ticket update. Nil pointers leave fields
// unchanged; ClearAssignee sends an explicit null assignee.
type TicketUpdate struct {
	Title         *string
	Description   *string
	Status        *string
	Priority      *string
	AssigneeID    *uuid.UUID
	ClearAssignee bool
}

func (u TicketUpdate) payload() map[string]any {
	payload := map[string]any{}
	if u.Title != nil {
		payload["title"] = *u.Title
	}
	if u.Description != nil {
		payload["description"] = *u.Description
	}
	if u.Status != nil {
		payload["status"] = *u.Status
	}
	if u.Priority != nil {
		payload["priority"] = *u.Priority
	}
	if u.ClearAssignee {
		payload["assigneeId"] = nil
	} else if u.AssigneeID != nil {
		payload["assigneeId"] = *u.AssigneeID
	}
	return payload
}

// TicketListOptions narrows a ticket listing.
type TicketListOptions struct {
	Status     string
	Priority   string
	AssigneeID *uuid.UUID
	Search     string
}
