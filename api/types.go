package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/trackline/trackline-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	projectHandler projectHandler
	ticketHandler  ticketHandler
	labelHandler   labelHandler
	commentHandler commentHandler
}

// memberResponse is a membership row with its user summary.
type memberResponse struct {
	Role models.MemberRole  `json:"role"`
	User models.UserSummary `json:"user"`
}

type projectResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	CreatedAt   time.Time        `json:"createdAt"`
	Members     []memberResponse `json:"members"`
}

type projectDetailResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
	Owner       models.UserSummary `json:"owner"`
	Members     []memberResponse   `json:"members"`
	TicketCount int64              `json:"ticketCount"`
}

type ticketResponse struct {
	ID          uuid.UUID           `json:"id"`
	ProjectID   uuid.UUID           `json:"projectId"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      models.TicketStatus `json:"status"`
	Priority    models.TicketPriority `json:"priority"`
	AssigneeID  *uuid.UUID          `json:"assigneeId"`
	Assignee    *models.UserSummary `json:"assignee,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type commentResponse struct {
	ID        uuid.UUID           `json:"id"`
	TicketID  uuid.UUID           `json:"ticketId"`
	AuthorID  uuid.UUID           `json:"authorId"`
	Body      string              `json:"body"`
	CreatedAt time.Time           `json:"createdAt"`
	Author    *models.UserSummary `json:"author,omitempty"`
}

func newMemberResponses(members []models.ProjectMember) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp := memberResponse{Role: m.Role}
		if m.User != nil {
			resp.User = m.User.Summary()
		}
		out = append(out, resp)
	}
	return out
}

func newProjectResponse(project *models.Project) projectResponse {
	return projectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		Members:     newMemberResponses(project.Members),
	}
}

func newTicketResponse(ticket *models.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:          ticket.ID,
		ProjectID:   ticket.ProjectID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		AssigneeID:  ticket.AssigneeID,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
	if ticket.Assignee != nil {
		summary := ticket.Assignee.Summary()
		resp.Assignee = &summary
	}
	return resp
}

func newCommentResponse(comment *models.Comment) commentResponse {
	resp := commentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		summary := comment.Author.Summary()
		resp.Author = &summary
	}
	return resp
}
