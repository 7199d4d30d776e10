package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trackline/trackline-backend/authz"
	"github.com/trackline/trackline-backend/database"
	"github.com/trackline/trackline-backend/errs"
	"github.com/trackline/trackline-backend/models"
)

type ticketHandler struct {
	responder  Responder
	logger     zerolog.Logger
	ticketRepo *database.TicketRepo
	authorizer *authz.Authorizer
}

func newTicketHandler(ticketRepo *database.TicketRepo, authorizer *authz.Authorizer) ticketHandler {
	logger := log.With().Str("handlerName", "ticketHandler").Logger()

	return ticketHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		ticketRepo: ticketRepo,
		authorizer: authorizer,
	}
}

// createTicket creates a ticket under a project. The caller must be a
// member; a supplied assignee must also be a member.
func (h ticketHandler) createTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := urlUUID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req createTicketRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.authorizer.RequireProjectMember(userID, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.AssigneeID != nil {
			if err := h.authorizer.ValidateAssignee(*req.AssigneeID, projectID); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		ticket := models.Ticket{
			ProjectID:   projectID,
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Priority:    req.Priority,
			AssigneeID:  req.AssigneeID,
		}
		if ticket.Status == "" {
			ticket.Status = models.StatusOpen
		}
		if ticket.Priority == "" {
			ticket.Priority = models.PriorityMedium
		}

		if err := h.ticketRepo.Add(&ticket); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "ticket", err))
			return
		}

		// Reload so the assignee summary is populated
		created, err := h.ticketRepo.FindByID(ticket.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "ticket", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, newTicketResponse(created))
	}
}

// listTickets returns the project's tickets, optionally narrowed by
// status, priority, assignee, and a case-insensitive title search.
func (h ticketHandler) listTickets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := urlUUID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.authorizer.RequireProjectMember(userID, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter, err := ticketFilterFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tickets, err := h.ticketRepo.FindByProject(projectID, filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tickets", err))
			return
		}

		response := make([]ticketResponse, 0, len(tickets))
		for _, ticket := range tickets {
			response = append(response, newTicketResponse(ticket))
		}

		h.responder.WriteJSON(w, http.StatusOK, response)
	}
}

func ticketFilterFromQuery(r *http.Request) (database.TicketFilter, error) {
	var filter database.TicketFilter
	query := r.URL.Query()

	if raw := query.Get("status"); raw != "" {
		status := models.TicketStatus(raw)
		if !status.Valid() {
			return filter, errs.NewInvalidFieldError("status", "unknown status value")
		}
		filter.Status = status
	}
	if raw := query.Get("priority"); raw != "" {
		priority := models.TicketPriority(raw)
		if !priority.Valid() {
			return filter, errs.NewInvalidFieldError("priority", "unknown priority value")
		}
		filter.Priority = priority
	}
	if raw := query.Get("assigneeId"); raw != "" {
		assigneeID, err := uuid.Parse(raw)
		if err != nil {
			return filter, errs.NewInvalidFieldError("assigneeId", "must be a uuid")
		}
		filter.AssigneeID = &assigneeID
	}
	filter.Search = query.Get("search")

	return filter, nil
}

// getTicket returns a ticket by id for members of its project.
func (h ticketHandler) getTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ticketID, err := urlUUID(r, "ticketID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ticket, err := h.authorizer.RequireTicketMember(userID, ticketID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, newTicketResponse(ticket))
	}
}

// updateTicket applies a partial update. An explicit null assigneeId
// clears the assignment; an absent field leaves it unchanged.
func (h ticketHandler) updateTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ticketID, err := urlUUID(r, "ticketID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateTicketRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ticket, err := h.authorizer.RequireTicketMember(userID, ticketID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.AssigneeID.Set && req.AssigneeID.Value != nil {
			if err := h.authorizer.ValidateAssignee(*req.AssigneeID.Value, ticket.ProjectID); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		if req.Title != nil {
			ticket.Title = *req.Title
		}
		if req.Description != nil {
			ticket.Description = req.Description
		}
		if req.Status != nil {
			ticket.Status = *req.Status
		}
		if req.Priority != nil {
			ticket.Priority = *req.Priority
		}
		if req.AssigneeID.Set {
			ticket.AssigneeID = req.AssigneeID.Value
			ticket.Assignee = nil
		}

		if err := h.ticketRepo.Update(ticket); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "ticket", err))
			return
		}

		updated, err := h.ticketRepo.FindByID(ticketID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "ticket", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, newTicketResponse(updated))
	}
}

// deleteTicket removes a ticket; its comments and label attachments
// cascade with it.
func (h ticketHandler) deleteTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ticketID, err := urlUUID(r, "ticketID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.authorizer.RequireTicketMember(userID, ticketID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.ticketRepo.Delete(ticketID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "ticket", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
