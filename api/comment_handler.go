package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trackline/trackline-backend/authz"
	"github.com/trackline/trackline-backend/database"
	"github.com/trackline/trackline-backend/models"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	authorizer  *authz.Authorizer
}

func newCommentHandler(commentRepo *database.CommentRepo, authorizer *authz.Authorizer) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		authorizer:  authorizer,
	}
}

// createComment adds a comment to a ticket, authored by the caller.
func (h commentHandler) createComment() http.HandlerFunc {
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

		var req createCommentRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.authorizer.RequireTicketMember(userID, ticketID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment := models.Comment{
			TicketID: ticketID,
			AuthorID: userID,
			Body:     req.Body,
		}
		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		// Reload so the author summary is populated
		created, err := h.commentRepo.FindByID(comment.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "comment", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, newCommentResponse(created))
	}
}

// listComments returns the ticket's comments oldest first.
func (h commentHandler) listComments() http.HandlerFunc {
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

		comments, err := h.commentRepo.FindByTicket(ticketID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		response := make([]commentResponse, 0, len(comments))
		for _, comment := range comments {
			response = append(response, newCommentResponse(comment))
		}

		h.responder.WriteJSON(w, http.StatusOK, response)
	}
}
