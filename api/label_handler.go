package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/trackline/trackline-backend/authz"
	"github.com/trackline/trackline-backend/database"
	"github.com/trackline/trackline-backend/errs"
	"github.com/trackline/trackline-backend/models"
)

type labelHandler struct {
	responder  Responder
	logger     zerolog.Logger
	labelRepo  *database.LabelRepo
	authorizer *authz.Authorizer
}

func newLabelHandler(labelRepo *database.LabelRepo, authorizer *authz.Authorizer) labelHandler {
	logger := log.With().Str("handlerName", "labelHandler").Logger()

	return labelHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		labelRepo:  labelRepo,
		authorizer: authorizer,
	}
}

// createLabel creates a project-scoped label.
func (h labelHandler) createLabel() http.HandlerFunc {
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

		var req createLabelRequest
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

		label := models.Label{Name: req.Name, ProjectID: projectID}
		if err := h.labelRepo.Add(&label); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "label", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, label)
	}
}

// listLabels returns the project's labels ordered by name.
func (h labelHandler) listLabels() http.HandlerFunc {
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

		labels, err := h.labelRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "labels", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, labels)
	}
}

// attachLabel attaches a label to a ticket. The caller must be a
// member of the ticket's project; the label must exist.
func (h labelHandler) attachLabel() http.HandlerFunc {
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
		labelID, err := urlUUID(r, "labelID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.authorizer.RequireTicketMember(userID, ticketID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.labelRepo.FindByID(labelID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewNotFound("label"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "label", err))
			return
		}

		if err := h.labelRepo.Attach(ticketID, labelID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("attach", "label", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, map[string]string{"message": "Label attached"})
	}
}

// detachLabel removes a label from a ticket.
func (h labelHandler) detachLabel() http.HandlerFunc {
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
		labelID, err := urlUUID(r, "labelID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.authorizer.RequireTicketMember(userID, ticketID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.labelRepo.Detach(ticketID, labelID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("detach", "label", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
