package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trackline/trackline-backend/authz"
	"github.com/trackline/trackline-backend/database"
	"github.com/trackline/trackline-backend/errs"
	"github.com/trackline/trackline-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	memberRepo  *database.MemberRepo
	userRepo    *database.UserRepo
	authorizer  *authz.Authorizer
}

func newProjectHandler(projectRepo *database.ProjectRepo, memberRepo *database.MemberRepo, userRepo *database.UserRepo, authorizer *authz.Authorizer) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		authorizer:  authorizer,
	}
}

// createProject creates a project and, in the same transaction, the
// OWNER membership row for the caller.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req createProjectRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			Name:        req.Name,
			Description: req.Description,
			OwnerID:     userID,
		}
		if err := h.projectRepo.AddWithOwner(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, newProjectResponse(&project))
	}
}

// listProjects returns only the projects the caller owns or is a
// member of, newest first.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projectRepo.FindAllForUser(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		response := make([]projectResponse, 0, len(projects))
		for _, project := range projects {
			response = append(response, newProjectResponse(project))
		}

		h.responder.WriteJSON(w, http.StatusOK, response)
	}
}

// getProject returns the project with owner, members, and ticket
// count. Callers without access get a 404, never a 403, so existence
// is not leaked.
func (h projectHandler) getProject() http.HandlerFunc {
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

		if err := h.authorizer.RequireProjectAccess(userID, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByIDDetailed(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		ticketCount, err := h.projectRepo.CountTickets(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "tickets", err))
			return
		}

		response := projectDetailResponse{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
			CreatedAt:   project.CreatedAt,
			Members:     newMemberResponses(project.Members),
			TicketCount: ticketCount,
		}
		if project.Owner != nil {
			response.Owner = project.Owner.Summary()
		}

		h.responder.WriteJSON(w, http.StatusOK, response)
	}
}

// addMember adds a user to the project by email. Owner-only. Re-adding
// an existing member resets their role to MEMBER rather than failing.
func (h projectHandler) addMember() http.HandlerFunc {
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

		var req addMemberRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.authorizer.RequireProjectOwner(userID, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		membership := models.ProjectMember{
			UserID:    user.ID,
			ProjectID: projectID,
			Role:      models.RoleMember,
		}
		if err := h.memberRepo.Upsert(&membership); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("add", "project member", err))
			return
		}

		// Reload so the user summary is populated
		member, err := h.memberRepo.FindWithUser(user.ID, projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find added", "project member", err))
			return
		}

		response := memberResponse{Role: member.Role}
		if member.User != nil {
			response.User = member.User.Summary()
		}
		h.responder.WriteJSON(w, http.StatusCreated, response)
	}
}
