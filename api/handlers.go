package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trackline/trackline-backend/auth"
	"github.com/trackline/trackline-backend/authz"
	"github.com/trackline/trackline-backend/database"
	"github.com/trackline/trackline-backend/errs"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, authorizer *authz.Authorizer, tokens *auth.TokenIssuer) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(db.UserRepo(), tokens),
		projectHandler: newProjectHandler(db.ProjectRepo(), db.MemberRepo(), db.UserRepo(), authorizer),
		ticketHandler:  newTicketHandler(db.TicketRepo(), authorizer),
		labelHandler:   newLabelHandler(db.LabelRepo(), authorizer),
		commentHandler: newCommentHandler(db.CommentRepo(), authorizer),
	}
}

// decodeJSON decodes the request body into dst, mapping any decoding
// failure to a 400.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewMalformedPayloadError("JSON", err)
	}
	return nil
}

// urlUUID parses a uuid path parameter, mapping a bad value to a 400.
func urlUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + param)
	}
	return id, nil
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
