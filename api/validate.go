package api

import (
	"bytes"
	"encoding/json"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/trackline/trackline-backend/errs"
	"github.com/trackline/trackline-backend/models"
)

// Request validators run before authorization and before any store
// access. Each Validate collects every failing field so the response
// reports them all at once.

const minPasswordLength = 8

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (req registerRequest) Validate() error {
	fields := map[string]string{}
	if !validEmail(req.Email) {
		fields["email"] = "must be a valid email address"
	}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "must not be empty"
	}
	if len(req.Password) < minPasswordLength {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req loginRequest) Validate() error {
	fields := map[string]string{}
	if !validEmail(req.Email) {
		fields["email"] = "must be a valid email address"
	}
	if len(req.Password) < minPasswordLength {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (req createProjectRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errs.NewValidationError(map[string]string{"name": "must not be empty"})
	}
	return nil
}

type addMemberRequest struct {
	Email string `json:"email"`
}

func (req addMemberRequest) Validate() error {
	if !validEmail(req.Email) {
		return errs.NewValidationError(map[string]string{"email": "must be a valid email address"})
	}
	return nil
}

type createTicketRequest struct {
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	Status      models.TicketStatus   `json:"status"`
	Priority    models.TicketPriority `json:"priority"`
	AssigneeID  *uuid.UUID            `json:"assigneeId"`
}

func (req createTicketRequest) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "must not be empty"
	}
	if req.Status != "" && !req.Status.Valid() {
		fields["status"] = "must be one of OPEN, IN_PROGRESS, RESOLVED, CLOSED"
	}
	if req.Priority != "" && !req.Priority.Valid() {
		fields["priority"] = "must be one of LOW, MEDIUM, HIGH"
	}
	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

// NullableUUID distinguishes an absent JSON field from an explicit
// null: absent means "leave unchanged", null means "clear".
type NullableUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

type updateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *models.TicketStatus   `json:"status"`
	Priority    *models.TicketPriority `json:"priority"`
	AssigneeID  NullableUUID           `json:"assigneeId"`
}

func (req updateTicketRequest) Validate() error {
	fields := map[string]string{}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		fields["title"] = "must not be empty"
	}
	if req.Status != nil && !req.Status.Valid() {
		fields["status"] = "must be one of OPEN, IN_PROGRESS, RESOLVED, CLOSED"
	}
	if req.Priority != nil && !req.Priority.Valid() {
		fields["priority"] = "must be one of LOW, MEDIUM, HIGH"
	}
	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

type createLabelRequest struct {
	Name string `json:"name"`
}

func (req createLabelRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errs.NewValidationError(map[string]string{"name": "must not be empty"})
	}
	return nil
}

type createCommentRequest struct {
	Body string `json:"body"`
}

func (req createCommentRequest) Validate() error {
	if strings.TrimSpace(req.Body) == "" {
		return errs.NewValidationError(map[string]string{"body": "must not be empty"})
	}
	return nil
}
