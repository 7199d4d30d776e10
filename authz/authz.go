// Package authz is the authorization layer: every handler resolves
// allow/deny through it instead of re-implementing membership queries
// per route. Checks are read-only, and existence is always resolved
// before relationship, so a missing resource yields not-found rather
// than forbidden.
package authz

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trackline/trackline-backend/database"
	"github.com/trackline/trackline-backend/errs"
	"github.com/trackline/trackline-backend/models"
)

type Authorizer struct {
	projectRepo *database.ProjectRepo
	memberRepo  *database.MemberRepo
	ticketRepo  *database.TicketRepo
}

func New(db database.Database) *Authorizer {
	return &Authorizer{
		projectRepo: db.ProjectRepo(),
		memberRepo:  db.MemberRepo(),
		ticketRepo:  db.TicketRepo(),
	}
}

// RequireProjectMember passes when the caller holds a membership row
// for the project. Applies to project-scoped ticket and label routes.
func (a *Authorizer) RequireProjectMember(userID, projectID uuid.UUID) error {
	isMember, err := a.memberRepo.Exists(userID, projectID)
	if err != nil {
		return errs.NewDatabaseError("check membership", "project member", err)
	}
	if !isMember {
		return errs.NewForbiddenError("not a project member")
	}
	return nil
}

// RequireProjectOwner passes only for the project's owner. A missing
// project is not-found; an existing project with a different owner is
// forbidden.
func (a *Authorizer) RequireProjectOwner(userID, projectID uuid.UUID) error {
	project, err := a.projectRepo.FindByID(projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound("project")
	}
	if err != nil {
		return errs.NewDatabaseError("find", "project", err)
	}
	if project.OwnerID != userID {
		return errs.NewForbiddenError("owner role required")
	}
	return nil
}

// RequireProjectAccess gates the project-detail view. Denial is
// not-found in both the absent and no-membership cases, so a
// non-member cannot learn whether the project exists.
func (a *Authorizer) RequireProjectAccess(userID, projectID uuid.UUID) error {
	ok, err := a.projectRepo.HasAccess(projectID, userID)
	if err != nil {
		return errs.NewDatabaseError("check access", "project", err)
	}
	if !ok {
		return errs.NewNotFound("project")
	}
	return nil
}

// RequireTicketMember resolves a ticket and checks that the caller is
// a member of its project. The resolved ticket is returned so handlers
// do not fetch it twice.
func (a *Authorizer) RequireTicketMember(userID, ticketID uuid.UUID) (*models.Ticket, error) {
	ticket, err := a.ticketRepo.FindByID(ticketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("ticket")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "ticket", err)
	}

	if err := a.RequireProjectMember(userID, ticket.ProjectID); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ValidateAssignee rejects an assignee that is not a member of the
// project. This is an input failure, not a permissions one, so the
// denial is a 400.
func (a *Authorizer) ValidateAssignee(assigneeID, projectID uuid.UUID) error {
	isMember, err := a.memberRepo.Exists(assigneeID, projectID)
	if err != nil {
		return errs.NewDatabaseError("check membership", "assignee", err)
	}
	if !isMember {
		return errs.NewBadRequestErrorWithField("assignee must be a project member", "assigneeId", "")
	}
	return nil
}
