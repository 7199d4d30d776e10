package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trackline/trackline-backend/models"
)

// TicketFilter narrows a project ticket listing. Zero values mean "no
// constraint"; Search matches the title as a case-insensitive
// substring.
type TicketFilter struct {
	Status     models.TicketStatus
	Priority   models.TicketPriority
	AssigneeID *uuid.UUID
	Search     string
}

type TicketRepo struct {
	db *gorm.DB
}

func NewTicketRepo(db *gorm.DB) *TicketRepo {
	return &TicketRepo{db}
}

// Add inserts a new ticket into the database
func (r *TicketRepo) Add(ticket *models.Ticket) error {
	return r.db.Create(ticket).Error
}

// FindByID returns a ticket by its ID with its assignee loaded
func (r *TicketRepo) FindByID(id uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.Preload("Assignee").First(&ticket, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByProject returns the project's tickets matching the filter,
// newest first.
func (r *TicketRepo) FindByProject(projectID uuid.UUID, filter TicketFilter) ([]*models.Ticket, error) {
	query := r.db.Preload("Assignee").Where("project_id = ?", projectID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var tickets []*models.Ticket
	err := query.Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

// Update updates an existing ticket in the database
func (r *TicketRepo) Update(ticket *models.Ticket) error {
	return r.db.Save(ticket).Error
}

// Delete removes a ticket from the database by id. Comments and label
// attachments go with it via the cascading foreign keys.
func (r *TicketRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Ticket{}, "id = ?", id).Error
}
