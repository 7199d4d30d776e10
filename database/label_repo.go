package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trackline/trackline-backend/models"
)

type LabelRepo struct {
	db *gorm.DB
}

func NewLabelRepo(db *gorm.DB) *LabelRepo {
	return &LabelRepo{db}
}

// Add inserts a new label into the database
func (r *LabelRepo) Add(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID returns a label by its ID
func (r *LabelRepo) FindByID(id uuid.UUID) (*models.Label, error) {
	var label models.Label
	err := r.db.First(&label, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByProject returns the project's labels ordered by name.
func (r *LabelRepo) FindByProject(projectID uuid.UUID) ([]*models.Label, error) {
	var labels []*models.Label
	err := r.db.Where("project_id = ?", projectID).Order("name ASC").Find(&labels).Error
	return labels, err
}

// Attach links a label to a ticket. Attaching the same label twice is
// a no-op thanks to the composite primary key.
func (r *LabelRepo) Attach(ticketID, labelID uuid.UUID) error {
	row := models.TicketLabel{TicketID: ticketID, LabelID: labelID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// Detach removes the label from the ticket.
func (r *LabelRepo) Detach(ticketID, labelID uuid.UUID) error {
	return r.db.Delete(&models.TicketLabel{}, "ticket_id = ? AND label_id = ?", ticketID, labelID).Error
}
