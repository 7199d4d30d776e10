package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trackline/trackline-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// AddWithOwner inserts a new project and its OWNER membership row in a
// single transaction, so a project can never exist without its owner
// being a member.
func (r *ProjectRepo) AddWithOwner(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		membership := models.ProjectMember{
			UserID:    project.OwnerID,
			ProjectID: project.ID,
			Role:      models.RoleOwner,
		}
		return tx.Create(&membership).Error
	})
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDDetailed returns a project with its owner and member users
// loaded, for the project-detail response.
func (r *ProjectRepo) FindByIDDetailed(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Owner").
		Preload("Members.User").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindAllForUser returns every project the user owns or is a member
// of, newest first, with member users loaded.
func (r *ProjectRepo) FindAllForUser(userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.
		Preload("Members.User").
		Where("owner_id = ? OR id IN (?)",
			userID,
			r.db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// HasAccess reports whether the user owns the project or holds a
// membership row for it.
func (r *ProjectRepo) HasAccess(projectID, userID uuid.UUID) (bool, error) {
	var project models.Project
	err := r.db.
		Where("id = ?", projectID).
		Where("owner_id = ? OR id IN (?)",
			userID,
			r.db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID),
		).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountTickets returns the number of tickets in the project.
func (r *ProjectRepo) CountTickets(projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
