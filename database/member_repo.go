package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trackline/trackline-backend/models"
)

type MemberRepo struct {
	db *gorm.DB
}

func NewMemberRepo(db *gorm.DB) *MemberRepo {
	return &MemberRepo{db}
}

// Exists reports whether a membership row exists for the (user,
// project) pair.
func (r *MemberRepo) Exists(userID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProjectMember{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

// Find returns the membership row for the (user, project) pair, or nil
// when the user is not a member.
func (r *MemberRepo) Find(userID, projectID uuid.UUID) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := r.db.First(&member, "user_id = ? AND project_id = ?", userID, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Upsert inserts the membership row, or updates the role when the pair
// already exists. Re-adding an existing member is therefore idempotent
// rather than a conflict.
func (r *MemberRepo) Upsert(member *models.ProjectMember) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(member).Error
}

// FindWithUser returns the membership row with its user loaded, for
// the add-member response.
func (r *MemberRepo) FindWithUser(userID, projectID uuid.UUID) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := r.db.Preload("User").
		First(&member, "user_id = ? AND project_id = ?", userID, projectID).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
