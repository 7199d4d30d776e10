package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the tenant boundary: every ticket, label, and membership
// hangs off a project.
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	OwnerID     uuid.UUID `json:"ownerId" db:"owner_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Owner   *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Members []ProjectMember `json:"members,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Tickets []Ticket        `json:"tickets,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Labels  []Label         `json:"labels,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
