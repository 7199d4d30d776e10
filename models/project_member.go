package models

import "github.com/google/uuid"

// MemberRole is the role a user holds within a project.
type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleMember MemberRole = "MEMBER"
)

// Valid reports whether the role is one of the known variants.
func (r MemberRole) Valid() bool {
	return r == RoleOwner || r == RoleMember
}

// ProjectMember links a user to a project with a role. One row per
// (user, project) pair.
type ProjectMember struct {
	UserID    uuid.UUID  `json:"userId" db:"user_id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID  `json:"projectId" db:"project_id" gorm:"type:uuid;primaryKey;not null;index"`
	Role      MemberRole `json:"role" db:"role" gorm:"type:text;not null"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}
