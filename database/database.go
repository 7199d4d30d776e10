package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo    *UserRepo
	projectRepo *ProjectRepo
	memberRepo  *MemberRepo
	ticketRepo  *TicketRepo
	labelRepo   *LabelRepo
	commentRepo *CommentRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:    NewUserRepo(db),
		projectRepo: NewProjectRepo(db),
		memberRepo:  NewMemberRepo(db),
		ticketRepo:  NewTicketRepo(db),
		labelRepo:   NewLabelRepo(db),
		commentRepo: NewCommentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) MemberRepo() *MemberRepo {
	return d.memberRepo
}

func (d Database) TicketRepo() *TicketRepo {
	return d.ticketRepo
}

func (d Database) LabelRepo() *LabelRepo {
	return d.labelRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}
