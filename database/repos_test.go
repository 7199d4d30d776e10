package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trackline/trackline-backend/models"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, Database) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, New(gormDB)
}

func TestTicketRepo_FindByProject_NoFilter(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	projectID := uuid.New()
	ticketID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "tickets" WHERE project_id = \$1 ORDER BY created_at DESC`).
		WithArgs(projectID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status", "priority", "assignee_id", "created_at", "updated_at"}).
			AddRow(ticketID.String(), projectID.String(), "T1", "OPEN", "MEDIUM", nil, time.Now(), time.Now()))

	tickets, err := repos.TicketRepo().FindByProject(projectID, TicketFilter{})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, ticketID, tickets[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepo_FindByProject_AllFilters(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	projectID := uuid.New()
	assigneeID := uuid.New()

	// Search is a case-insensitive substring match on the title
	mock.ExpectQuery(`SELECT (.+) FROM "tickets" WHERE project_id = \$1 AND status = \$2 AND priority = \$3 AND assignee_id = \$4 AND title ILIKE \$5 ORDER BY created_at DESC`).
		WithArgs(projectID.String(), "OPEN", "HIGH", assigneeID.String(), "%foo%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status", "priority", "assignee_id", "created_at", "updated_at"}))

	filter := TicketFilter{
		Status:     models.StatusOpen,
		Priority:   models.PriorityHigh,
		AssigneeID: &assigneeID,
		Search:     "foo",
	}
	tickets, err := repos.TicketRepo().FindByProject(projectID, filter)
	require.NoError(t, err)
	assert.Len(t, tickets, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepo_Exists(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	userID := uuid.New()
	projectID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "project_members" WHERE user_id = \$1 AND project_id = \$2`).
		WithArgs(userID.String(), projectID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repos.MemberRepo().Exists(userID, projectID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepo_Find_Absent(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "project_id", "role"}))

	member, err := repos.MemberRepo().Find(uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, member)
}

func TestMemberRepo_Upsert_OnConflictUpdatesRole(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	userID := uuid.New()
	projectID := uuid.New()

	mock.ExpectExec(`INSERT INTO "project_members" (.+) ON CONFLICT \("user_id","project_id"\) DO UPDATE SET "role"=`).
		WithArgs(userID.String(), projectID.String(), "MEMBER").
		WillReturnResult(sqlmock.NewResult(0, 1))

	member := models.ProjectMember{UserID: userID, ProjectID: projectID, Role: models.RoleMember}
	err := repos.MemberRepo().Upsert(&member)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_FindByEmail_Absent(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}))

	user, err := repos.UserRepo().FindByEmail("nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestProjectRepo_AddWithOwner_Transactional(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	ownerID := uuid.New()
	projectID := uuid.New()

	// Project insert and OWNER membership insert share one transaction
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(projectID.String()))
	mock.ExpectExec(`INSERT INTO "project_members"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	project := models.Project{Name: "P1", OwnerID: ownerID}
	err := repos.ProjectRepo().AddWithOwner(&project)
	require.NoError(t, err)
	assert.Equal(t, projectID, project.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_AddWithOwner_RollsBackOnMembershipFailure(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`INSERT INTO "project_members"`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	project := models.Project{Name: "P1", OwnerID: uuid.New()}
	err := repos.ProjectRepo().AddWithOwner(&project)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
