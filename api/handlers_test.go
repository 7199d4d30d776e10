package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/trackline/trackline-backend/auth"
	"github.com/trackline/trackline-backend/database"
)

const testSecret = "test-secret"

func setupTestRouter(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *chi.Mux, *auth.TokenIssuer) {
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

	router := newRouter(database.New(gormDB), withConfig(map[string]string{
		"JWT_SECRET":       testSecret,
		"ACCEPTED_ORIGINS": "*",
	}))
	tokens := auth.NewTokenIssuer(testSecret)

	return db, mock, router, tokens
}

func doRequest(router *chi.Mux, method, path, token, body string) *httptest.ResponseRecorder {
	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	db, _, router, _ := setupTestRouter(t)
	defer db.Close()

	rec := doRequest(router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["ts"])
}

func TestUnknownRoute(t *testing.T) {
	db, _, router, _ := setupTestRouter(t)
	defer db.Close()

	rec := doRequest(router, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decodeBody(t, rec)["error"])
}

func TestRegister_ValidationReportsAllFields(t *testing.T) {
	db, _, router, _ := setupTestRouter(t)
	defer db.Close()

	rec := doRequest(router, http.MethodPost, "/auth/register", "", `{"email":"nope","name":"","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	fields, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected structured field errors, got %v", body["error"])
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "password")
}

func TestRegister_Success(t *testing.T) {
	db, mock, router, _ := setupTestRouter(t)
	defer db.Close()

	userID := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))

	rec := doRequest(router, http.MethodPost, "/auth/register", "", `{"email":"a@x.com","name":"A","password":"password1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, userID.String(), body["id"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, "A", body["name"])
	assert.NotContains(t, body, "passwordHash")
	assert.NotContains(t, body, "password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db, mock, router, _ := setupTestRouter(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow(uuid.New().String(), "a@x.com", "A", "hash", time.Now()))

	rec := doRequest(router, http.MethodPost, "/auth/register", "", `{"email":"a@x.com","name":"A","password":"password1"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	db, mock, router, _ := setupTestRouter(t)
	defer db.Close()

	passwordHash, err := auth.HashPassword("password1")
	require.NoError(t, err)

	// Unknown email
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}))
	unknownRec := doRequest(router, http.MethodPost, "/auth/login", "", `{"email":"nobody@x.com","password":"password1"}`)

	// Known email, wrong password
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow(uuid.New().String(), "a@x.com", "A", passwordHash, time.Now()))
	wrongRec := doRequest(router, http.MethodPost, "/auth/login", "", `{"email":"a@x.com","password":"password2"}`)

	require.Equal(t, http.StatusUnauthorized, unknownRec.Code)
	require.Equal(t, http.StatusUnauthorized, wrongRec.Code)
	assert.Equal(t, unknownRec.Body.String(), wrongRec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_Success(t *testing.T) {
	db, mock, router, tokens := setupTestRouter(t)
	defer db.Close()

	userID := uuid.New()
	passwordHash, err := auth.HashPassword("password1")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow(userID.String(), "a@x.com", "A", passwordHash, time.Now()))

	rec := doRequest(router, http.MethodPost, "/auth/login", "", `{"email":"a@x.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	token, ok := decodeBody(t, rec)["token"].(string)
	require.True(t, ok)

	parsedID, claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	db, _, router, _ := setupTestRouter(t)
	defer db.Close()

	rec := doRequest(router, http.MethodGet, "/projects", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/projects", "garbage-token", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func issueToken(t *testing.T, tokens *auth.TokenIssuer, userID uuid.UUID) string {
	t.Helper()
	token, err := tokens.Issue(userID, "a@x.com", "A")
	require.NoError(t, err)
	return token
}

func TestGetProject_NonMemberGets404(t *testing.T) {
	db, mock, router, tokens := setupTestRouter(t)
	defer db.Close()

	token := issueToken(t, tokens, uuid.New())

	// Access check comes up empty whether the project exists or not
	mock.ExpectQuery(`SELECT (.+) FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "owner_id", "created_at"}))

	rec := doRequest(router, http.MethodGet, "/projects/"+uuid.New().String(), token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTickets_SearchFilter(t *testing.T) {
	db, mock, router, tokens := setupTestRouter(t)
	defer db.Close()

	userID := uuid.New()
	projectID := uuid.New()
	ticketID := uuid.New()
	token := issueToken(t, tokens, userID)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM "tickets" WHERE project_id = \$1 AND title ILIKE \$2`).
		WithArgs(projectID.String(), "%foo%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "status", "priority", "assignee_id", "created_at", "updated_at"}).
			AddRow(ticketID.String(), projectID.String(), "Foo bar", "OPEN", "MEDIUM", nil, time.Now(), time.Now()))

	rec := doRequest(router, http.MethodGet, "/projects/"+projectID.String()+"/tickets?search=foo", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tickets []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tickets))
	require.Len(t, tickets, 1)
	assert.Equal(t, "Foo bar", tickets[0]["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTickets_NonMemberForbidden(t *testing.T) {
	db, mock, router, tokens := setupTestRouter(t)
	defer db.Close()

	token := issueToken(t, tokens, uuid.New())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rec := doRequest(router, http.MethodGet, "/projects/"+uuid.New().String()+"/tickets", token, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateTicket_AssigneeMustBeMember(t *testing.T) {
	db, mock, router, tokens := setupTestRouter(t)
	defer db.Close()

	token := issueToken(t, tokens, uuid.New())
	assigneeID := uuid.New()

	// Caller is a member, assignee is not
	mock.ExpectQuery(`SELECT count\(\*\) FROM "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "project_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	body := `{"title":"T1","assigneeId":"` + assigneeID.String() + `"}`
	rec := doRequest(router, http.MethodPost, "/projects/"+uuid.New().String()+"/tickets", token, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTicket_NotFoundBeforeForbidden(t *testing.T) {
	db, mock, router, tokens := setupTestRouter(t)
	defer db.Close()

	token := issueToken(t, tokens, uuid.New())

	mock.ExpectQuery(`SELECT (.+) FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := doRequest(router, http.MethodDelete, "/tickets/"+uuid.New().String(), token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidPathID_BadRequest(t *testing.T) {
	db, _, router, tokens := setupTestRouter(t)
	defer db.Close()

	token := issueToken(t, tokens, uuid.New())

	rec := doRequest(router, http.MethodGet, "/tickets/not-a-uuid", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
