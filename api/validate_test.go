package api

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackline/trackline-backend/errs"
	"github.com/trackline/trackline-backend/models"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var apiErr *errs.ApiErr
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 400, apiErr.StatusCode)
	return apiErr.Fields
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := registerRequest{Email: "a@x.com", Name: "A", Password: "password1"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name      string
		req       registerRequest
		badFields []string
	}{
		{"bad email", registerRequest{Email: "not-an-email", Name: "A", Password: "password1"}, []string{"email"}},
		{"empty name", registerRequest{Email: "a@x.com", Name: "  ", Password: "password1"}, []string{"name"}},
		{"short password", registerRequest{Email: "a@x.com", Name: "A", Password: "short"}, []string{"password"}},
		{"everything wrong", registerRequest{}, []string{"email", "name", "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fieldsOf(t, tt.req.Validate())
			assert.Len(t, fields, len(tt.badFields))
			for _, field := range tt.badFields {
				assert.Contains(t, fields, field)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, loginRequest{Email: "a@x.com", Password: "password1"}.Validate())

	// both failures reported at once
	fields := fieldsOf(t, loginRequest{Email: "nope", Password: "short"}.Validate())
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestCreateTicketRequest_Validate(t *testing.T) {
	assert.NoError(t, createTicketRequest{Title: "Fix crash"}.Validate())
	assert.NoError(t, createTicketRequest{Title: "Fix crash", Status: models.StatusClosed, Priority: models.PriorityHigh}.Validate())

	fields := fieldsOf(t, createTicketRequest{Title: "", Status: "WAT", Priority: "SUPER"}.Validate())
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "priority")
}

func TestUpdateTicketRequest_Validate(t *testing.T) {
	empty := ""
	bad := models.TicketStatus("WAT")

	assert.NoError(t, updateTicketRequest{}.Validate())

	fields := fieldsOf(t, updateTicketRequest{Title: &empty, Status: &bad}.Validate())
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "status")
}

func TestNullableUUID_Unmarshal(t *testing.T) {
	id := uuid.New()

	var req updateTicketRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &req))
	assert.False(t, req.AssigneeID.Set)

	req = updateTicketRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId":null}`), &req))
	assert.True(t, req.AssigneeID.Set)
	assert.Nil(t, req.AssigneeID.Value)

	req = updateTicketRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"assigneeId":"`+id.String()+`"}`), &req))
	assert.True(t, req.AssigneeID.Set)
	require.NotNil(t, req.AssigneeID.Value)
	assert.Equal(t, id, *req.AssigneeID.Value)
}

func TestCreateLabelAndCommentRequests_Validate(t *testing.T) {
	assert.NoError(t, createLabelRequest{Name: "bug"}.Validate())
	assert.Error(t, createLabelRequest{Name: " "}.Validate())

	assert.NoError(t, createCommentRequest{Body: "looks good"}.Validate())
	assert.Error(t, createCommentRequest{Body: ""}.Validate())
}
