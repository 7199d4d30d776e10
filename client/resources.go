package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Register creates a new account. No token required.
func (c *Client) Register(ctx context.Context, email, name, password string) (*User, error) {
	body := map[string]string{"email": email, "name": name, "password": password}
	var user User
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. The caller decides
// where the token lives, typically by wrapping it in a StaticToken.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var response struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &response, false); err != nil {
		return "", err
	}
	return response.Token, nil
}

// Health reports API liveness.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &health, false); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) CreateProject(ctx context.Context, name string, description *string) (*Project, error) {
	body := map[string]any{"name": name}
	if description != nil {
		body["description"] = *description
	}
	var project Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, body, &project, true); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &projects, true); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, projectID uuid.UUID) (*ProjectDetail, error) {
	var project ProjectDetail
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID.String(), nil, nil, &project, true); err != nil {
		return nil, err
	}
	return &project, nil
}

// AddMember adds the user with the given email to the project.
// Owner-only on the server side.
func (c *Client) AddMember(ctx context.Context, projectID uuid.UUID, email string) (*Member, error) {
	body := map[string]string{"email": email}
	var member Member
	if err := c.do(ctx, http.MethodPost, "/projects/"+projectID.String()+"/members", nil, body, &member, true); err != nil {
		return nil, err
	}
	return &member, nil
}

func (c *Client) CreateTicket(ctx context.Context, projectID uuid.UUID, create TicketCreate) (*Ticket, error) {
	var ticket Ticket
	if err := c.do(ctx, http.MethodPost, "/projects/"+projectID.String()+"/tickets", nil, create, &ticket, true); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) ListTickets(ctx context.Context, projectID uuid.UUID, opts TicketListOptions) ([]Ticket, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Priority != "" {
		query.Set("priority", opts.Priority)
	}
	if opts.AssigneeID != nil {
		query.Set("assigneeId", opts.AssigneeID.String())
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}

	var tickets []Ticket
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID.String()+"/tickets", query, nil, &tickets, true); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *Client) GetTicket(ctx context.Context, ticketID uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	if err := c.do(ctx, http.MethodGet, "/tickets/"+ticketID.String(), nil, nil, &ticket, true); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) UpdateTicket(ctx context.Context, ticketID uuid.UUID, update TicketUpdate) (*Ticket, error) {
	var ticket Ticket
	if err := c.do(ctx, http.MethodPut, "/tickets/"+ticketID.String(), nil, update.payload(), &ticket, true); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) DeleteTicket(ctx context.Context, ticketID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/tickets/"+ticketID.String(), nil, nil, nil, true)
}

func (c *Client) CreateLabel(ctx context.Context, projectID uuid.UUID, name string) (*Label, error) {
	body := map[string]string{"name": name}
	var label Label
	if err := c.do(ctx, http.MethodPost, "/projects/"+projectID.String()+"/labels", nil, body, &label, true); err != nil {
		return nil, err
	}
	return &label, nil
}

func (c *Client) ListLabels(ctx context.Context, projectID uuid.UUID) ([]Label, error) {
	var labels []Label
	if err := c.do(ctx, http.MethodGet, "/projects/"+projectID.String()+"/labels", nil, nil, &labels, true); err != nil {
		return nil, err
	}
	return labels, nil
}

func (c *Client) AttachLabel(ctx context.Context, ticketID, labelID uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/tickets/"+ticketID.String()+"/labels/"+labelID.String(), nil, nil, nil, true)
}

func (c *Client) DetachLabel(ctx context.Context, ticketID, labelID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/tickets/"+ticketID.String()+"/labels/"+labelID.String(), nil, nil, nil, true)
}

func (c *Client) CreateComment(ctx context.Context, ticketID uuid.UUID, body string) (*Comment, error) {
	payload := map[string]string{"body": body}
	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/tickets/"+ticketID.String()+"/comments", nil, payload, &comment, true); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) ListComments(ctx context.Context, ticketID uuid.UUID) ([]Comment, error) {
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, "/tickets/"+ticketID.String()+"/comments", nil, nil, &comments, true); err != nil {
		return nil, err
	}
	return comments, nil
}
