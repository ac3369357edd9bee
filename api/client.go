package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vetcare/vetcare/internal"
)

var (
	// ErrUnavailable is returned when the backend cannot be reached or
	// answers with a server error.
	ErrUnavailable = errors.New("api backend unavailable")
	// ErrNotFound is returned for requests against a missing record.
	ErrNotFound = errors.New("api record not found")
)

const defaultTimeout = 10 * time.Second

// Client is the typed REST client for the clinic backend.
//
//	Docs: docs/api.md
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL. A zero timeout
// falls back to 10s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured backend endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON performs one request against the backend. A non-nil in is sent as
// a JSON body; a non-nil out receives the decoded response. Server errors
// and transport failures map to ErrUnavailable, 404 to ErrNotFound.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = internal.NewRequestID()
	}
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s %s: status %d", ErrUnavailable, method, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

/*
====================================
USERS
====================================
*/

// FindUserByEmail looks a user up by exact email. A user that does not
// exist returns (nil, nil); only transport and server failures are errors.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var users []User
	path := "/users?email=" + url.QueryEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	u := users[0]
	return &u, nil
}

// CreateUser registers a new user record and returns it with the
// backend-assigned ID.
func (c *Client) CreateUser(ctx context.Context, u User) (*User, error) {
	var created User
	if err := c.doJSON(ctx, http.MethodPost, "/users", u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser replaces the user record with the given ID.
func (c *Client) UpdateUser(ctx context.Context, id string, u User) (*User, error) {
	var updated User
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(id), u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

/*
====================================
PETS
====================================
*/

// ListPets returns every pet record.
func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	var pets []Pet
	if err := c.doJSON(ctx, http.MethodGet, "/pets", nil, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

// CreatePet adds a pet record.
func (c *Client) CreatePet(ctx context.Context, p Pet) (*Pet, error) {
	var created Pet
	if err := c.doJSON(ctx, http.MethodPost, "/pets", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePet replaces the pet record with the given ID.
func (c *Client) UpdatePet(ctx context.Context, id string, p Pet) (*Pet, error) {
	var updated Pet
	if err := c.doJSON(ctx, http.MethodPut, "/pets/"+url.PathEscape(id), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePet removes the pet record with the given ID.
func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/pets/"+url.PathEscape(id), nil, nil)
}

/*
====================================
PRODUCTS
====================================
*/

// ListProducts returns the storefront catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

/*
====================================
APPOINTMENTS
====================================
*/

// ListAppointments returns every appointment record.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var appts []Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointments", nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// CreateAppointment books a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	var created Appointment
	if err := c.doJSON(ctx, http.MethodPost, "/appointments", a, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAppointment replaces the appointment record with the given ID.
func (c *Client) UpdateAppointment(ctx context.Context, id string, a Appointment) (*Appointment, error) {
	var updated Appointment
	if err := c.doJSON(ctx, http.MethodPut, "/appointments/"+url.PathEscape(id), a, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAppointment cancels the appointment record with the given ID.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil)
}
