package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hostelhub/go-booking-client/users"
)

// AuthResponse is the backend's reply to registration and login: the account
// record plus the token pair the session manager persists.
type AuthResponse struct {
	User         users.User `json:"user"`
	AccessToken  string     `json:"access"`
	RefreshToken string     `json:"refresh"`
}

// RegistrationForm carries the fields common to both account types.
type RegistrationForm struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProviderRegistrationForm adds the hostel details a provider signs up with.
type ProviderRegistrationForm struct {
	RegistrationForm
	HostelName string `json:"hostel_name"`
	Location   string `json:"location"`
}

// RegisterStudent creates a student account. Bootstrap endpoint: the request
// never carries a token.
func (c *Client) RegisterStudent(ctx context.Context, form RegistrationForm) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register/student/", form, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterProvider creates a provider account. Bootstrap endpoint: the
// request never carries a token.
func (c *Client) RegisterProvider(ctx context.Context, form ProviderRegistrationForm) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register/provider/", form, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginForm is the credential pair sent to a login endpoint.
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the role-specific login endpoint. Bootstrap
// endpoint: the request never carries a token.
func (c *Client) Login(ctx context.Context, role users.RoleType, form LoginForm) (*AuthResponse, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("[Login] unknown role %q", role)
	}
	var out AuthResponse
	path := fmt.Sprintf("/login/%s/", role)
	if err := c.do(ctx, http.MethodPost, path, form, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
