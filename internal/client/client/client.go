// Package client implements the HTTP API client used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/authvault/internal/common"
)

// ErrUnavailable indicates the server could not be reached at all.
var ErrUnavailable = errors.New("server unavailable")

// Client talks to the authvault HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// User is the account projection returned by the API.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenInfo describes the verified token backing a session.
type TokenInfo struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	IssuedAt  string `json:"issuedAt"`
	ExpiresAt string `json:"expiresAt"`
}

// AuthResult is the outcome of a successful register or login call.
type AuthResult struct {
	Token string
	User  User
}

// Profile is the outcome of a successful profile call.
type Profile struct {
	User       User
	Token      TokenInfo
	ServerTime string
}

// response mirrors the server's JSON envelope.
type response struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	Token      string     `json:"token"`
	User       *User      `json:"user"`
	TokenInfo  *TokenInfo `json:"tokenInfo"`
	ServerTime string     `json:"serverTime"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns the issued session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/register", registerRequest{Name: name, Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}
	return authResult(resp)
}

// Login authenticates an existing account and returns the issued session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, "")
	if err != nil {
		return nil, err
	}
	return authResult(resp)
}

// Profile fetches the protected profile resource using token.
func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/protected/profile", nil, token)
	if err != nil {
		return nil, err
	}
	if resp.User == nil || resp.TokenInfo == nil {
		return nil, fmt.Errorf("%w: incomplete profile response", common.ErrInternal)
	}
	return &Profile{User: *resp.User, Token: *resp.TokenInfo, ServerTime: resp.ServerTime}, nil
}

// Ping probes server reachability via the health endpoint. The endpoint
// answers with plain text, so only the status code is inspected.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %d", common.ErrInternal, resp.StatusCode)
	}
	return nil
}

func authResult(resp *response) (*AuthResult, error) {
	if resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: incomplete auth response", common.ErrInternal)
	}
	return &AuthResult{Token: resp.Token, User: *resp.User}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string) (*response, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", common.ErrInternal, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, statusError(httpResp.StatusCode, resp.Message)
	}
	return &resp, nil
}

// statusError maps an API status code back onto the shared error taxonomy,
// keeping the server's message for display.
func statusError(status int, message string) error {
	var base error
	switch status {
	case http.StatusBadRequest:
		base = common.ErrValidation
	case http.StatusUnauthorized:
		base = common.ErrUnauthorized
	case http.StatusNotFound:
		base = common.ErrNotFound
	case http.StatusConflict:
		base = common.ErrAlreadyExists
	default:
		base = common.ErrInternal
	}
	if message == "" {
		return base
	}
	return fmt.Errorf("%s: %w", message, base)
}
