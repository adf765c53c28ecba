// Package client is the terminal-side counterpart of the REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quicknotes-be/internal/dto"
)

var (
	ErrConnectivity       = errors.New("Server error, please check your connection")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrNoteFieldsRequired = errors.New("Please fill both title and content")
)

// APIError is a non-2xx answer. Message is the server's text, verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
	}
}

// WithHTTPClient swaps the transport; tests point it at httptest servers.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

func (c *Client) sendRequest(ctx context.Context, method, path string, authed bool, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		token, err := c.tokens.Load()
		if err != nil {
			return err
		}
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg dto.MessageResponse
		if err := json.Unmarshal(respBody, &msg); err != nil || msg.Message == "" {
			msg.Message = "Something went wrong"
		}
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, username, password string) (*dto.RegisterResponse, error) {
	var res dto.RegisterResponse
	err := c.sendRequest(ctx, http.MethodPost, "/auth/register", false,
		dto.RegisterRequest{Username: username, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Login stores the token on success. On any failure the stored token is
// dropped so a stale identity is never reused.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var res dto.LoginResponse
	err := c.sendRequest(ctx, http.MethodPost, "/auth/login", false,
		dto.LoginRequest{Username: username, Password: password}, &res)
	if err == nil && res.Token == "" {
		err = errors.New("login response carried no token")
	}
	if err != nil {
		_ = c.tokens.Clear()
		return err
	}
	return c.tokens.Save(res.Token)
}

func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) ListNotes(ctx context.Context) ([]dto.NoteResponse, error) {
	notes := []dto.NoteResponse{}
	if err := c.sendRequest(ctx, http.MethodGet, "/notes", true, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func noteFields(title, content string) (string, string, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return "", "", ErrNoteFieldsRequired
	}
	return title, content, nil
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*dto.NoteResponse, error) {
	title, content, err := noteFields(title, content)
	if err != nil {
		return nil, err
	}

	var res dto.NoteMutationResponse
	err = c.sendRequest(ctx, http.MethodPost, "/notes", true,
		dto.CreateNoteRequest{Title: title, Content: content}, &res)
	if err != nil {
		return nil, err
	}
	return &res.Note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id, title, content string) (*dto.NoteResponse, error) {
	title, content, err := noteFields(title, content)
	if err != nil {
		return nil, err
	}

	var res dto.NoteMutationResponse
	err = c.sendRequest(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), true,
		dto.UpdateNoteRequest{Title: title, Content: content}, &res)
	if err != nil {
		return nil, err
	}
	return &res.Note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.sendRequest(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), true, nil, nil)
}
