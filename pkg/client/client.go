package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Todo mirrors the API representation of a single todo item.
type Todo struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateTodoRequest is the payload for partially updating a todo.
// Nil fields are left untouched by the server.
type UpdateTodoRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Client is the Tasklight API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client. An empty token is valid for the public
// signup and login endpoints.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Signup registers a new account. The server does not log the caller in;
// follow with Login to obtain a token.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	body := credentials{Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/signup", body, nil); err != nil {
		return fmt.Errorf("client.Signup: %w", err)
	}
	return nil
}

// Login exchanges credentials for a bearer token. The token is returned
// but not retained; call SetToken to use it on this client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := credentials{Email: email, Password: password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	return resp.Token, nil
}

// ListTodos fetches all todos owned by the authenticated user.
func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.doRequest(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, fmt.Errorf("client.ListTodos: %w", err)
	}
	return todos, nil
}

// CreateTodo creates a new todo with the given text.
func (c *Client) CreateTodo(ctx context.Context, text string) (*Todo, error) {
	body := struct {
		Text string `json:"text"`
	}{Text: text}
	var created Todo
	if err := c.doRequest(ctx, http.MethodPost, "/api/todos", body, &created); err != nil {
		return nil, fmt.Errorf("client.CreateTodo: %w", err)
	}
	return &created, nil
}

// UpdateTodo applies a partial update to a todo by ID.
func (c *Client) UpdateTodo(ctx context.Context, id string, patch UpdateTodoRequest) (*Todo, error) {
	var updated Todo
	if err := c.doRequest(ctx, http.MethodPut, "/api/todos/"+url.PathEscape(id), patch, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateTodo: %w", err)
	}
	return &updated, nil
}

// DeleteTodo removes a todo by ID.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteTodo: %w", err)
	}
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
