package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/services"
)

// APIError is a non-2xx answer from the API, carrying its envelope message and,
// for validation failures, the list of violated rules.
type APIError struct {
	StatusCode int
	Message    string
	Errors     json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req := map[string]string{"email": email, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/Auth/login", "", req, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login response carried no token")
	}
	return out.Token, nil
}

func (c *Client) Register(ctx context.Context, in services.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/api/Auth/register", "", in, nil)
}

// UserTanks lists the tanks owned by the token's subject.
func (c *Client) UserTanks(ctx context.Context, token string) ([]models.TankView, error) {
	var tanks []models.TankView
	err := c.do(ctx, http.MethodGet, "/api/Tank/user", token, nil, &tanks)
	return tanks, err
}

func (c *Client) CreateTank(ctx context.Context, token string, in services.TankInput) (models.TankView, error) {
	var tank models.Tank
	if err := c.do(ctx, http.MethodPost, "/api/Tank", token, in, &tank); err != nil {
		return models.TankView{}, err
	}
	return tank.View(), nil
}

func (c *Client) AddWarning(ctx context.Context, token string, in services.WarningInput) (models.Warning, error) {
	var warning models.Warning
	err := c.do(ctx, http.MethodPost, "/api/Warning/add-warning", token, in, &warning)
	return warning, err
}

func (c *Client) Warnings(ctx context.Context, token string) ([]models.Warning, error) {
	var warnings []models.Warning
	err := c.do(ctx, http.MethodGet, "/api/Warning/warnings", token, nil, &warnings)
	return warnings, err
}

func (c *Client) ManagedWarnings(ctx context.Context, token string) ([]models.Warning, error) {
	var warnings []models.Warning
	err := c.do(ctx, http.MethodGet, "/api/Warning/managed-warnings", token, nil, &warnings)
	return warnings, err
}

func (c *Client) ManageWarning(ctx context.Context, token string, id uint) (models.Warning, error) {
	var warning models.Warning
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/Warning/manage/%d", id), token, nil, &warning)
	return warning, err
}

func (c *Client) UnmanageWarning(ctx context.Context, token string, id uint) (models.Warning, error) {
	var warning models.Warning
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/Warning/unmanage/%d", id), token, nil, &warning)
	return warning, err
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		j, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(j)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		if len(env.Data) > 0 && string(env.Data) != "null" {
			apiErr.Errors = env.Data
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
