// Package backend implements the REST gateway to the booking platform's
// backend. The console never validates credentials or mints tokens itself; it
// forwards them here and normalizes the responses into domain records.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookello/booking-console/internal/api/metrics"
	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx backend response. Code is a machine-readable tag
// (booking-limit, plan-expiry, ...) passed through to booking-flow consumers;
// this package only relays it.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// Client talks to the booking backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// authPayload is the backend's authentication response shape.
type authPayload struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProfilePhoto   string `json:"profilePhoto"`
	ImpersonatedBy string `json:"impersonatedBy"`
	Token          string `json:"token"`
}

func (p authPayload) result() *ports.AuthResult {
	return &ports.AuthResult{
		Session: domain.Session{
			ID:             p.ID,
			Name:           p.Name,
			Email:          p.Email,
			Role:           domain.CanonicalRole(p.Role),
			ProfilePhoto:   p.ProfilePhoto,
			ImpersonatedBy: p.ImpersonatedBy,
		},
		Token: p.Token,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	in := map[string]string{"email": email, "password": password}
	var out authPayload
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", in, &out); err != nil {
		if apiErr, ok := asAPIError(err); ok && apiErr.Status < http.StatusInternalServerError {
			// Backend rejected the credentials; keep its message for the view.
			return nil, fmt.Errorf("%w: %s", domain.ErrCredentialsInvalid, apiErr.Message)
		}
		return nil, err
	}
	return out.result(), nil
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	body := map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"phone":    in.Phone,
		"password": in.Password,
		"role":     in.Role,
	}
	var out authPayload
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", body, &out); err != nil {
		return nil, err
	}
	return out.result(), nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, patch domain.SessionPatch) (domain.SessionPatch, error) {
	var out domain.SessionPatch
	if err := c.do(ctx, "update_profile", http.MethodPatch, "/users/me", token, patch, &out); err != nil {
		return domain.SessionPatch{}, err
	}
	return out, nil
}

// UploadPhoto sends a multipart avatar upload and returns the stored photo
// reference.
func (c *Client) UploadPhoto(ctx context.Context, token, filename string, photo io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return "", fmt.Errorf("photo upload form: %w", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return "", fmt.Errorf("photo upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("photo upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/me/photo", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var out struct {
		ProfilePhoto string `json:"profilePhoto"`
	}
	if err := c.send(req, "upload_photo", &out); err != nil {
		return "", err
	}
	return out.ProfilePhoto, nil
}

func (c *Client) Impersonate(ctx context.Context, token, tenantID string) (*ports.AuthResult, error) {
	var out authPayload
	path := "/tenants/" + tenantID + "/impersonate"
	if err := c.do(ctx, "impersonate", http.MethodPost, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.result(), nil
}

func (c *Client) StopImpersonation(ctx context.Context, token string) (*ports.AuthResult, error) {
	var out authPayload
	if err := c.do(ctx, "stop_impersonation", http.MethodDelete, "/impersonation", token, nil, &out); err != nil {
		return nil, err
	}
	return out.result(), nil
}

// do issues a JSON request and decodes the response into out. Non-2xx
// responses decode the backend's {message, code} envelope into an *APIError.
func (c *Client) do(ctx context.Context, op, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, op, out)
}

func (c *Client) send(req *http.Request, op string, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("backend %s: %w", op, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestDuration.WithLabelValues(op, statusClass(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			c.log.Debug().Int("status", resp.StatusCode).Str("op", op).
				Msg("backend error body was not decodable")
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
