package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// httpRepo is the remote backing store: it speaks the plain REST CRUD
// surface of an upstream patient service and translates every non-2xx
// response into the repository error taxonomy, never leaking raw
// transport errors to callers.
type httpRepo struct {
	baseURL string
	client  *http.Client
}

// NewHTTPRepo creates a remote repository against baseURL (for example
// "http://localhost:8000"). A non-positive timeout falls back to 10s.
func NewHTTPRepo(baseURL string, timeout time.Duration) Repository {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *httpRepo) List(ctx context.Context) ([]*Patient, error) {
	var out []*Patient
	if err := r.do(ctx, http.MethodGet, "/patients", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*Patient{}
	}
	return out, nil
}

func (r *httpRepo) Get(ctx context.Context, id string) (*Patient, error) {
	var out Patient
	if err := r.do(ctx, http.MethodGet, "/patients/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRepo) Create(ctx context.Context, p *Patient) (*Patient, error) {
	var out Patient
	if err := r.do(ctx, http.MethodPost, "/patients", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRepo) Update(ctx context.Context, id string, p *Patient) (*Patient, error) {
	var out Patient
	if err := r.do(ctx, http.MethodPut, "/patients/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *httpRepo) Delete(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, "/patients/"+url.PathEscape(id), nil, nil)
}

// do performs one round trip and decodes the response into out when out
// is non-nil.
func (r *httpRepo) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return connectionErr(op, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(op, resp.StatusCode); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return connectionErr(op+": decode response", err)
		}
	}
	return nil
}

// classifyStatus maps an HTTP status onto the error taxonomy: 404 is
// ErrNotFound, 401/403 are ErrPermission, any other non-2xx is
// ErrConnection.
func classifyStatus(op string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, ErrPermission)
	default:
		return fmt.Errorf("%s: %w: unexpected status %d", op, ErrConnection, status)
	}
}
