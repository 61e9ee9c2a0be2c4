// Package api is the HTTP client for the WonderScape REST API.
package api

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

	"wonderscape/internal/common"
	"wonderscape/internal/video"
)

// Error is a non-2xx response decoded from the {"error":{...}} body.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap lets errors.Is(err, common.ErrUnauthenticated) work across the wire.
func (e *Error) Unwrap() error {
	if e.Code == common.CodeUnauthenticated {
		return common.ErrUnauthenticated
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after Login.
func (c *Client) SetToken(token string) { c.token = token }

type AuthResult struct {
	Token  string `json:"token"`
	UserID uint64 `json:"userId"`
	Email  string `json:"email"`
}

func (c *Client) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	return c.auth(ctx, "/api/v1/auth/register", email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return c.auth(ctx, "/api/v1/auth/login", email, password)
}

func (c *Client) auth(ctx context.Context, path, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) RequestUploadSlot(ctx context.Context) (string, error) {
	var out struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/videos/upload-url", nil, &out); err != nil {
		return "", err
	}
	return out.UploadURL, nil
}

// Upload posts a binary body to an upload URL and returns the storage reference.
func (c *Client) Upload(ctx context.Context, uploadURL, filename, contentType string, size int64, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return "", err
	}
	if size >= 0 {
		req.ContentLength = size
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if filename != "" {
		req.Header.Set("X-Filename", filename)
	}

	var out struct {
		StorageID string `json:"storageId"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.StorageID == "" {
		return "", errors.New("api: upload response has no storageId")
	}
	return out.StorageID, nil
}

func (c *Client) CreateVideo(ctx context.Context, in video.CreateVideoInput) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/videos", in, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// GetVideo returns nil when the server answers null.
func (c *Client) GetVideo(ctx context.Context, id string) (*video.VideoView, error) {
	var out *video.VideoView
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/videos/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListVideos(ctx context.Context, sortBy video.SortBy, searchQuery string) ([]video.VideoView, error) {
	q := url.Values{}
	if sortBy != "" {
		q.Set("sortBy", string(sortBy))
	}
	if searchQuery != "" {
		q.Set("searchQuery", searchQuery)
	}
	path := "/api/v1/videos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	out := []video.VideoView{}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) IncrementViews(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/videos/"+url.PathEscape(id)+"/views", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var body common.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiErr.Code = body.Error.Code
			apiErr.Message = body.Error.Message
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
