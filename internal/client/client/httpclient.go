package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/booktracker/internal/client/models"
	"github.com/dmitrijs2005/booktracker/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type messageBody struct {
	Message string `json:"message"`
}

type createdBody struct {
	Message string `json:"message"`
	BookID  int64  `json:"bookId"`
}

// do sends one request. A non-empty token marks the call as authenticated:
// 401 and 403 then map to ErrSessionExpired. When out is non-nil a 2xx body
// is decoded into it.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
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
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	if token != "" && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return ErrSessionExpired
	}

	var msg messageBody
	_ = json.NewDecoder(resp.Body).Decode(&msg)
	return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	in := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/register", "", in, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", "", in, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("login response has no token")
	}
	return &out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) ListBooks(ctx context.Context, token string) ([]models.Book, error) {
	var out []models.Book
	if err := c.do(ctx, http.MethodGet, "/books", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateBook(ctx context.Context, token string, in models.BookInput) (int64, error) {
	var out createdBody
	if err := c.do(ctx, http.MethodPost, "/books", token, in, &out); err != nil {
		return 0, err
	}
	return out.BookID, nil
}

func (c *HTTPClient) UpdateBook(ctx context.Context, token string, id int64, in models.BookInput) error {
	return c.do(ctx, http.MethodPut, "/books/"+strconv.FormatInt(id, 10), token, in, nil)
}

func (c *HTTPClient) DeleteBook(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/books/"+strconv.FormatInt(id, 10), token, nil, nil)
}
