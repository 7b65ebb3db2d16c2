// Package client is a typed HTTP client for the anime API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Anime struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Page struct {
	Content          []Anime `json:"content"`
	TotalElements    int64   `json:"totalElements"`
	TotalPages       int     `json:"totalPages"`
	Size             int     `json:"size"`
	Number           int     `json:"number"`
	NumberOfElements int     `json:"numberOfElements"`
	First            bool    `json:"first"`
	Last             bool    `json:"last"`
	Empty            bool    `json:"empty"`
}

// Error is a non-2xx response. Body fields are empty when the server did not
// answer with the API error body.
type Error struct {
	StatusCode       int    `json:"-"`
	Title            string `json:"title"`
	Details          string `json:"details"`
	DeveloperMessage string `json:"developerMessage"`
	Fields           string `json:"fields,omitempty"`
	FieldsMessage    string `json:"fieldsMessage,omitempty"`
}

func (e *Error) Error() string {
	if e.DeveloperMessage != "" {
		return fmt.Sprintf("animes: %d %s: %s", e.StatusCode, e.DeveloperMessage, e.Details)
	}
	return fmt.Sprintf("animes: unexpected status %d", e.StatusCode)
}

type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client sending Basic credentials with every request.
func New(baseURL, username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, id int64) (Anime, error) {
	var a Anime
	err := c.do(ctx, http.MethodGet, "/animes/"+strconv.FormatInt(id, 10), nil, http.StatusOK, &a)
	return a, err
}

func (c *Client) All(ctx context.Context) ([]Anime, error) {
	var out []Anime
	err := c.do(ctx, http.MethodGet, "/animes/all", nil, http.StatusOK, &out)
	return out, err
}

// List fetches one page. sort values look like "name,desc".
func (c *Client) List(ctx context.Context, page, size int, sort ...string) (Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	for _, s := range sort {
		q.Add("sort", s)
	}
	var p Page
	err := c.do(ctx, http.MethodGet, "/animes?"+q.Encode(), nil, http.StatusOK, &p)
	return p, err
}

func (c *Client) FindByName(ctx context.Context, name string) ([]Anime, error) {
	var out []Anime
	err := c.do(ctx, http.MethodGet, "/animes/find?name="+url.QueryEscape(name), nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, name string) (Anime, error) {
	var a Anime
	err := c.do(ctx, http.MethodPost, "/animes", map[string]string{"name": name}, http.StatusCreated, &a)
	return a, err
}

func (c *Client) Replace(ctx context.Context, a Anime) error {
	return c.do(ctx, http.MethodPut, "/animes/"+strconv.FormatInt(a.ID, 10), a, http.StatusNoContent, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/animes/"+strconv.FormatInt(id, 10), nil, http.StatusNoContent, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := &Error{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
