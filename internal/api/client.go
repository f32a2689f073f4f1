package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the server answers 401. Callers use it to
// drive the PIN flow instead of surfacing a raw error.
var ErrUnauthorized = errors.New("unauthorized")

// secretCookie is the cookie the server expects on authenticated requests.
const secretCookie = "Secret"

// ItemKind is the wire value describing what an item holds.
type ItemKind int

const (
	TextItem  ItemKind = 0
	ImageItem ItemKind = 1
	FileItem  ItemKind = 2
)

func (k ItemKind) String() string {
	switch k {
	case TextItem:
		return "text"
	case ImageItem:
		return "image"
	case FileItem:
		return "file"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Item is one pushed payload belonging to a feed. Kind and Date are fixed at
// creation; Name and DisplayName change on rename.
type Item struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Date        time.Time `json:"date"`
	Kind        ItemKind  `json:"type"`
}

// Feed is the metadata the server returns for one feed. Secret is only
// present when the request carried valid credentials.
type Feed struct {
	Name           string `json:"name"`
	Secret         string `json:"secret,omitempty"`
	VapidPublicKey string `json:"vapidpublickey,omitempty"`
	Items          []Item `json:"items"`
}

type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SetSecret installs the capability token sent with every subsequent request.
func (c *Client) SetSecret(secret string) {
	c.secret = secret
}

// GetFeed fetches feed metadata and the current item list. A 401 answer is
// reported as ErrUnauthorized.
func (c *Client) GetFeed(ctx context.Context, name string) (Feed, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/feeds/"+url.PathEscape(name), nil)
	if err != nil {
		return Feed{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Feed{}, fmt.Errorf("fetch feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return Feed{}, fmt.Errorf("fetch feed %q: %w", name, ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return Feed{}, fmt.Errorf("fetch feed failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var feed Feed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return Feed{}, fmt.Errorf("decode feed response: %w", err)
	}
	return feed, nil
}

// Authenticate exchanges a credential (feed secret or short-lived PIN) for
// the feed secret. The same endpoint serves both redemption and PIN entry.
func (c *Client) Authenticate(ctx context.Context, name, credential string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/feeds/"+url.PathEscape(name)+"/authenticate", strings.NewReader(credential))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("authenticate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("authenticate feed %q: %w", name, ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("authenticate failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("read authenticate response: %w", err)
	}
	secret := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(body)), `"`))
	if secret == "" {
		return "", fmt.Errorf("authenticate returned an empty secret")
	}
	return secret, nil
}

// SetPIN attaches a short-lived PIN to the feed.
func (c *Client) SetPIN(ctx context.Context, name, pin string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/feeds/"+url.PathEscape(name)+"/pin", strings.NewReader(pin))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	return c.doExpectOK(req, "set pin")
}

// GetItem downloads an item's raw bytes and reports the content type the
// server declared for them.
func (c *Client) GetItem(ctx context.Context, feed, item string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, itemPath(feed, item), nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch item request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, "", fmt.Errorf("fetch item %q: %w", item, ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch item failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read item body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// RenameItem changes an item's display name without touching its kind or
// creation date.
func (c *Client) RenameItem(ctx context.Context, feed, item, newName string) error {
	payload, err := json.Marshal(map[string]string{"name": newName})
	if err != nil {
		return fmt.Errorf("encode rename payload: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPatch, itemPath(feed, item), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return c.doExpectOK(req, "rename item")
}

func (c *Client) DeleteItem(ctx context.Context, feed, item string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, itemPath(feed, item), nil)
	if err != nil {
		return err
	}
	return c.doExpectOK(req, "delete item")
}

// EmptyFeed deletes every item in the feed.
func (c *Client) EmptyFeed(ctx context.Context, feed string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/feeds/"+url.PathEscape(feed)+"/items", nil)
	if err != nil {
		return err
	}
	return c.doExpectOK(req, "empty feed")
}

// PushText publishes a text payload to the feed as a multipart "file" field,
// the same shape the web upload form produces.
func (c *Client) PushText(ctx context.Context, feed, text string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	field, err := writer.CreateFormField("file")
	if err != nil {
		return fmt.Errorf("build push form: %w", err)
	}
	if _, err := io.WriteString(field, text); err != nil {
		return fmt.Errorf("write push form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish push form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/feeds/"+url.PathEscape(feed), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.doExpectOK(req, "push text")
}

func (c *Client) doExpectOK(req *http.Request, action string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", action, ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s failed with status %d: %s", action, resp.StatusCode, readErrorBody(resp.Body))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.secret != "" {
		req.AddCookie(&http.Cookie{Name: secretCookie, Value: c.secret})
	}
	return req, nil
}

func itemPath(feed, item string) string {
	return "/api/feeds/" + url.PathEscape(feed) + "/items/" + url.PathEscape(item)
}

func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))
	return strings.TrimSpace(string(body))
}
