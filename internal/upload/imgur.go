// Package upload proxies banner and product images to the imgur API, which
// hosts them and hands back a public link.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.imgur.com/3/image"

var (
	// ErrRateLimited maps the host's HTTP 429; callers surface a retry-later
	// message instead of a generic failure.
	ErrRateLimited = errors.New("image host rate limit exceeded")
	ErrUploadFail  = errors.New("image upload failed")
)

type Client struct {
	http     *http.Client
	clientID string
	endpoint string
}

func NewClient(clientID string) *Client {
	return &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		clientID: clientID,
		endpoint: defaultEndpoint,
	}
}

// NewClientWithEndpoint exists for tests pointing at a local server.
func NewClientWithEndpoint(clientID, endpoint string) *Client {
	c := NewClient(clientID)
	c.endpoint = endpoint
	return c
}

type imgurResponse struct {
	Data struct {
		Link string `json:"link"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload sends one image and returns its hosted link.
func (c *Client) Upload(ctx context.Context, filename string, image io.Reader) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("closing upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+c.clientID)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUploadFail, resp.StatusCode)
	}

	var parsed imgurResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	if !parsed.Success || parsed.Data.Link == "" {
		return "", ErrUploadFail
	}
	return parsed.Data.Link, nil
}
