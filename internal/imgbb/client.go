// Package imgbb proxies image uploads to the ImgBB hosting API so browser
// clients never see the API key.
package imgbb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const defaultEndpoint = "https://api.imgbb.com/1/upload"

var ErrMissingAPIKey = errors.New("imgbb: api key not configured")

// Client uploads images on behalf of the admin console.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type uploadResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
		DeleteURL  string `json:"delete_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// UploadResult is the subset of the ImgBB response the frontend needs.
type UploadResult struct {
	URL       string `json:"url"`
	DeleteURL string `json:"delete_url"`
}

// Upload streams the image file to ImgBB and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(writer.Close())
	}()

	endpoint := c.endpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		return nil, fmt.Errorf("imgbb: build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imgbb: upload: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("imgbb: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imgbb: upload failed with status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("imgbb: decode response: %w", err)
	}
	if !parsed.Success || parsed.Data.URL == "" {
		return nil, fmt.Errorf("imgbb: upload rejected with status %d", parsed.Status)
	}

	return &UploadResult{
		URL:       parsed.Data.URL,
		DeleteURL: parsed.Data.DeleteURL,
	}, nil
}
