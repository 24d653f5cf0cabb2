// Package images handles avatar processing: uploading originals to the
// external image host and computing BlurHash placeholders for clients.
package images

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/auraapp/aura-server/internal/logger"
	"github.com/auraapp/aura-server/internal/store"
)

// Uploader sends image bytes to the configured host and returns the public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// HTTPUploader uploads images to an imgbb-style multipart endpoint.
type HTTPUploader struct {
	client *resty.Client
	apiKey string
	log    *logger.Logger
}

// Config holds the settings for the image host.
type Config struct {
	UploadURL string
	APIKey    string
	Timeout   time.Duration
}

// NewHTTPUploader creates an uploader against the configured host.
func NewHTTPUploader(cfg Config, log *logger.Logger) *HTTPUploader {
	c := resty.New().
		SetBaseURL(cfg.UploadURL).
		SetTimeout(cfg.Timeout)

	return &HTTPUploader{client: c, apiKey: cfg.APIKey, log: log}
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload sends the image as multipart form data. The stored object name is
// randomized so repeated uploads never collide on the host.
func (u *HTTPUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	name := uuid.NewString() + path.Ext(filename)

	resp, err := u.client.R().
		SetContext(ctx).
		SetQueryParam("key", u.apiKey).
		SetFileReader("image", name, bytes.NewReader(data)).
		Post("")
	if err != nil {
		return "", store.ErrUpstream.WithMessage("image host unreachable").WithCause(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", store.ErrUpstream.WithMessage(fmt.Sprintf("image host status %d", resp.StatusCode()))
	}

	var ur uploadResponse
	if err := json.Unmarshal(resp.Body(), &ur); err != nil {
		return "", store.ErrUpstream.WithMessage("decode image host response").WithCause(err)
	}
	if ur.Data.URL == "" {
		return "", store.ErrUpstream.WithMessage("image host returned empty URL")
	}

	u.log.Debug("uploaded avatar image", "name", name, "size", len(data))
	return ur.Data.URL, nil
}
