package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/princeprakhar/partnerhub/pkg/logger"
)

// Upload PUTs raw bytes to a pre-signed URL. The bearer credential is never
// attached: the URL itself authorizes the write.
func (c *Client) Upload(ctx context.Context, uploadURL, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	path := redactQuery(uploadURL)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return &Error{Method: http.MethodPut, Path: path, Err: err}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	logger.WithFields(logrus.Fields{
		"path":     path,
		"status":   resp.StatusCode,
		"bytes":    len(data),
		"duration": time.Since(start).String(),
	}).Debug("upload")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Method: http.MethodPut, Path: path, StatusCode: resp.StatusCode, Body: body}
	}
	return nil
}

// redactQuery drops the signature-bearing query string from log and error
// output.
func redactQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "upload"
	}
	u.RawQuery = ""
	return u.String()
}
