package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"anscli/internal/errors"
)

// Client retrieves portal artifacts over HTTP.
type Client struct {
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a client with the given request timeout.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// ListYears fetches the statements directory listing and returns the
// advertised years, ascending.
func (c *Client) ListYears(ctx context.Context, baseURL string) ([]int, error) {
	body, err := c.get(ctx, strings.TrimSuffix(baseURL, "/")+"/")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ExtractYears(body)
}

// ListArchives fetches one year's directory listing and returns the zip
// archive names found there.
func (c *Client) ListArchives(ctx context.Context, baseURL string, year int) ([]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/%d/", strings.TrimSuffix(baseURL, "/"), year))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ExtractArchives(body)
}

// ArchiveURL is the download location of a quarter archive.
func (c *Client) ArchiveURL(baseURL string, year int, name string) string {
	return fmt.Sprintf("%s/%d/%s", strings.TrimSuffix(baseURL, "/"), year, name)
}

// DownloadToTemp streams url into a fresh temp file and returns its
// path with a cleanup func. Cleanup must run on every exit path,
// success or failure.
func (c *Client) DownloadToTemp(ctx context.Context, url, pattern string) (string, func(), error) {
	c.logger.Info("downloading", slog.String("url", url))

	body, err := c.get(ctx, url)
	if err != nil {
		return "", nil, err
	}
	defer body.Close()

	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, errors.NewStorageError("failed to create temp file", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, errors.NewNetworkError(fmt.Sprintf("failed to download %s", url), err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, errors.NewStorageError("failed to close temp file", err)
	}

	return tmp.Name(), cleanup, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("failed to build request for %s", url), err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError(fmt.Sprintf("request to %s failed", url), err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.NewNetworkError(
			fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, url), nil)
	}
	return resp.Body, nil
}
