// Package fetch loads remote CSV sources over HTTP.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tv-data/internal/csvio"
	"tv-data/internal/frame"
)

// Client fetches CSV documents.
type Client struct {
	http *resty.Client
}

// NewClient builds a client with sane timeouts and retries for flaky data
// hosts.
func NewClient() *Client {
	return &Client{
		http: resty.New().
			SetTimeout(2 * time.Minute).
			SetRetryCount(2).
			SetRetryWaitTime(2 * time.Second),
	}
}

// Frame GETs url and parses the body as CSV. A non-2xx status is an error
// carrying the status code.
func (c *Client) Frame(ctx context.Context, url string) (frame.Frame, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return frame.Frame{}, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	f, err := csvio.ReadFrameFrom(bytes.NewReader(resp.Body()))
	if err != nil {
		return frame.Frame{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	return f, nil
}

// Source adapts one URL as a merge input.
type Source struct {
	URL    string
	Client *Client
}

func (s Source) Load(ctx context.Context) (*frame.Frame, error) {
	c := s.Client
	if c == nil {
		c = NewClient()
	}
	f, err := c.Frame(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s Source) Name() string { return s.URL }
