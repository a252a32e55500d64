package randomguest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wedding-planner/internal/models"
)

const DefaultURL = "https://randomuser.me/api/"

// Config configures the random guest client
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client fetches generated people from the random user service
type Client struct {
	url  string
	http *http.Client
	log  zerolog.Logger
}

// response is the part of the random user payload we read
type response struct {
	Results []struct {
		Name struct {
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
	} `json:"results"`
}

// NewClient creates a new random guest client
func NewClient(cfg *Config) *Client {
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  zerolog.Nop(),
	}
}

// WithLogger replaces the client's logger
func (c *Client) WithLogger(log zerolog.Logger) *Client {
	c.log = log
	return c
}

// RandomName returns "First Last" for one generated person
func (c *Client) RandomName(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &models.ProviderError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", c.url).Msg("Fetching random guest")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &models.ProviderError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &models.ProviderError{Op: "fetch", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var payload response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return "", &models.ProviderError{Op: "decode", Err: err}
	}

	name, err := fullName(payload)
	if err != nil {
		return "", &models.ProviderError{Op: "decode", Err: err}
	}

	c.log.Debug().Str("name", name).Msg("Received random guest")
	return name, nil
}

func fullName(payload response) (string, error) {
	if len(payload.Results) == 0 {
		return "", errors.New("no user data received")
	}
	first := strings.TrimSpace(payload.Results[0].Name.First)
	last := strings.TrimSpace(payload.Results[0].Name.Last)
	if first == "" || last == "" {
		return "", errors.New("response is missing name fields")
	}
	return first + " " + last, nil
}
