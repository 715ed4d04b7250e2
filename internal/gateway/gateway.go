// Package gateway implements the raw HTTP transport for the partner API.
//
// Every call authenticates the TLS session with the client certificate and
// private key issued by the bank, carries a fixed 30 second timeout, and is
// never retried: a transport failure or non-2xx response surfaces to the
// caller immediately as a *TransportError.
package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"intersdk/internal/logger"
)

// requestTimeout bounds every partner-API call.
const requestTimeout = 30 * time.Second

// Client is the mutual-TLS HTTP client used for all partner-API calls.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient builds a Client from the certificate and private-key files
// issued by the bank. The paths are passed through to crypto/tls unchanged.
func NewClient(certificatePath, privateKeyPath string) (*Client, error) {
	cert, err := tls.LoadX509KeyPair(certificatePath, privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("loading client certificate: %w", err)
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
	}
	return newClient(&http.Client{Transport: transport, Timeout: requestTimeout}), nil
}

func newClient(httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		log:        logger.WithComponent("gateway"),
	}
}

// PostForm sends an application/x-www-form-urlencoded POST.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// PostJSON sends a JSON-encoded POST carrying the given Authorization header.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body any, authorization string) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authorization)
	return c.do(req)
}

// Get sends a GET carrying the given Authorization header.
func (c *Client) Get(ctx context.Context, endpoint string, authorization string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", authorization)
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("Sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", req.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error().
			Str("url", req.URL.String()).
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("Request failed")
		return nil, &TransportError{
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	c.log.Debug().
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Msg("Request completed")
	return body, nil
}
