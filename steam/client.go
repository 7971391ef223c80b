package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Steam Web API host
const DefaultBaseURL = "http://api.steampowered.com"

const (
	defaultTimeout = 30 * time.Second
	keyParam       = "key"

	// defaultMaxBodyBytes caps a successful response body. The largest
	// libraries Steam returns are a few hundred KB.
	defaultMaxBodyBytes = 16 << 20
)

// QueryParam is a single query parameter. Order is kept on the wire.
type QueryParam struct {
	Name  string
	Value string
}

// Client wraps the Steam Web API
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	maxBody    int64
	logger     zerolog.Logger
}

// NewClient creates a new Steam client.
// An empty apiKey is allowed; requests are then sent anonymously.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		maxBody: defaultMaxBodyBytes,
		logger:  logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// endpoint joins a resource path onto the configured base URL
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// GetRequest performs an authenticated GET against endpoint and returns the raw JSON body.
// The API key is always sent as the first parameter, followed by query in order.
func (c *Client) GetRequest(ctx context.Context, endpoint string, query []QueryParam) (json.RawMessage, error) {
	if c.apiKey == "" {
		c.logger.Warn().Msg("Not using a valid API key. Is this on purpose?")
	}

	requestURL, err := buildRequestURL(endpoint, c.apiKey, query)
	if err != nil {
		return nil, &APIError{Kind: KindTransportFailure, Message: msgTransportFailure, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &APIError{Kind: KindTransportFailure, Message: msgTransportFailure, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("url", redactKey(requestURL)).
		Msg("Making Steam API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
		if err != nil {
			return nil, transportError(err)
		}
		if int64(len(body)) > c.maxBody {
			return nil, &APIError{
				Kind:       KindUnexpectedSchema,
				StatusCode: resp.StatusCode,
				Message:    msgUnexpectedSchema,
				Err:        fmt.Errorf("response body exceeds %d bytes", c.maxBody),
			}
		}
		if !json.Valid(body) {
			return nil, &APIError{
				Kind:       KindUnexpectedSchema,
				StatusCode: resp.StatusCode,
				Message:    msgUnexpectedSchema,
				Err:        errors.New("response body is not valid JSON"),
			}
		}
		return json.RawMessage(body), nil

	case http.StatusUnauthorized:
		drain(resp.Body)
		return nil, &APIError{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Message: msgUnauthorized}

	default:
		drain(resp.Body)
		c.logger.Debug().Int("status", resp.StatusCode).Msg("Steam rejected request")
		return nil, &APIError{Kind: KindRejected, StatusCode: resp.StatusCode, Message: msgRejected}
	}
}

// buildRequestURL appends the key and query to endpoint without reordering anything.
// Parameters already in endpoint stay in front. Any other key parameter, in
// endpoint or query, is dropped so the credential is sent once.
func buildRequestURL(endpoint, apiKey string, query []QueryParam) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q: scheme and host are required", endpoint)
	}

	var sb strings.Builder
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" || isKeyPair(pair) {
			continue
		}
		sb.WriteString(pair)
		sb.WriteByte('&')
	}
	sb.WriteString(keyParam)
	sb.WriteByte('=')
	sb.WriteString(url.QueryEscape(apiKey))

	for _, p := range query {
		if p.Name == keyParam {
			continue
		}
		sb.WriteByte('&')
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}

	u.RawQuery = sb.String()
	return u.String(), nil
}

// isKeyPair reports whether a raw name=value pair carries the key parameter
func isKeyPair(pair string) bool {
	name, _, _ := strings.Cut(pair, "=")
	if unescaped, err := url.QueryUnescape(name); err == nil {
		name = unescaped
	}
	return name == keyParam
}

// transportError maps a failure that happened before any status was read
func transportError(err error) *APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Kind: KindTimeout, Message: msgTimeout, Err: err}
	}
	return &APIError{Kind: KindTransportFailure, Message: msgTransportFailure, Err: err}
}

// drain reads a bounded amount of an unused body so the connection can be reused
func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
}

// redactKey hides the API key before a URL is logged
func redactKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	if q.Get(keyParam) != "" {
		q.Set(keyParam, "REDACTED")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
