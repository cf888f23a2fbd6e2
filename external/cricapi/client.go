package cricapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-scores/internal/domain/cricket"
	"github.com/riskibarqy/cricket-scores/internal/platform/logging"
)

const (
	DefaultBaseURL = "https://api.cricapi.com/v1"
	DefaultTimeout = 10 * time.Second

	currentMatchesPath = "/currentMatches"
	maxBodyBytes       = 6 << 20
	keyPrefixLen       = 8
)

// providerJSON keeps numbers as json.Number so they are echoed as received.
var providerJSON = sonic.Config{UseNumber: true}.Froze()

var apiKeyParamRegex = regexp.MustCompile(`apikey=[^&\s"']+`)

var (
	errCricAPITransient = crerr.New("cricapi transient failure")
	errMissingData      = crerr.New("cricapi response has no data")
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client talks to the CricAPI v1 REST API. Every call is a single attempt.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
}

var _ cricket.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = DefaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
	}
}

type currentMatchesEnvelope struct {
	Data   *[]any `json:"data"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// FetchCurrentMatches returns the records under "data". Entries that are not
// JSON objects are skipped.
func (c *Client) FetchCurrentMatches(ctx context.Context) ([]cricket.RawMatch, error) {
	raw, status, err := c.executeRequest(ctx, c.currentMatchesURL())
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		err := crerr.Newf("provider status=%d body=%s", status, c.sanitize(abbreviateBody(raw)))
		if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
			err = crerr.Mark(err, errCricAPITransient)
		}
		c.logFailure(ctx, status, raw, err)
		return nil, err
	}

	var envelope currentMatchesEnvelope
	if err := providerJSON.Unmarshal(raw, &envelope); err != nil {
		err = crerr.Wrap(err, "decode provider payload")
		c.logFailure(ctx, status, raw, err)
		return nil, err
	}
	if strings.EqualFold(strings.TrimSpace(envelope.Status), "failure") {
		err := crerr.Newf("provider reported failure: %s", c.sanitize(envelope.Reason))
		c.logFailure(ctx, status, raw, err)
		return nil, err
	}
	if envelope.Data == nil {
		c.logFailure(ctx, status, raw, errMissingData)
		return nil, errMissingData
	}

	out := make([]cricket.RawMatch, 0, len(*envelope.Data))
	for _, item := range *envelope.Data {
		if record, ok := item.(map[string]any); ok {
			out = append(out, cricket.RawMatch(record))
		}
	}

	c.logger.DebugContext(ctx, "cricapi current matches fetched", "records", len(out))
	return out, nil
}

// FetchRaw returns the provider body for any HTTP status, provided it is JSON.
// The API key is redacted from the body.
func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	raw, status, err := c.executeRequest(ctx, c.currentMatchesURL())
	if err != nil {
		return nil, err
	}
	if !sonic.Valid(raw) {
		err := crerr.Newf("provider status=%d returned non-JSON body: %s", status, c.sanitize(abbreviateBody(raw)))
		c.logFailure(ctx, status, raw, err)
		return nil, err
	}
	if c.apiKey != "" {
		raw = bytes.ReplaceAll(raw, []byte(c.apiKey), []byte("REDACTED"))
	}
	return raw, nil
}

func (c *Client) currentMatchesURL() string {
	values := url.Values{}
	values.Set("apikey", c.apiKey)
	return c.baseURL + currentMatchesPath + "?" + values.Encode()
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = crerr.Mark(crerr.Newf("send request: %s", c.sanitize(err.Error())), errCricAPITransient)
		c.logFailure(ctx, 0, nil, err)
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		err = crerr.Mark(crerr.Newf("read response body: %s", c.sanitize(err.Error())), errCricAPITransient)
		c.logFailure(ctx, resp.StatusCode, nil, err)
		return nil, resp.StatusCode, err
	}
	return raw, resp.StatusCode, nil
}

func (c *Client) logFailure(ctx context.Context, status int, body []byte, err error) {
	c.logger.WarnContext(ctx, "cricapi request failed",
		"url", redactAPIURL(c.currentMatchesURL()),
		"status_code", status,
		"body", c.sanitize(abbreviateBody(body)),
		"key_prefix", keyPrefix(c.apiKey),
		"transient", IsTransient(err),
		"error", c.sanitize(err.Error()),
	)
}

func (c *Client) sanitize(value string) string {
	return sanitizeSensitiveText(value, c.apiKey)
}

// IsTransient reports whether err came from a transport failure or a 429/5xx.
func IsTransient(err error) bool {
	return crerr.Is(err, errCricAPITransient)
}

// IsMissingData reports whether the provider answered without a data array.
func IsMissingData(err error) bool {
	return crerr.Is(err, errMissingData)
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if key != "" {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apikey=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return apiKeyParamRegex.ReplaceAllString(rawURL, "apikey=REDACTED")
	}
	query := parsed.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func keyPrefix(key string) string {
	if len(key) <= keyPrefixLen {
		return strings.Repeat("*", len(key))
	}
	return key[:keyPrefixLen]
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
