package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Google web endpoint settings
const (
	DefaultGoogleEndpoint  = "https://translate.googleapis.com/translate_a/single"
	DefaultGoogleTimeout   = 15 * time.Second
	DefaultRequestsPerSec  = 5.0
	googleClientParam      = "gtx"
	maxErrorBodyLen        = 512
	googleSegmentTextIndex = 0
	googleDetectedIndex    = 2
)

// HTTPError is returned for non-200 answers from the translation endpoint
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("translate API error (status %d): %s", e.StatusCode, e.Body)
}

// GoogleClient translates text through the public Google Translate web endpoint.
// Requests are throttled so a long subtitle file does not flood the service.
type GoogleClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// GoogleOption configures a GoogleClient
type GoogleOption func(*GoogleClient)

// WithEndpoint overrides the endpoint URL (used by tests)
func WithEndpoint(endpoint string) GoogleOption {
	return func(g *GoogleClient) { g.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(c *http.Client) GoogleOption {
	return func(g *GoogleClient) { g.httpClient = c }
}

// WithRateLimit sets the maximum requests per second; <= 0 disables throttling
func WithRateLimit(rps float64) GoogleOption {
	return func(g *GoogleClient) {
		if rps <= 0 {
			g.limiter = nil
			return
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewGoogleClient creates a client with default endpoint, timeout and throttle
func NewGoogleClient(opts ...GoogleOption) *GoogleClient {
	g := &GoogleClient{
		endpoint:   DefaultGoogleEndpoint,
		httpClient: &http.Client{Timeout: DefaultGoogleTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSec), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the engine name
func (g *GoogleClient) Name() string {
	return "google"
}

// Translate sends one text and returns the joined translated segments
func (g *GoogleClient) Translate(ctx context.Context, req Request) Result {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return Failure(fmt.Errorf("rate limit wait: %w", err))
		}
	}

	source := req.Source
	if source == "" {
		source = AutoDetect
	}

	query := url.Values{}
	query.Set("client", googleClientParam)
	query.Set("sl", source)
	query.Set("tl", req.Target)
	query.Set("dt", "t")
	query.Set("q", req.Text)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Failure(err)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return Failure(fmt.Errorf("translate API request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > maxErrorBodyLen {
			snippet = snippet[:maxErrorBodyLen]
		}
		return Failure(&HTTPError{StatusCode: resp.StatusCode, Body: snippet})
	}

	text, detected, err := decodeGoogleResponse(body)
	if err != nil {
		return Failure(err)
	}
	return Result{Text: text, Detected: detected}
}

// decodeGoogleResponse reads the nested-array payload:
// [[["translated","source",...],...],null,"en",...]
func decodeGoogleResponse(body []byte) (string, string, error) {
	var payload []any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", fmt.Errorf("parse response: %w", err)
	}
	if len(payload) == 0 {
		return "", "", ErrEmptyTranslation
	}

	segments, ok := payload[0].([]any)
	if !ok || len(segments) == 0 {
		return "", "", ErrEmptyTranslation
	}

	var text string
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) <= googleSegmentTextIndex {
			continue
		}
		if s, ok := parts[googleSegmentTextIndex].(string); ok {
			text += s
		}
	}
	if text == "" {
		return "", "", ErrEmptyTranslation
	}

	var detected string
	if len(payload) > googleDetectedIndex {
		detected, _ = payload[googleDetectedIndex].(string)
	}
	return text, detected, nil
}
