// Package google holds the Gmail and Google Calendar clients. Both
// authenticate with a service account using domain-wide delegation,
// impersonating the workspace user the assistant acts as.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rendetalje/friday/config"
	"github.com/rendetalje/friday/internal"
)

var log = internal.GetLogger()

const DefaultTokenURL = "https://oauth2.googleapis.com/token"

var scopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.compose",
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
}

const (
	clientTimeout = 30 * time.Second
	clientRetries = 3

	// tokens are refreshed a minute before they expire
	tokenExpiryMargin = time.Minute
)

// NewRetryableHTTPClient returns a new retryable HTTP client with the given retryMax and timeout.
// The retryable HTTP transport is wrapped in an OpenTelemetry transport.
func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *http.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.Logger = log
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryablehttp.DefaultRetryPolicy

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(
			retryableHTTPClient.StandardClient().Transport,
			otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
				return otelhttptrace.NewClientTrace(ctx)
			}),
		),
	}

	return httpClient
}

type serviceAccountKey struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// tokenSource exchanges a signed service-account assertion for access
// tokens and caches them until shortly before expiry.
type tokenSource struct {
	httpClient  *http.Client
	key         serviceAccountKey
	subject     string
	tokenURL    string
	timeNow     func() time.Time
	mu          sync.Mutex
	cachedToken string
	expiry      time.Time
}

func newTokenSource(cfg *config.Config, httpClient *http.Client) (*tokenSource, error) {
	if cfg.Google.ServiceAccountKeyFile == "" {
		return nil, fmt.Errorf("google service account key file is not set")
	}
	raw, err := os.ReadFile(cfg.Google.ServiceAccountKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account key: %w", err)
	}

	var key serviceAccountKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, fmt.Errorf("invalid service account key: %w", err)
	}
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("service account key is missing client_email or private_key")
	}

	tokenURL := cfg.Google.TokenURL
	if tokenURL == "" {
		tokenURL = key.TokenURI
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	return &tokenSource{
		httpClient: httpClient,
		key:        key,
		subject:    cfg.Google.ImpersonatedUser,
		tokenURL:   tokenURL,
		timeNow:    time.Now,
	}, nil
}

// Token returns a valid access token, minting a new one when the cached
// token is missing or about to expire.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.cachedToken != "" && ts.timeNow().Before(ts.expiry.Add(-tokenExpiryMargin)) {
		return ts.cachedToken, nil
	}

	assertion, err := ts.signAssertion()
	if err != nil {
		return "", err
	}

	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, ts.tokenURL, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange failed: %d", resp.StatusCode)
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", err
	}
	if tokenResponse.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned no access token")
	}

	ts.cachedToken = tokenResponse.AccessToken
	ts.expiry = ts.timeNow().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second)
	return ts.cachedToken, nil
}

func (ts *tokenSource) signAssertion() (string, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(ts.key.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("failed to parse service account private key: %w", err)
	}

	now := ts.timeNow()
	claims := jwt.MapClaims{
		"iss":   ts.key.ClientEmail,
		"scope": strings.Join(scopes, " "),
		"aud":   ts.tokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	if ts.subject != "" {
		claims["sub"] = ts.subject
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
}

// authorize sets the bearer token on an outgoing API request.
func (ts *tokenSource) authorize(ctx context.Context, req *http.Request) error {
	token, err := ts.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
