// Package sleeper is a caching, retrying client for the Sleeper
// fantasy-football API.
package sleeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	cachepkg "github.com/huddleai/huddle/pkg/cache/sqlite"
	"github.com/huddleai/huddle/pkg/config"
	"github.com/huddleai/huddle/pkg/models"
)

// DefaultBaseURL is the Sleeper API host.
const DefaultBaseURL = "https://api.sleeper.app/v1"

const userAgent = "huddle/1.0"

// The player catalog is large and changes rarely; it gets a longer TTL
// than regular responses.
const playerCatalogTTL = 7 * 24 * time.Hour

// defaultRateLimitWait applies when a 429 response carries no Retry-After
// hint.
const defaultRateLimitWait = 60 * time.Second

// ErrorKind classifies gateway failures.
type ErrorKind int

const (
	// KindTimeout marks a request that timed out. It appears only as the
	// wrapped cause of a KindExhausted error.
	KindTimeout ErrorKind = iota
	// KindRateLimited marks a 429. It is handled inside the retry loop and
	// never surfaces to callers.
	KindRateLimited
	// KindHTTPError marks a non-transient HTTP status (4xx other than 429,
	// or an unparseable success body). Not retried.
	KindHTTPError
	// KindExhausted marks a request that failed after all retries.
	KindExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate limited"
	case KindHTTPError:
		return "http error"
	case KindExhausted:
		return "retries exhausted"
	default:
		return "unknown"
	}
}

// GatewayError is the error type returned by the client.
type GatewayError struct {
	Kind       ErrorKind
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s on %s", e.Kind, e.Endpoint)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Client issues requests against the Sleeper API with cache-first reads,
// exponential backoff on transient failures, and rate-limit cooperation.
// A nil cache disables caching entirely.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cachepkg.Cache
	maxRetries int
	sleep      func(time.Duration)
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host. Tests use this with
// httptest servers.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSleep replaces the backoff sleep function so tests never wait.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

// New creates a Client from the application config. cache may be nil to
// disable caching.
func New(cfg *config.Config, cache *cachepkg.Cache, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		cache:      cache,
		maxRetries: cfg.MaxRetries,
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildKey derives the canonical cache key for a logical request. The key
// is a pure function of the endpoint and the sorted parameters, so
// parameter ordering at the call site never splits cache entries.
func BuildKey(endpoint string, params map[string]string) string {
	key := strings.ReplaceAll(strings.Trim(endpoint, "/"), "/", "_")
	if len(params) == 0 {
		return key
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(key)
	for _, name := range names {
		fmt.Fprintf(&b, "_%s=%s", name, params[name])
	}
	return b.String()
}

// fetch executes one logical request: cache-first, then the two-branch
// retry loop. ttl overrides the cache's default entry TTL when positive.
func (c *Client) fetch(ctx context.Context, endpoint string, params map[string]string, cacheKey string, ttl time.Duration) ([]byte, error) {
	if c.cache != nil {
		if payload, ok := c.cache.Get(cacheKey); ok {
			return payload, nil
		}
	}

	var lastErr error
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, &GatewayError{Kind: KindTimeout, Endpoint: endpoint, Err: err}
		}

		res, err := c.do(ctx, endpoint, params)
		if err != nil {
			// Transient branch: counts toward the retry budget.
			lastErr = classify(endpoint, err)
			if attempt < c.maxRetries {
				delay := time.Duration(1<<attempt) * time.Second
				log.Printf("sleeper: request to %s failed (attempt %d): %v, retrying in %s", endpoint, attempt+1, err, delay)
				c.sleep(delay)
				attempt++
				continue
			}
			return nil, &GatewayError{Kind: KindExhausted, Endpoint: endpoint, Err: lastErr}
		}

		switch res.statusCode {
		case http.StatusOK:
			if !json.Valid(res.body) {
				return nil, &GatewayError{Kind: KindHTTPError, Endpoint: endpoint, StatusCode: res.statusCode, Err: errors.New("response is not valid JSON")}
			}
			if c.cache != nil {
				// Write-through is an optimization; failures are logged,
				// never fatal.
				if err := c.writeCache(cacheKey, res.body, ttl); err != nil {
					log.Printf("sleeper: cache write for %s failed: %v", cacheKey, err)
				}
			}
			return res.body, nil

		case http.StatusTooManyRequests:
			// Rate-limit branch: wait the server hint and re-run the same
			// attempt. Deliberately does not consume a retry slot, so the
			// client never gives up under sustained throttling.
			wait := retryAfter(res.header)
			log.Printf("sleeper: %v, waiting %s", &GatewayError{Kind: KindRateLimited, Endpoint: endpoint, StatusCode: res.statusCode}, wait)
			c.sleep(wait)
			continue

		default:
			return nil, &GatewayError{Kind: KindHTTPError, Endpoint: endpoint, StatusCode: res.statusCode}
		}
	}
}

// upstreamResult holds the response from a single upstream attempt.
type upstreamResult struct {
	statusCode int
	body       []byte
	header     http.Header
}

// do performs a single HTTP GET against the Sleeper host.
func (c *Client) do(ctx context.Context, endpoint string, params map[string]string) (*upstreamResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &upstreamResult{
		statusCode: resp.StatusCode,
		body:       body,
		header:     resp.Header,
	}, nil
}

func (c *Client) writeCache(key string, payload []byte, ttl time.Duration) error {
	if ttl > 0 {
		return c.cache.PutTTL(key, payload, ttl)
	}
	return c.cache.Put(key, payload)
}

// classify wraps transport errors, marking timeouts.
func classify(endpoint string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &GatewayError{Kind: KindTimeout, Endpoint: endpoint, Err: err}
	}
	return err
}

// retryAfter reads the Retry-After seconds hint, defaulting to 60s when
// absent or malformed.
func retryAfter(header http.Header) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return defaultRateLimitWait
	}
	return time.Duration(secs) * time.Second
}

// GetUser looks up a Sleeper account by username.
func (c *Client) GetUser(ctx context.Context, username string) (*models.User, error) {
	endpoint := "/user/" + username
	body, err := c.fetch(ctx, endpoint, nil, BuildKey(endpoint, nil), 0)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// GetLeaguesForUser lists a user's leagues for an NFL season.
func (c *Client) GetLeaguesForUser(ctx context.Context, userID, season string) ([]models.League, error) {
	endpoint := fmt.Sprintf("/user/%s/leagues/nfl/%s", userID, season)
	body, err := c.fetch(ctx, endpoint, nil, BuildKey(endpoint, nil), 0)
	if err != nil {
		return nil, err
	}
	var leagues []models.League
	if err := json.Unmarshal(body, &leagues); err != nil {
		return nil, fmt.Errorf("decode leagues: %w", err)
	}
	return leagues, nil
}

// GetLeague fetches league detail, including scoring settings.
func (c *Client) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	endpoint := "/league/" + leagueID
	body, err := c.fetch(ctx, endpoint, nil, BuildKey(endpoint, nil), 0)
	if err != nil {
		return nil, err
	}
	var l models.League
	if err := json.Unmarshal(body, &l); err != nil {
		return nil, fmt.Errorf("decode league: %w", err)
	}
	return &l, nil
}

// GetRosters fetches all rosters in a league.
func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	endpoint := fmt.Sprintf("/league/%s/rosters", leagueID)
	body, err := c.fetch(ctx, endpoint, nil, BuildKey(endpoint, nil), 0)
	if err != nil {
		return nil, err
	}
	var rosters []models.Roster
	if err := json.Unmarshal(body, &rosters); err != nil {
		return nil, fmt.Errorf("decode rosters: %w", err)
	}
	return rosters, nil
}

// GetLeagueUsers fetches all member accounts of a league.
func (c *Client) GetLeagueUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	endpoint := fmt.Sprintf("/league/%s/users", leagueID)
	body, err := c.fetch(ctx, endpoint, nil, BuildKey(endpoint, nil), 0)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// GetMatchups fetches one week's matchup records for a league.
func (c *Client) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.Matchup, error) {
	endpoint := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	body, err := c.fetch(ctx, endpoint, nil, BuildKey(endpoint, nil), 0)
	if err != nil {
		return nil, err
	}
	var matchups []models.Matchup
	if err := json.Unmarshal(body, &matchups); err != nil {
		return nil, fmt.Errorf("decode matchups: %w", err)
	}
	for i := range matchups {
		if matchups[i].Week == 0 {
			matchups[i].Week = week
		}
	}
	return matchups, nil
}

// GetAllPlayers fetches the full NFL player catalog. The payload is large,
// so it is cached with a long TTL.
func (c *Client) GetAllPlayers(ctx context.Context) (map[string]models.Player, error) {
	endpoint := "/players/nfl"
	body, err := c.fetch(ctx, endpoint, nil, BuildKey(endpoint, nil), playerCatalogTTL)
	if err != nil {
		return nil, err
	}
	var players map[string]models.Player
	if err := json.Unmarshal(body, &players); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	return players, nil
}

// GetTrendingPlayers fetches the most-added players over a lookback
// window.
func (c *Client) GetTrendingPlayers(ctx context.Context, lookbackHours, limit int) ([]models.TrendingPlayer, error) {
	endpoint := "/players/nfl/trending/add"
	params := map[string]string{
		"lookback_hours": strconv.Itoa(lookbackHours),
		"limit":          strconv.Itoa(limit),
	}
	body, err := c.fetch(ctx, endpoint, params, BuildKey(endpoint, params), 0)
	if err != nil {
		return nil, err
	}
	var trending []models.TrendingPlayer
	if err := json.Unmarshal(body, &trending); err != nil {
		return nil, fmt.Errorf("decode trending players: %w", err)
	}
	return trending, nil
}
