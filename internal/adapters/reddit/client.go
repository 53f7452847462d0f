package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"insight_engine/internal/adapters/observability"
	"insight_engine/internal/domain"
)

const (
	DefaultBaseURL   = "https://oauth.reddit.com"
	DefaultTokenURL  = "https://www.reddit.com/api/v1/access_token"
	DefaultUserAgent = "InsightEngine/1.0"

	permalinkHost = "https://reddit.com"
)

type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	BaseURL      string
	TokenURL     string
	RPS          int
	Timeout      time.Duration
}

// Client searches subreddits with an app-only OAuth token.
type Client struct {
	cfg  Config
	base *url.URL
	hc   *http.Client
	rl   *rate.Limiter
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("reddit: invalid base url %q", cfg.BaseURL)
	}
	if _, err := url.Parse(cfg.TokenURL); err != nil {
		return nil, fmt.Errorf("reddit: invalid token url %q: %w", cfg.TokenURL, err)
	}

	c := &Client{cfg: cfg, base: base, rl: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS)}
	if c.Configured() {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		// token requests go through a client with the same timeout
		tctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
		c.hc = cc.Client(tctx)
		c.hc.Timeout = cfg.Timeout
	}
	return c, nil
}

// Configured needs no network access: credentials are either set or not.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

func (c *Client) Search(ctx context.Context, channel, query string, opts domain.SearchOptions) ([]domain.Post, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("restrict_sr", "1")
	q.Set("sort", orDefault(opts.Sort, "relevance"))
	q.Set("t", orDefault(opts.TimeWindow, "year"))
	q.Set("limit", strconv.Itoa(clampLimit(opts.Limit)))
	q.Set("raw_json", "1")

	var l listing
	if err := c.get(ctx, "search", "/r/"+url.PathEscape(channel)+"/search", q, &l); err != nil {
		return nil, fmt.Errorf("search r/%s: %w", channel, err)
	}
	posts := make([]domain.Post, 0, len(l.Data.Children))
	for _, ch := range l.Data.Children {
		if ch.Kind != kindPost {
			continue
		}
		posts = append(posts, ch.Data.post(channel))
	}
	return posts, nil
}

// Replies returns top-level comments on a post, best first.
func (c *Client) Replies(ctx context.Context, post domain.Post, limit int) ([]domain.Reply, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(clampLimit(limit)))
	q.Set("sort", "top")
	q.Set("depth", "1")
	q.Set("raw_json", "1")

	var ls []listing
	if err := c.get(ctx, "comments", "/comments/"+url.PathEscape(post.ID), q, &ls); err != nil {
		return nil, fmt.Errorf("comments %s: %w", post.ID, err)
	}
	if len(ls) < 2 {
		return nil, nil
	}
	var out []domain.Reply
	for _, ch := range ls[1].Data.Children {
		if ch.Kind != kindComment {
			continue // "more" stubs
		}
		out = append(out, ch.Data.reply())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// get performs a single rate-limited GET and decodes the JSON body into out.
// Failures are returned as-is; callers skip the query rather than retry it.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	if !c.Configured() {
		return domain.ErrUnauthorized
	}
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	u := *c.base
	u.Path += path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("reddit", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && (re.Response == nil || re.Response.StatusCode < 500) {
			return fmt.Errorf("token: %w", domain.ErrUnauthorized)
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("reddit", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s: %w", endpoint, err)
		}
		return nil
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusTooManyRequests:
		return fmt.Errorf("remote 429, retry after %s", retryAfter(resp))
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("remote %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return 25
	case n > 100:
		return 100
	}
	return n
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
// Reddit also reports X-Ratelimit-Reset in seconds when the quota is exhausted.
func retryAfter(resp *http.Response) time.Duration {
	for _, h := range []string{"Retry-After", "X-Ratelimit-Reset"} {
		v := strings.TrimSpace(resp.Header.Get(h))
		if v == "" {
			continue
		}
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
			return time.Duration(secs * float64(time.Second))
		}
		if t, err := http.ParseTime(v); err == nil {
			if d := time.Until(t); d > 0 {
				return d
			}
		}
	}
	return 0
}
