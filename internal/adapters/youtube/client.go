package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "vidqa/internal/platform/errors"
	"vidqa/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	apiBaseDefault       = "https://www.googleapis.com/youtube/v3"
	timedtextBaseDefault = "https://video.google.com/timedtext"
	defaultTimeout       = 15 * time.Second
	defaultUA            = "vidqa-ingest"
	defaultMaxRetry      = 4
	defaultRetryBase     = 500 * time.Millisecond
	defaultRPS           = 4
)

// Options configures the Client
type Options struct {
	// APIKey authenticates Data API calls, required for metadata and playlists
	APIKey string

	APIBase       string
	TimedtextBase string
	UserAgent     string
	Timeout       time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration

	// RPS throttles all outbound calls, zero uses the default
	RPS float64
}

// Client is a minimal YouTube client with throttling and bounded retries
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.APIBase == "" {
		o.APIBase = apiBaseDefault
	}
	if o.TimedtextBase == "" {
		o.TimedtextBase = timedtextBaseDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	rps := o.RPS
	if rps <= 0 {
		rps = defaultRPS
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		log:     *logger.Named("youtube"),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// get issues a throttled GET with bounded retries on transport errors,
// rate limiting, and transient server failures
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	attempts := 0
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "youtube new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "youtube request failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("youtube transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("youtube http response")

		switch resp.StatusCode {
		case http.StatusOK:
			return resp, nil
		case http.StatusNotFound:
			_ = drainAndClose(resp.Body)
			return nil, perr.NotFoundf("youtube resource not found")
		case http.StatusTooManyRequests, http.StatusForbidden:
			// quota errors surface as 403 on the Data API
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Unavailablef("youtube rate limited")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("sleep", back).Msg("youtube rate limited backing off")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Unavailablef("youtube transient server error")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("youtube transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUnknown, "youtube unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

// getJSON issues a get and decodes the body into v
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "youtube decode failed")
	}
	return nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	ceil := int64(30 * time.Second / time.Millisecond)
	if ms > ceil {
		ms = ceil
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<16))
	return rc.Close()
}
