// Package api implements the client for the game server's HTTP API.
//
// Every command is a GET against {base}/post.php. Two failure modes are
// self-healing and handled inside Call: the server can ask us to switch to
// a different play server mid-call, and it can reject a stale instance id,
// in which case we refresh it via getuserdetails and retry. Anything else
// surfaces as a FailureError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"idle-redeemer/internal/config"
	"idle-redeemer/internal/constants"
	"idle-redeemer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

// FailureOutdatedInstance is the one failure_reason the client knows how to
// recover from.
const FailureOutdatedInstance = "Outdated instance id"

var ErrTooManyRedirects = errors.New("too many play server redirects")

// FailureError is an API-level failure the client has no recovery for. It
// carries the raw payload so callers can log or record it.
type FailureError struct {
	Command string
	Reason  string
	Payload []byte
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("unhandled API failure for %s: %s (payload %s)", e.Command, e.Reason, e.Payload)
}

// Payload is the decoded envelope of a game API response. Raw retains the
// full body for the outcome interpreter.
type Payload struct {
	Success          bool
	FailureReason    string
	SwitchPlayServer string
	Raw              []byte
}

// InstanceStore persists a refreshed instance id back onto a platform.
type InstanceStore interface {
	UpdateInstanceID(ctx context.Context, id, instanceID string) error
}

// Factory builds per-platform clients sharing one fasthttp client.
type Factory struct {
	baseURL   string
	userAgent string
	http      *fasthttp.Client
	store     InstanceStore
	logger    zerolog.Logger
}

func NewFactory(cfg *config.Config, store InstanceStore, logger zerolog.Logger) *Factory {
	return &Factory{
		baseURL:   strings.TrimSuffix(cfg.APIBaseURL, "/"),
		userAgent: cfg.UserAgent,
		http: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		store:  store,
		logger: logger,
	}
}

func (f *Factory) ForPlatform(platform *domain.Platform) *Client {
	return &Client{
		baseURL:   f.baseURL,
		userAgent: f.userAgent,
		http:      f.http,
		store:     f.store,
		platform:  platform,
		logger:    f.logger.With().Str("platform", platform.Key).Logger(),
	}
}

// Client issues commands on behalf of one platform. It is not safe for
// concurrent use: a redirect rewrites baseURL and a stale-session refresh
// rewrites the platform's instance id.
type Client struct {
	baseURL   string
	userAgent string
	http      *fasthttp.Client
	store     InstanceStore
	platform  *domain.Platform
	logger    zerolog.Logger

	// set while a getuserdetails refresh is in flight, so a stale instance
	// id reported by the refresh itself cannot ping-pong forever
	refreshing bool
}

// BaseURL returns the play server the client currently targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call issues command with params and resolves the server's self-healing
// responses: switch_play_server redirects are followed (bounded by
// MaxRedirectHops) and a single "Outdated instance id" rejection triggers a
// getuserdetails refresh before the command is re-issued with the new
// instance id. Any other failure_reason is returned as a *FailureError.
func (c *Client) Call(ctx context.Context, command string, params *Params) (*Payload, error) {
	hops := 0
	refreshed := false

	for {
		payload, err := c.do(ctx, command, params)
		if err != nil {
			return nil, err
		}

		if payload.Success {
			if payload.SwitchPlayServer == "" {
				return payload, nil
			}
			hops++
			if hops > constants.MaxRedirectHops {
				return nil, fmt.Errorf("%w (%d hops) for %s", ErrTooManyRedirects, hops-1, command)
			}
			c.logger.Info().
				Str("command", command).
				Str("play_server", payload.SwitchPlayServer).
				Msg("switching play server")
			c.baseURL = strings.TrimSuffix(payload.SwitchPlayServer, "/")
			continue
		}

		if payload.FailureReason == FailureOutdatedInstance && !refreshed && !c.refreshing {
			refreshed = true
			c.logger.Info().Str("command", command).Msg("instance id outdated, refreshing")
			if err := c.refreshInstanceID(ctx); err != nil {
				return nil, fmt.Errorf("instance id refresh failed: %w", err)
			}
			params.Set("instance_id", c.platform.InstanceID)
			continue
		}

		return nil, &FailureError{Command: command, Reason: payload.FailureReason, Payload: payload.Raw}
	}
}

func (c *Client) refreshInstanceID(ctx context.Context) error {
	c.refreshing = true
	defer func() { c.refreshing = false }()

	params := BaseParams().
		Set("include_free_play_objectives", false).
		Set("instance_key", 1).
		Set("user_id", c.platform.UserID).
		Set("hash", c.platform.Hash)

	payload, err := c.Call(ctx, "getuserdetails", params)
	if err != nil {
		return err
	}

	instanceID, err := extractInstanceID(payload.Raw)
	if err != nil {
		return err
	}

	if err := c.store.UpdateInstanceID(ctx, c.platform.ID, instanceID); err != nil {
		return fmt.Errorf("failed to persist instance id: %w", err)
	}
	c.platform.InstanceID = instanceID

	c.logger.Info().Str("instance_id", instanceID).Msg("instance id refreshed")
	return nil
}

func extractInstanceID(raw []byte) (string, error) {
	var details struct {
		Details struct {
			InstanceID any `json:"instance_id"`
		} `json:"details"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&details); err != nil {
		return "", fmt.Errorf("failed to decode user details: %w", err)
	}

	switch v := details.Details.InstanceID.(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case json.Number:
		return v.String(), nil
	}
	return "", fmt.Errorf("user details response carried no instance id")
}

// do performs one HTTP round trip with bounded retries on transport-level
// failures. API-level failures (success=false) are not its business.
func (c *Client) do(ctx context.Context, command string, params *Params) (*Payload, error) {
	url := fmt.Sprintf("%s/post.php?call=%s&%s", c.baseURL, command, params.Encode())
	c.logger.Debug().Str("url", url).Msg("calling game api")

	backoff := retry.WithMaxRetries(constants.MaxTransportRetries,
		retry.NewFibonacci(constants.TransportRetryBase))

	var payload *Payload
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		p, status, err := c.fetch(ctx, url)
		if err != nil {
			c.logger.Warn().Err(err).Str("command", command).Msg("transport failure")
			return retry.RetryableError(err)
		}
		if status != fasthttp.StatusOK {
			statusErr := fmt.Errorf("game api returned status %d", status)
			if status >= fasthttp.StatusInternalServerError {
				c.logger.Warn().Int("status", status).Str("command", command).Msg("server error")
				return retry.RetryableError(statusErr)
			}
			return statusErr
		}
		payload = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", command, err)
	}
	return payload, nil
}

func (c *Client) fetch(ctx context.Context, url string) (*Payload, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(c.userAgent)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.http.DoDeadline(req, resp, deadline); err != nil {
			return nil, 0, err
		}
	} else {
		if err := c.http.Do(req, resp); err != nil {
			return nil, 0, err
		}
	}

	status := resp.StatusCode()
	if status != fasthttp.StatusOK {
		return nil, status, nil
	}

	body := append([]byte(nil), resp.Body()...)
	var envelope struct {
		Success          bool   `json:"success"`
		FailureReason    string `json:"failure_reason"`
		SwitchPlayServer string `json:"switch_play_server"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, status, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Payload{
		Success:          envelope.Success,
		FailureReason:    envelope.FailureReason,
		SwitchPlayServer: envelope.SwitchPlayServer,
		Raw:              body,
	}, status, nil
}
