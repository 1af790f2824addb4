// Package promos scrapes the third-party listing page for currently active
// promotion codes.
package promos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"idle-redeemer/internal/config"
	"idle-redeemer/internal/constants"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
	"golang.org/x/net/html"
	"golang.org/x/sync/singleflight"
)

// Source fetches the listing page and extracts codes from <input> elements
// whose id attribute starts with the configured prefix; the element's value
// attribute is the code.
type Source struct {
	url       string
	prefix    string
	userAgent string
	cache     *Cache
	http      *fasthttp.Client
	group     singleflight.Group
	logger    zerolog.Logger
}

func NewSource(cfg *config.Config, cache *Cache, logger zerolog.Logger) *Source {
	return &Source{
		url:       cfg.CodesURL,
		prefix:    cfg.CodePrefix,
		userAgent: cfg.UserAgent,
		cache:     cache,
		http: &fasthttp.Client{
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

// Latest returns the active codes, served from cache within its TTL. On a
// miss exactly one fetch happens even if several callers race here.
func (s *Source) Latest(ctx context.Context) ([]string, error) {
	if codes, ok := s.cache.Get(); ok {
		s.logger.Debug().Int("count", len(codes)).Msg("serving codes from cache")
		return codes, nil
	}

	v, err, _ := s.group.Do("codes", func() (any, error) {
		if codes, ok := s.cache.Get(); ok {
			return codes, nil
		}
		codes, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Put(codes)
		return codes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (s *Source) fetch(ctx context.Context) ([]string, error) {
	s.logger.Info().Str("url", s.url).Msg("scraping promotion codes")

	backoff := retry.WithMaxRetries(constants.MaxTransportRetries,
		retry.NewFibonacci(constants.TransportRetryBase))

	var body []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		b, err := s.get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("codes page fetch failed")
			return retry.RetryableError(err)
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch codes page: %w", err)
	}

	codes, err := extractCodes(body, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to parse codes page: %w", err)
	}

	s.logger.Info().Int("count", len(codes)).Msg("scraped promotion codes")
	return codes, nil
}

func (s *Source) get(ctx context.Context) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(s.userAgent)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := s.http.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := s.http.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("codes page returned status %d", resp.StatusCode())
	}
	return append([]byte(nil), resp.Body()...), nil
}

func extractCodes(body []byte, prefix string) ([]string, error) {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))

	var codes []string
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return codes, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "input" {
				continue
			}
			if !strings.HasPrefix(attr(token, "id"), prefix) {
				continue
			}
			if code := attr(token, "value"); code != "" {
				codes = append(codes, code)
			}
		}
	}
}

func attr(token html.Token, name string) string {
	for _, a := range token.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
