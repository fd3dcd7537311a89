package jikan

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/varoOP/animetop/internal/domain"
)

const (
	DefaultBaseURL   = "https://api.jikan.moe/v4"
	DefaultTimeout   = 10 * time.Second
	DefaultDelay     = time.Second
	DefaultUserAgent = "animetop/dev"

	topAnimePath = "/top/anime"
)

type Service interface {
	// FetchTop fetches ceil(limit/PerPage) pages, stopping early on an empty page
	// or a failed request.
	FetchTop(ctx context.Context, limit int) (*Result, error)
	// FetchAll fetches pages until one comes back empty or a request fails.
	FetchAll(ctx context.Context) (*Result, error)
}

type Options struct {
	BaseURL   string
	UserAgent string
	PerPage   int
	Delay     time.Duration
	Timeout   time.Duration
}

type service struct {
	log    zerolog.Logger
	client *resty.Client
	opts   Options
}

func NewService(log zerolog.Logger, opts Options) (Service, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PerPage == 0 {
		opts.PerPage = domain.MaxPerPage
	}
	if opts.PerPage < 1 || opts.PerPage > domain.MaxPerPage {
		return nil, errors.Errorf("per page must be between 1 and %d, got %d", domain.MaxPerPage, opts.PerPage)
	}
	if opts.Delay < 0 {
		return nil, errors.Errorf("delay must not be negative, got %s", opts.Delay)
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &service{
		log:    log.With().Str("module", "jikan").Logger(),
		client: client,
		opts:   opts,
	}, nil
}

func (s *service) FetchTop(ctx context.Context, limit int) (*Result, error) {
	if limit < 0 {
		return nil, errors.Errorf("limit must not be negative, got %d", limit)
	}

	totalPages := (limit + s.opts.PerPage - 1) / s.opts.PerPage
	s.log.Info().Int("limit", limit).Int("per_page", s.opts.PerPage).Int("pages", totalPages).Msg("Fetching top anime..")

	res := &Result{Stop: StopLimitReached}
	limiter := s.newLimiter()

	for page := 1; page <= totalPages; page++ {
		p, err := s.fetchPage(ctx, limiter, page, s.opts.PerPage)
		res.Pages++
		if err != nil {
			s.log.Warn().Err(err).Int("page", page).Msg("Request failed, stopping")
			res.Stop, res.Err = StopRequestError, err
			break
		}

		if len(p.Data) == 0 {
			s.log.Info().Int("page", page).Msg("No data returned, stopping")
			res.Stop = StopEmptyPage
			break
		}

		res.Records = append(res.Records, p.Data...)
		s.log.Debug().Int("page", page).Int("total_pages", totalPages).Int("total", len(res.Records)).Msg("Fetched page")
	}

	if len(res.Records) < limit {
		s.log.Debug().Int("limit", limit).Int("fetched", len(res.Records)).Msg("Fetched fewer records than requested")
	}

	s.log.Info().Int("pages", res.Pages).Int("records", len(res.Records)).Str("stop", string(res.Stop)).Msg("Fetch complete")
	return res, nil
}

func (s *service) FetchAll(ctx context.Context) (*Result, error) {
	s.log.Info().Msg("Fetching all top anime..")

	res := &Result{}
	limiter := s.newLimiter()

	for page := 1; ; page++ {
		p, err := s.fetchPage(ctx, limiter, page, 0)
		res.Pages++
		if err != nil {
			s.log.Warn().Err(err).Int("page", page).Msg("Stopped on request error")
			res.Stop, res.Err = StopRequestError, err
			break
		}

		if len(p.Data) == 0 {
			s.log.Info().Int("page", page).Msg("No more data")
			res.Stop = StopEmptyPage
			break
		}

		res.Records = append(res.Records, p.Data...)
		s.log.Info().Int("page", page).Int("total", len(res.Records)).Msg("Fetched page")
	}

	s.log.Info().Int("pages", res.Pages).Int("records", len(res.Records)).Str("stop", string(res.Stop)).Msg("Fetch complete")
	return res, nil
}

// newLimiter hands out one request slot per delay; the first slot is free.
func (s *service) newLimiter() *rate.Limiter {
	if s.opts.Delay == 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(s.opts.Delay), 1)
}

// fetchPage requests a single page. perPage of zero leaves the limit to the API.
func (s *service) fetchPage(ctx context.Context, limiter *rate.Limiter, page, perPage int) (*Page, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page))
	if perPage > 0 {
		req.SetQueryParam("limit", strconv.Itoa(perPage))
	}

	s.log.Trace().Int("page", page).Msg("requesting")

	resp, err := req.Get(topAnimePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch")
	}

	if resp.IsError() {
		return nil, errors.Errorf("unexpected status code %d from %s", resp.StatusCode(), resp.Request.URL)
	}

	p := &Page{}
	if err := json.Unmarshal(resp.Body(), p); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}

	return p, nil
}
