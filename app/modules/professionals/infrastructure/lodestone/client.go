package lodestone

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://na.finalfantasyxiv.com"
	DefaultCacheTTL     = 5 * time.Minute
	DefaultCacheSize    = 100
	DefaultRankingPages = 5
)

var (
	membersRequest = request{
		endpoint: "fc_members",
		subject:  "Free Company members",
	}
	gcRankingRequest = request{
		endpoint: "gc_rankings",
		subject:  "Grand Company rankings",
	}
	fcSearchRequest = request{
		endpoint: "fc_search",
		subject:  "Free Companies",
	}
	fcRankingRequest = request{
		endpoint: "fc_rankings",
		subject:  "Free Company rankings",
	}
)

// Config controls how the scraper talks to the Lodestone.
type Config struct {
	BaseURL           string
	RequestsPerSecond float64
	Burst             int
	CacheTTL          time.Duration
	CacheSize         int
	Timeout           time.Duration
	RankingPages      int
	HTTPClient        *http.Client
}

// Client scrapes Free Company and ranking pages from the Lodestone.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        *responseCache
	rankingPages int
	logger       *slog.Logger
	metrics      *Metrics
	tracer       trace.Tracer
}

// NewClient creates a Lodestone scraper.
func NewClient(cfg Config, logger *slog.Logger, metrics *Metrics, tracer trace.Tracer) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("lodestone")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RankingPages <= 0 {
		cfg.RankingPages = DefaultRankingPages
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:      cfg.BaseURL,
		httpClient:   httpClient,
		limiter:      rate.NewLimiter(limit, burst),
		cache:        newResponseCache(cfg.CacheTTL, cfg.CacheSize, cfg.Timeout),
		rankingPages: cfg.RankingPages,
		logger:       logger.With(slog.String("component", "lodestone")),
		metrics:      metrics,
		tracer:       tracer,
	}
}

// FetchMembership returns every member of the scope's Free Company.
func (c *Client) FetchMembership(ctx context.Context, scope professionalsdomain.Scope) ([]professionalsdomain.MembershipRecord, error) {
	return c.FreeCompanyMembers(ctx, scope.FreeCompanyID)
}

// FetchLeaderboard returns the weekly Grand Company ranking of the scope's world.
func (c *Client) FetchLeaderboard(ctx context.Context, scope professionalsdomain.Scope) ([]professionalsdomain.LeaderboardRecord, error) {
	return c.GrandCompanyRankings(ctx, scope.World)
}

// FreeCompanyMembers walks every member page of a Free Company.
func (c *Client) FreeCompanyMembers(ctx context.Context, fcID string) ([]professionalsdomain.MembershipRecord, error) {
	onHit := func() { c.metrics.cacheHit(membersRequest.endpoint) }
	return cached(ctx, c.cache, "members:"+fcID, onHit, func(ctx context.Context) ([]professionalsdomain.MembershipRecord, error) {
		req := membersRequest
		req.notFound = fmt.Sprintf("Free Company %s could not be found", fcID)

		path := "/lodestone/freecompany/" + url.PathEscape(fcID) + "/member"

		doc, err := c.getPage(ctx, req, path, nil)
		if err != nil {
			return nil, err
		}
		pages, err := parsePageCount(doc)
		if err != nil {
			return nil, err
		}
		members, err := parseMembers(doc)
		if err != nil {
			return nil, err
		}

		for page := 2; page <= pages; page++ {
			doc, err := c.getPage(ctx, req, path, url.Values{"page": {strconv.Itoa(page)}})
			if err != nil {
				return nil, err
			}
			more, err := parseMembers(doc)
			if err != nil {
				return nil, err
			}
			members = append(members, more...)
		}

		c.logger.InfoContext(ctx, "Fetched Free Company members",
			slog.String("free_company_id", fcID),
			slog.Int("pages", pages),
			slog.Int("members", len(members)),
		)
		return members, nil
	})
}

// GrandCompanyRankings reads every weekly ranking page for a world. Records
// are returned as published; one character may appear more than once.
func (c *Client) GrandCompanyRankings(ctx context.Context, world string) ([]professionalsdomain.LeaderboardRecord, error) {
	onHit := func() { c.metrics.cacheHit(gcRankingRequest.endpoint) }
	return cached(ctx, c.cache, "gc:"+world, onHit, func(ctx context.Context) ([]professionalsdomain.LeaderboardRecord, error) {
		req := gcRankingRequest
		req.notFound = fmt.Sprintf("could not find Grand Company rankings for %s", world)

		var records []professionalsdomain.LeaderboardRecord
		for page := 1; page <= c.rankingPages; page++ {
			doc, err := c.getPage(ctx, req, "/lodestone/ranking/gc/weekly", url.Values{
				"page":      {strconv.Itoa(page)},
				"worldname": {world},
			})
			if err != nil {
				return nil, err
			}
			rows, err := parseGrandCompanyRankings(doc)
			if err != nil {
				return nil, err
			}
			records = append(records, rows...)
		}

		c.logger.InfoContext(ctx, "Fetched Grand Company rankings",
			slog.String("world", world),
			slog.Int("records", len(records)),
		)
		return records, nil
	})
}

// SearchFreeCompanies lists the Free Companies of a world.
func (c *Client) SearchFreeCompanies(ctx context.Context, world string) ([]professionalsdomain.FreeCompany, error) {
	onHit := func() { c.metrics.cacheHit(fcSearchRequest.endpoint) }
	return cached(ctx, c.cache, "search:"+world, onHit, func(ctx context.Context) ([]professionalsdomain.FreeCompany, error) {
		req := fcSearchRequest
		req.notFound = fmt.Sprintf("could not find Free Companies for %s", world)

		doc, err := c.getPage(ctx, req, "/lodestone/freecompany", url.Values{"worldname": {world}})
		if err != nil {
			return nil, err
		}
		return parseFreeCompanies(doc)
	})
}

// FreeCompanyRankings reads the weekly top 100 Free Companies of a data center.
func (c *Client) FreeCompanyRankings(ctx context.Context, dataCenter string) ([]professionalsdomain.FreeCompanyRanking, error) {
	onHit := func() { c.metrics.cacheHit(fcRankingRequest.endpoint) }
	return cached(ctx, c.cache, "fcrank:"+dataCenter, onHit, func(ctx context.Context) ([]professionalsdomain.FreeCompanyRanking, error) {
		req := fcRankingRequest
		req.notFound = fmt.Sprintf("could not find Free Company rankings for data center %s", dataCenter)

		doc, err := c.getPage(ctx, req, "/lodestone/ranking/fc/weekly", url.Values{
			"filter":  {"1"},
			"dcgroup": {dataCenter},
			"dcGroup": {dataCenter},
		})
		if err != nil {
			return nil, err
		}
		return parseFreeCompanyRankings(doc)
	})
}
