// Package ravelry implements the catalog source collaborator: a rate-limited
// HTTP client for the paginated listing and detail endpoints.
package ravelry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/catalog"
)

// DefaultEndpoint is the catalog API base URL.
const DefaultEndpoint = "https://api.ravelry.com"

// patternLinkBase is the public library URL a pattern's permalink hangs off.
const patternLinkBase = "https://www.ravelry.com/patterns/library/"

const maxAttempts = 3

// Config carries the client's injected settings. Credentials come from
// configuration, never from process-wide state.
type Config struct {
	Endpoint string
	Username string
	Password string
	// RequestsPerSecond caps the call rate against the API. Zero means
	// the default of 4.
	RequestsPerSecond float64
	// PageParallelism bounds the concurrent page fetches during a full
	// catalog listing. Zero means the default of 4.
	PageParallelism int
}

// Client talks to the catalog API. It implements catalog.Source.
type Client struct {
	endpoint string
	username string
	password string
	httpc    *http.Client
	limiter  *rate.Limiter
	backoff  *Backoff
	parallel int
	log      *zap.SugaredLogger
}

// NewClient creates a catalog API client.
func NewClient(cfg Config, log *zap.SugaredLogger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 4
	}
	if cfg.PageParallelism <= 0 {
		cfg.PageParallelism = 4
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpc:    &http.Client{Timeout: 15 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		backoff:  DefaultBackoff(),
		parallel: cfg.PageParallelism,
		log:      log,
	}
}

var _ catalog.Source = (*Client)(nil)

// get performs one GET with rate limiting and bounded retries. Network
// errors, 429, and 5xx responses are retried with backoff; other non-200
// statuses fail immediately.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			c.log.Debugw("retrying request", "path", path, "attempt", attempt)
			select {
			case <-time.After(c.backoff.Next(attempt - 1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return errors.Wrapf(err, "building request for %s", path)
		}
		if c.username != "" {
			req.SetBasicAuth(c.username, c.password)
		}

		resp, err := c.httpc.Do(req)
		if err != nil {
			lastErr = errors.Wrapf(err, "GET %s", path)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			err = json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return errors.Wrapf(err, "decoding response from %s", path)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = errors.Errorf("GET %s: status %d", path, resp.StatusCode)
			continue
		default:
			resp.Body.Close()
			return errors.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
		}
	}
	return lastErr
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

// ListPatterns pages through the pattern search endpoint. Page 1 reveals the
// page count; the remaining pages are fetched with bounded parallelism since
// load order does not matter.
func (c *Client) ListPatterns(ctx context.Context) ([]*catalog.Pattern, error) {
	var first patternsPage
	if err := c.get(ctx, "/patterns/search.json", pageQuery(1), &first); err != nil {
		return nil, err
	}
	// A missing paginator still yields the one page we already have.
	pageCount := max(first.Paginator.PageCount, 1)
	pages := make([][]patternJSON, pageCount+1)
	pages[1] = first.Patterns

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for page := 2; page <= first.Paginator.PageCount; page++ {
		page := page
		g.Go(func() error {
			var pg patternsPage
			if err := c.get(gctx, "/patterns/search.json", pageQuery(page), &pg); err != nil {
				return err
			}
			pages[page] = pg.Patterns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*catalog.Pattern
	for _, pg := range pages {
		for _, pj := range pg {
			out = append(out, catalog.NewPattern(
				pj.ID, pj.Name, pj.Free, patternLinkBase+pj.Permalink, pj.Designer.Name))
		}
	}
	c.log.Infow("fetched patterns", "pages", first.Paginator.PageCount, "count", len(out))
	return out, nil
}

// ListShops pages through the shop search endpoint.
func (c *Client) ListShops(ctx context.Context) ([]*catalog.Shop, error) {
	var first shopsPage
	if err := c.get(ctx, "/shops/search.json", pageQuery(1), &first); err != nil {
		return nil, err
	}
	pages := make([][]shopJSON, max(first.Paginator.PageCount, 1)+1)
	pages[1] = first.Shops

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for page := 2; page <= first.Paginator.PageCount; page++ {
		page := page
		g.Go(func() error {
			var pg shopsPage
			if err := c.get(gctx, "/shops/search.json", pageQuery(page), &pg); err != nil {
				return err
			}
			pages[page] = pg.Shops
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*catalog.Shop
	for _, pg := range pages {
		for _, sj := range pg {
			out = append(out, catalog.NewShop(sj.ID, sj.Name, sj.Latitude, sj.Longitude, sj.City))
		}
	}
	c.log.Infow("fetched shops", "pages", first.Paginator.PageCount, "count", len(out))
	return out, nil
}

// ListYarns pages through the yarn search endpoint.
func (c *Client) ListYarns(ctx context.Context) ([]*catalog.Yarn, error) {
	var first yarnsPage
	if err := c.get(ctx, "/yarns/search.json", pageQuery(1), &first); err != nil {
		return nil, err
	}
	pages := make([][]yarnJSON, max(first.Paginator.PageCount, 1)+1)
	pages[1] = first.Yarns

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for page := 2; page <= first.Paginator.PageCount; page++ {
		page := page
		g.Go(func() error {
			var pg yarnsPage
			if err := c.get(gctx, "/yarns/search.json", pageQuery(page), &pg); err != nil {
				return err
			}
			pages[page] = pg.Yarns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*catalog.Yarn
	for _, pg := range pages {
		for _, yj := range pg {
			weight := ""
			if yj.YarnWeight != nil {
				weight = yj.YarnWeight.Name
			}
			out = append(out, catalog.NewYarn(yj.ID, yj.Name, yj.YarnCompanyName, weight))
		}
	}
	c.log.Infow("fetched yarns", "pages", first.Paginator.PageCount, "count", len(out))
	return out, nil
}

// PatternDetail fetches the supplementary fields for one pattern. Packs
// without a yarn id are dropped here so downstream code never sees null
// identifiers.
func (c *Client) PatternDetail(ctx context.Context, id int) (*catalog.PatternDetail, error) {
	var resp patternDetailResponse
	if err := c.get(ctx, fmt.Sprintf("/patterns/%d.json", id), nil, &resp); err != nil {
		return nil, err
	}

	det := &catalog.PatternDetail{
		Price:    resp.Pattern.Price,
		Currency: resp.Pattern.Currency,
	}
	for _, pack := range resp.Pattern.Packs {
		if pack.YarnID != nil {
			det.YarnIDs = append(det.YarnIDs, *pack.YarnID)
		}
	}
	for _, cat := range resp.Pattern.Categories {
		det.Categories = append(det.Categories, cat.Name)
	}
	return det, nil
}

// YarnFibers fetches a yarn's fiber breakdown. Percentages outside [0,100]
// are treated as absent, which is distinct from an explicit zero.
func (c *Client) YarnFibers(ctx context.Context, id int) ([]catalog.FiberShare, error) {
	var resp yarnDetailResponse
	if err := c.get(ctx, fmt.Sprintf("/yarns/%d.json", id), nil, &resp); err != nil {
		return nil, err
	}

	var shares []catalog.FiberShare
	for _, f := range resp.Yarn.Fibers {
		share := catalog.FiberShare{Fiber: f.FiberType.Name}
		if f.Percentage != nil {
			if p := int(*f.Percentage); p >= 0 && p <= 100 {
				share.Percent = &p
			}
		}
		shares = append(shares, share)
	}
	return shares, nil
}
