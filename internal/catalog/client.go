package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

// sharedFetchTimeout bounds a deduplicated fetch when no catalog timeout is
// configured, since no single caller can cancel it.
const sharedFetchTimeout = 30 * time.Second

// Client talks to the public product API.
type Client struct {
	baseURL     string
	http        *http.Client
	group       singleflight.Group
	flightLimit time.Duration
}

func NewClient(cfg *config.Catalog) *Client {
	flightLimit := cfg.Timeout
	if flightLimit <= 0 {
		flightLimit = sharedFetchTimeout
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		flightLimit: flightLimit,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
	}
}

// FetchAll returns every product the source lists.
func (c *Client) FetchAll(ctx context.Context) ([]models.Product, error) {

	var list models.ProductListResponse

	if err := c.getJSON(ctx, c.baseURL+"/products?limit=0", &list); err != nil {
		return nil, err
	}

	return list.Products, nil
}

// FetchByID fetches one product. Concurrent calls for the same id share a
// single upstream request. The shared request is detached from any one
// caller's cancellation; each caller still stops waiting when its own ctx ends.
func (c *Client) FetchByID(ctx context.Context, id int64) (*models.Product, error) {

	key := strconv.FormatInt(id, 10)

	ch := c.group.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.flightLimit)
		defer cancel()

		var product models.Product
		if err := c.getJSON(flightCtx, c.baseURL+"/products/"+key, &product); err != nil {
			return nil, err
		}
		return &product, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if res.Err != nil {
		return nil, res.Err
	}

	if res.Shared {
		middleware.LoggerFromContext(ctx).Debug("Product fetch shared", slog.Int64("productId", id))
	}

	product := *res.Val.(*models.Product)

	return &product, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {

	logger := middleware.LoggerFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return appErrors.InternalError("Failed to build catalog request").WithError(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("Catalog request failed", slog.String("url", url), slog.String("error", err.Error()))
		return appErrors.NetworkFetchError("Failed to reach the product catalog").WithError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return appErrors.NotFoundError("Product not found").WithDetail(url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		logger.Error("Catalog returned an error status", slog.String("url", url), slog.Int("status", resp.StatusCode))
		return appErrors.NetworkFetchError("Product catalog is unavailable").
			WithDetail(fmt.Sprintf("upstream status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		logger.Error("Catalog response is not valid JSON", slog.String("url", url), slog.String("error", err.Error()))
		return appErrors.NetworkFetchError("Product catalog returned an invalid response").WithError(err)
	}

	return nil
}
