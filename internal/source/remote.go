package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"handmade-shop/internal/domain"

	"go.uber.org/zap"
)

const (
	categoriesPath = "/categories"
	productsPath   = "/products"
	blogPath       = "/blog"

	// maxBodyBytes bounds a single collection payload
	maxBodyBytes = 8 << 20
)

type remoteSource struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewRemoteSource returns a source that reads JSON arrays from a live endpoint
func NewRemoteSource(baseURL string, client *http.Client, logger *zap.Logger) Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &remoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

func (s *remoteSource) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	return fetchArray[domain.Category](ctx, s, categoriesPath)
}

func (s *remoteSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return fetchArray[domain.Product](ctx, s, productsPath)
}

func (s *remoteSource) FetchBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	return fetchArray[domain.BlogPost](ctx, s, blogPath)
}

func fetchArray[T any](ctx context.Context, s *remoteSource, path string) ([]T, error) {
	url := s.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", domain.ErrSourceUnavailable, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Record source request failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrSourceUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		s.logger.Warn("Record source returned non-success status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: GET %s: status %d", domain.ErrSourceUnavailable, path, resp.StatusCode)
	}

	var items []T
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&items); err != nil {
		s.logger.Warn("Record source payload is malformed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrDecode, path, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: GET %s: expected a JSON array", domain.ErrDecode, path)
	}

	return items, nil
}
