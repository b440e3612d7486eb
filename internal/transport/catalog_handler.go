package transport

import (
	"errors"
	"net/http"

	"handmade-shop/internal/catalog"
	"handmade-shop/internal/domain"
	"handmade-shop/internal/middleware"
	"handmade-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShopParams represents the shop page query string
type ShopParams struct {
	Category string `query:"category" validate:"max=100"`
	Search   string `query:"search" validate:"max=200"`
	Sort     string `query:"sort" validate:"omitempty,oneof=featured price-low price-high newest"`
	Page     int    `query:"page" validate:"gte=0"`
	PageSize int    `query:"pageSize" validate:"gte=0,lte=100"`
}

// BlogParams represents the blog page query string
type BlogParams struct {
	Category string `query:"category" validate:"max=100"`
	Search   string `query:"search" validate:"max=200"`
}

// CatalogHandler handles HTTP requests for catalog records and page views
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the raw record routes and the page view routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	// Raw record contract shared with the remote source
	r.Get("/api/categories", h.ListCategories)
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/blog", h.ListBlogPosts)

	// Page views
	r.Get("/api/views/home", h.Home)
	r.Get("/api/views/shop", h.Shop)
	r.Get("/api/views/products/{id}", h.ProductDetail)
	r.Get("/api/views/blog", h.Blog)
}

// ListCategories returns the raw category records
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.Categories(r.Context())
	if err != nil {
		h.respondWithCatalogError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// ListProducts returns the raw product records
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.Products(r.Context())
	if err != nil {
		h.respondWithCatalogError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ListBlogPosts returns the raw blog post records
func (h *CatalogHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.catalogService.BlogPosts(r.Context())
	if err != nil {
		h.respondWithCatalogError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, posts)
}

// Home returns the landing page sections
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalogService.Home(r.Context())
	if err != nil {
		h.respondWithCatalogError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, page)
}

// Shop returns the filtered, sorted and paginated product grid
func (h *CatalogHandler) Shop(w http.ResponseWriter, r *http.Request) {
	var params ShopParams
	if err := middleware.DecodeQueryAndValidate(r, &params); err != nil {
		h.respondWithQueryError(w, err)
		return
	}

	page, err := h.catalogService.Shop(r.Context(), service.ShopRequest{
		Category: params.Category,
		Search:   params.Search,
		Sort:     catalog.ParseSortKey(params.Sort),
		Page:     params.Page,
		PageSize: params.PageSize,
	})
	if err != nil {
		h.respondWithCatalogError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, page)
}

// ProductDetail returns a product and its related items
func (h *CatalogHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.catalogService.ProductDetail(r.Context(), id)
	if err != nil {
		h.respondWithCatalogError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// Blog returns the filtered posts with the featured slot
func (h *CatalogHandler) Blog(w http.ResponseWriter, r *http.Request) {
	var params BlogParams
	if err := middleware.DecodeQueryAndValidate(r, &params); err != nil {
		h.respondWithQueryError(w, err)
		return
	}

	result, err := h.catalogService.Blog(r.Context(), catalog.BlogQuery{
		Category: params.Category,
		Search:   params.Search,
	})
	if err != nil {
		h.respondWithCatalogError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

func (h *CatalogHandler) respondWithQueryError(w http.ResponseWriter, err error) {
	h.logger.Debug("Query validation failed", zap.Error(err))

	if fieldErrors := middleware.FormatValidationErrors(err); len(fieldErrors) > 0 {
		middleware.RespondWithValidationErrors(w, fieldErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid query")
}

func (h *CatalogHandler) respondWithCatalogError(w http.ResponseWriter, err error) {
	respondWithServiceError(w, h.logger, err)
}

// respondWithServiceError maps service errors to HTTP responses
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, domain.ErrSourceUnavailable), errors.Is(err, domain.ErrDecode):
		logger.Warn("Catalog unavailable", zap.Error(err))
		middleware.RespondWithError(w, http.StatusServiceUnavailable, "catalog unavailable")
	default:
		logger.Error("Catalog request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
