package transport

import (
	"errors"
	"net/http"

	"handmade-shop/internal/cart"
	"handmade-shop/internal/middleware"
	"handmade-shop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddToCartRequest represents the add-to-cart payload
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,max=100"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=99"`
}

// CartResponse represents a session cart
type CartResponse struct {
	SessionID string      `json:"sessionId"`
	Lines     []cart.Line `json:"lines"`
	ItemCount int         `json:"itemCount"`
	Subtotal  float64     `json:"subtotal"`
}

// CartHandler handles HTTP requests for session carts
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/cart", h.GetCart)
	r.Post("/api/cart/items", h.AddItem)
}

// GetCart returns the cart for the caller's session
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := h.session(w, r)

	c, err := h.cartService.Get(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.String("session_id", sessionID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(sessionID, c))
}

// AddItem accumulates a product into the caller's cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sessionID := h.session(w, r)

	c, err := h.cartService.Add(r.Context(), sessionID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product added to cart",
		zap.String("session_id", sessionID),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(sessionID, c))
}

// session returns the caller's cart session id, minting one when the header
// is missing or malformed. The id is echoed in the response header.
func (h *CartHandler) session(w http.ResponseWriter, r *http.Request) string {
	sessionID := r.Header.Get(middleware.CartSessionHeader)
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.New().String()
	}
	w.Header().Set(middleware.CartSessionHeader, sessionID)
	return sessionID
}

func toCartResponse(sessionID string, c cart.Cart) CartResponse {
	return CartResponse{
		SessionID: sessionID,
		Lines:     c.Lines(),
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
	}
}
