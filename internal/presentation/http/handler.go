package httppresentation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	appInventory "github.com/oaktree-io/storefront/internal/application/inventory"
	appOrder "github.com/oaktree-io/storefront/internal/application/order"
	"github.com/oaktree-io/storefront/internal/domain/cart"
	"github.com/oaktree-io/storefront/internal/domain/catalog"
	domainOrder "github.com/oaktree-io/storefront/internal/domain/order"
	domainPayment "github.com/oaktree-io/storefront/internal/domain/payment"
	"github.com/oaktree-io/storefront/internal/observability"
)

const componentHTTPHandler = "http_server"

type Handler struct {
	orders    *appOrder.Service
	inventory *appInventory.Service
	catalog   *catalog.Catalog
	ids       appOrder.IDGenerator
	log       observability.Logger
	tel       observability.Observability
}

func NewHandler(
	orders *appOrder.Service,
	inventory *appInventory.Service,
	cat *catalog.Catalog,
	ids appOrder.IDGenerator,
	logger observability.Logger,
	tel observability.Observability,
) *Handler {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Handler{
		orders:    orders,
		inventory: inventory,
		catalog:   cat,
		ids:       ids,
		log:       logger.With(observability.F("component", componentHTTPHandler)),
		tel:       tel,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)

	// Trace → request logger → HTTP metrics → access log → handler
	r.Use(h.withTrace)
	r.Use(h.withRequestLogger)
	r.Use(h.withHTTPMetrics)
	r.Use(h.withAccessLog)

	r.Post("/orders", h.handleCreateOrder)
	r.Get("/orders/{id}", h.handleGetOrder)
	r.Post("/orders/{id}/pay", h.handlePayOrder)
	r.Post("/orders/{id}/ship", h.handleShipOrder)
	r.Post("/orders/{id}/complete", h.handleCompleteOrder)
	r.Post("/orders/{id}/cancel", h.handleCancelOrder)
	r.Get("/stock/{sku}", h.handleStock)
	r.Get("/healthz", h.handleHealth)

	return r
}

type orderLine struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID string      `json:"customer_id"`
	Items      []orderLine `json:"items"`
}

type orderResponse struct {
	OrderID string             `json:"order_id"`
	Status  domainOrder.Status `json:"status"`
	Total   string             `json:"total"`
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	return orderResponse{
		OrderID: o.ID,
		Status:  o.Status,
		Total:   o.Total.String(),
	}
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.CustomerID == "" || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("customer_id and items are required"))
		return
	}

	crt := cart.New(h.ids.NewID(), req.CustomerID)
	for _, line := range req.Items {
		product, err := h.catalog.BySKU(line.SKU)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := crt.AddItem(product, line.Quantity); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	ord, err := h.orders.CreateOrderFromCart(r.Context(), crt)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(ord))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	ord, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(ord))
}

type payOrderRequest struct {
	Type    domainPayment.Type `json:"type"`
	Details map[string]string  `json:"details"`
}

func (h *Handler) handlePayOrder(w http.ResponseWriter, r *http.Request) {
	var req payOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Type == "" {
		req.Type = domainPayment.TypeCard
	}

	ord, err := h.orders.PayOrder(r.Context(), chi.URLParam(r, "id"), req.Type, req.Details)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(ord))
}

func (h *Handler) handleShipOrder(w http.ResponseWriter, r *http.Request) {
	ord, err := h.orders.ShipOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := struct {
		orderResponse
		TrackingNumber string `json:"tracking_number"`
	}{toOrderResponse(ord), ord.Shipment.TrackingNumber}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	ord, err := h.orders.CompleteOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(ord))
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	ord, err := h.orders.CancelOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(ord))
}

func (h *Handler) handleStock(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	writeJSON(w, http.StatusOK, map[string]any{
		"sku":   sku,
		"total": h.inventory.TotalStock(sku),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainOrder.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, appOrder.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrNilProduct):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, appOrder.ErrPaymentDeclined):
		writeError(w, http.StatusPaymentRequired, err)
	case errors.Is(err, appOrder.ErrInsufficientStock),
		errors.Is(err, appOrder.ErrNotPaid),
		errors.Is(err, appOrder.ErrCancelNotAllowed),
		errors.Is(err, domainOrder.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
