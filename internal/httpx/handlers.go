package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
	"github.com/vladislavdragonenkov/storefront/internal/service/products"
)

// Handler связывает HTTP-маршруты с сервисами магазина.
type Handler struct {
	Orders    *orders.Service
	Products  *products.Service
	Customers *customers.Service
	Logger    *log.Entry
}

// Register навешивает маршруты на роутер.
func (h *Handler) Register(r *chi.Mux) {
	r.Post("/customers", h.createCustomer)
	r.Post("/products", h.createProduct)
	r.Get("/products", h.findProductByName)
	r.Post("/products/stock/decrement", h.decrementStock)
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/customers/{id}/orders", h.listCustomerOrders)
}

type createCustomerReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	customer, err := h.Customers.CreateCustomer(customers.CreateCustomerInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResp(customer))
}

type createProductReq struct {
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

type productResp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceMinor int64     `json:"price_minor"`
	Quantity   int32     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	product, err := h.Products.CreateProduct(products.CreateProductInput{
		Name:       req.Name,
		PriceMinor: req.PriceMinor,
		Quantity:   req.Quantity,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResp(product))
}

// findProductByName отвечает 200 с null, если товара нет: пустой результат —
// не ошибка.
func (h *Handler) findProductByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name query parameter is required"})
		return
	}

	product, err := h.Products.FindByName(name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if product == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, toProductResp(*product))
}

type stockLineReq struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

func (h *Handler) decrementStock(w http.ResponseWriter, r *http.Request) {
	var req []stockLineReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	lines := make([]domain.ProductQuantity, 0, len(req))
	for _, line := range req {
		lines = append(lines, domain.ProductQuantity{ProductID: line.ProductID, Qty: line.Quantity})
	}

	updated, err := h.Products.DecrementStock(lines)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]productResp, 0, len(updated))
	for _, product := range updated {
		resp = append(resp, toProductResp(product))
	}
	writeJSON(w, http.StatusOK, resp)
}

type createOrderReq struct {
	CustomerID string         `json:"customer_id"`
	Products   []stockLineReq `json:"products"`
}

type orderItemResp struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	PriceMinor int64     `json:"price_minor"`
	Quantity   int32     `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type orderResp struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	TotalMinor int64           `json:"total_minor"`
	Items      []orderItemResp `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	lines := make([]domain.ProductQuantity, 0, len(req.Products))
	for _, line := range req.Products {
		lines = append(lines, domain.ProductQuantity{ProductID: line.ProductID, Qty: line.Quantity})
	}

	order, err := h.Orders.CreateOrder(orders.CreateOrderInput{
		CustomerID: req.CustomerID,
		Products:   lines,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResp(order))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.Orders.FindOrder(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResp(order))
}

func (h *Handler) listCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	list, err := h.Orders.ListByCustomer(id, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]orderResp, 0, len(list))
	for _, order := range list {
		resp = append(resp, toOrderResp(order))
	}
	writeJSON(w, http.StatusOK, resp)
}

func toCustomerResp(customer domain.Customer) customerResp {
	return customerResp{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}

func toProductResp(product domain.Product) productResp {
	return productResp{
		ID:         product.ID,
		Name:       product.Name,
		PriceMinor: product.PriceMinor,
		Quantity:   product.Quantity,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}

func toOrderResp(order domain.Order) orderResp {
	items := make([]orderItemResp, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResp{
			ID:         item.ID,
			ProductID:  item.ProductID,
			PriceMinor: item.PriceMinor,
			Quantity:   item.Qty,
			CreatedAt:  item.CreatedAt,
			UpdatedAt:  item.UpdatedAt,
		})
	}
	return orderResp{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		TotalMinor: order.TotalMinor(),
		Items:      items,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
