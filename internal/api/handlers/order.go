package handlers

import (
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/orders"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService orders.OrderService
}

func NewOrderHandler(orderService orders.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		summaries, err := h.orderService.ListOrders(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summaries)

	}
}

func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		index, err := strconv.Atoi(r.PathValue("index"))
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid order index").WithDetail(r.PathValue("index")))
			return
		}

		removed, err := h.orderService.CancelOrder(r.Context(), index)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, removed)

	}
}
