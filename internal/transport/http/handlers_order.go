package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gateway/pkg/platform/httputil"
)

func (h *Handler) orderRoutes(r chi.Router) {
	r.Get("/order/notifications/{userTo}", h.notifications)
	r.Put("/order/notification/mark-as-read", h.markNotificationAsRead)
	r.Get("/order/seller/{sellerId}", h.sellerOrders)
	r.Get("/order/buyer/{buyerId}", h.buyerOrders)
	r.Post("/order/create", h.createOrder)
	r.Post("/order/create-payment-intent", h.createPaymentIntent)
	r.Put("/order/approve-order/{orderId}", h.approveOrder)
	r.Put("/order/deliver-order/{orderId}", h.deliverOrder)
	r.Put("/order/cancel/{orderId}", h.cancelOrder)
	r.Get("/order/{orderId}", h.orderByID)
}

func (h *Handler) orderByID(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Order.ByID(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) sellerOrders(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Order.SellerOrders(r.Context(), chi.URLParam(r, "sellerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) buyerOrders(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Order.BuyerOrders(r.Context(), chi.URLParam(r, "buyerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Order.Create)
}

func (h *Handler) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Order.CreatePaymentIntent)
}

func (h *Handler) approveOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Order.Approve(r.Context(), chi.URLParam(r, "orderId"), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) deliverOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Order.Deliver(r.Context(), chi.URLParam(r, "orderId"), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Order.Cancel(r.Context(), chi.URLParam(r, "orderId"), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Order.Notifications(r.Context(), chi.URLParam(r, "userTo"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) markNotificationAsRead(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Order.MarkNotificationAsRead)
}
