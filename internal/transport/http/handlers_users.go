package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gateway/pkg/platform/httputil"
)

func (h *Handler) buyerRoutes(r chi.Router) {
	r.Get("/buyer/email", h.buyerByEmail)
	r.Get("/buyer/username", h.currentBuyer)
	r.Get("/buyer/{username}", h.buyerByUsername)
}

func (h *Handler) buyerByEmail(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Buyer.ByEmail(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) currentBuyer(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Buyer.CurrentByUsername(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) buyerByUsername(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Buyer.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) sellerRoutes(r chi.Router) {
	r.Get("/seller/id/{sellerId}", h.sellerByID)
	r.Get("/seller/username/{username}", h.sellerByUsername)
	r.Get("/seller/random/{size}", h.randomSellers)
	r.Post("/seller/create", h.createSeller)
	r.Put("/seller/seed/{count}", h.sellerSeed)
	r.Put("/seller/{sellerId}", h.updateSeller)
}

func (h *Handler) sellerByID(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Seller.ByID(r.Context(), chi.URLParam(r, "sellerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) sellerByUsername(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Seller.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) randomSellers(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Seller.Random(r.Context(), chi.URLParam(r, "size"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) createSeller(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Seller.Create)
}

func (h *Handler) updateSeller(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Seller.Update(r.Context(), chi.URLParam(r, "sellerId"), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) sellerSeed(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Seller.Seed(r.Context(), chi.URLParam(r, "count"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}
