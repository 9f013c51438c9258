package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gateway/pkg/platform/httputil"
)

func (h *Handler) gigRoutes(r chi.Router) {
	r.Get("/gig/seller/pause/{sellerId}", h.sellerPausedGigs)
	r.Get("/gig/seller/{sellerId}", h.sellerGigs)
	r.Get("/gig/search/{from}/{size}/{deliveryTime}", h.searchGigs)
	r.Post("/gig/create", h.createGig)
	r.Put("/gig/active/{gigId}", h.updateGigActive)
	r.Put("/gig/seed/{count}", h.gigSeed)
	r.Put("/gig/{gigId}", h.updateGig)
	r.Delete("/gig/{gigId}/{sellerId}", h.deleteGig)
	r.Get("/gig/{gigId}", h.gigByID)
}

func (h *Handler) gigByID(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Gig.ByID(r.Context(), chi.URLParam(r, "gigId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) sellerGigs(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Gig.SellerGigs(r.Context(), chi.URLParam(r, "sellerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) sellerPausedGigs(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Gig.SellerPausedGigs(r.Context(), chi.URLParam(r, "sellerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) searchGigs(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Gig.Search(r.Context(),
		chi.URLParam(r, "from"), chi.URLParam(r, "size"), chi.URLParam(r, "deliveryTime"),
		r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) createGig(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Gig.Create)
}

func (h *Handler) updateGig(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Gig.Update(r.Context(), chi.URLParam(r, "gigId"), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) updateGigActive(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Gig.UpdateActive(r.Context(), chi.URLParam(r, "gigId"), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) deleteGig(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Gig.Delete(r.Context(), chi.URLParam(r, "gigId"), chi.URLParam(r, "sellerId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) gigSeed(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Gig.Seed(r.Context(), chi.URLParam(r, "count"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}
