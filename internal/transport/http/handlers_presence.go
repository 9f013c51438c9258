package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gateway/pkg/platform/httputil"
)

func (h *Handler) presenceRoutes(r chi.Router) {
	r.Get("/auth/logged-in-user", h.loggedInUsers)
	r.Post("/auth/logged-in-user/{username}", h.addLoggedInUser)
	r.Delete("/auth/logged-in-user/{username}", h.removeLoggedInUser)
}

// broadcastPresence pushes the current snapshot to every connected client.
// The registry is the source of truth; the broadcaster only relays it.
func (h *Handler) broadcastPresence(r *http.Request) error {
	online, err := h.deps.Presence.ListOnline(r.Context())
	if err != nil {
		return err
	}
	h.deps.Realtime.Broadcast("online", online)
	if h.deps.Metrics != nil {
		h.deps.Metrics.PresenceEvents.Inc()
	}
	return nil
}

func (h *Handler) loggedInUsers(w http.ResponseWriter, r *http.Request) {
	if err := h.broadcastPresence(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "User is online"})
}

func (h *Handler) addLoggedInUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.deps.Presence.MarkOnline(r.Context(), username); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.broadcastPresence(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "User is online"})
}

func (h *Handler) removeLoggedInUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := h.deps.Presence.MarkOffline(r.Context(), username); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.broadcastPresence(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "User is offline"})
}
