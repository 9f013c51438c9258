package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gateway/pkg/platform/httputil"
)

func (h *Handler) messageRoutes(r chi.Router) {
	r.Get("/message/conversation/{senderUsername}/{receiverUsername}", h.conversation)
	r.Get("/message/conversations/{username}", h.conversationList)
	r.Get("/message/{senderUsername}/{receiverUsername}", h.messages)
	r.Post("/message", h.addMessage)
	r.Put("/message/offer", h.updateOffer)
	r.Put("/message/mark-as-read", h.markMessageAsRead)
	r.Put("/message/mark-multiple-as-read", h.markMultipleMessagesAsRead)
}

func (h *Handler) conversation(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Message.Conversation(r.Context(),
		chi.URLParam(r, "senderUsername"), chi.URLParam(r, "receiverUsername"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) conversationList(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Message.ConversationList(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) messages(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Message.Messages(r.Context(),
		chi.URLParam(r, "senderUsername"), chi.URLParam(r, "receiverUsername"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) addMessage(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Message.Add)
}

func (h *Handler) updateOffer(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Message.UpdateOffer)
}

func (h *Handler) markMessageAsRead(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Message.MarkAsRead)
}

func (h *Handler) markMultipleMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Message.MarkMultipleAsRead)
}
