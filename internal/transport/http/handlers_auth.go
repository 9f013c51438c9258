package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gateway/pkg/platform/httputil"
)

// authRoutes covers the auth domain plus the session lifecycle the gateway
// owns: sign-in/sign-up/refresh rewrite the session cookie, sign-out clears
// it. Everything else passes through.
func (h *Handler) authRoutes(r chi.Router) {
	r.Post("/auth/signup", h.signUp)
	r.Post("/auth/signin", h.signIn)
	r.Post("/auth/signout", h.signOut)
	r.Put("/auth/verify-email", h.verifyEmail)
	r.Put("/auth/forgot-password", h.forgotPassword)
	r.Put("/auth/reset-password/{token}", h.resetPassword)
	r.Put("/auth/change-password", h.changePassword)
	r.Get("/auth/currentuser", h.currentUser)
	r.Post("/auth/resend-email", h.resendEmail)
	r.Get("/auth/refresh-token/{username}", h.refreshToken)
	r.Put("/auth/seed/{count}", h.authSeed)
}

// establishSession pulls the fresh user credential out of a successful auth
// reply and rewrites the session cookie. The credential itself never appears
// in the gateway's response body.
func (h *Handler) establishSession(w http.ResponseWriter, reply map[string]any) error {
	token, _ := reply["token"].(string)
	if token == "" {
		return nil
	}
	delete(reply, "token")
	return h.deps.Sessions.Write(w, token)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Auth.SignUp(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.establishSession(w, reply.Body); err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Auth.SignIn(r.Context(), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.establishSession(w, reply.Body); err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

// signOut is local to the gateway: invalidating the session means expiring
// the cookie. No downstream call is involved.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	h.deps.Sessions.Clear(w)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Auth.VerifyEmail)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Auth.ForgotPassword)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reply, err := h.deps.Auth.ResetPassword(r.Context(), chi.URLParam(r, "token"), body)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Auth.ChangePassword)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Auth.CurrentUser(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) resendEmail(w http.ResponseWriter, r *http.Request) {
	h.passthroughBody(w, r, h.deps.Auth.ResendEmail)
}

// refreshToken rewrites the session cookie only after the auth service
// accepted the refresh; on failure the existing cookie is left untouched.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Auth.RefreshToken(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.establishSession(w, reply.Body); err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}

func (h *Handler) authSeed(w http.ResponseWriter, r *http.Request) {
	reply, err := h.deps.Auth.Seed(r.Context(), chi.URLParam(r, "count"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeReply(w, reply)
}
