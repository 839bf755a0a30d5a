package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"guildchat/internal/domain"
	"guildchat/internal/dto"
	"guildchat/internal/netutil"
	"guildchat/internal/service"
	"guildchat/internal/service/impl"
	"guildchat/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	auth     service.AuthService
	users    service.UserService
	friends  service.FriendService
	messages service.MessageService
	channels service.ChannelService
}

func NewRouter(
	auth service.AuthService,
	users service.UserService,
	friends service.FriendService,
	messages service.MessageService,
	channels service.ChannelService,
) *chi.Mux {
	h := &Handler{auth: auth, users: users, friends: friends, messages: messages, channels: channels}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/auth/refresh", h.refresh)
	r.Post("/auth/logout", h.logout)

	// Read paths accept a token on its signature alone; mutating paths
	// additionally consult the session ledger.
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(auth))
		r.Get("/auth/verify", h.verify)
		r.Get("/api/users/me", h.me)
		r.Get("/api/friends", h.listFriends)
		r.Get("/api/channels/{channelID}", h.getChannel)
	})
	r.Group(func(r chi.Router) {
		r.Use(RequireAuthStrict(auth))
		r.Post("/api/friend", h.createFriend)
		r.Post("/api/message", h.postMessage)
		r.Patch("/api/users/me", h.updateMe)
		r.Delete("/api/users/me", h.deleteMe)
	})

	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	res, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	res, err := h.auth.Login(r.Context(), req, clientIP(r), netutil.TruncateUserAgent(r.UserAgent()))
	if err != nil {
		// Uniform outcome regardless of which credential was wrong.
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	res, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req dto.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	res, err := h.users.GetByUsername(r.Context(), user.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := h.users.UpdateProfile(r.Context(), user.ID, req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := h.users.Delete(r.Context(), user.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createFriend(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.FriendCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// The requesting side is whoever holds the session.
	req.Username = user.Username
	res, err := h.friends.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// "Not created": the caller does not learn which username missed.
			http.Error(w, "failed to create friend", http.StatusBadRequest)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) listFriends(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	res, err := h.friends.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if res == nil {
		res = []dto.FriendEntry{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) getChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	channelID, err := uuid.Parse(chi.URLParam(r, "channelID"))
	if err != nil {
		http.Error(w, "invalid channel id", http.StatusBadRequest)
		return
	}
	if err := h.channels.CheckAccess(r.Context(), user.ID, channelID); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.channels.GetWithMessages(r.Context(), channelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) postMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var req dto.MessageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// The author is whoever holds the session, not whoever the body names.
	req.UserID = user.ID.String()

	channelID, err := uuid.Parse(req.ChannelID)
	if err != nil {
		http.Error(w, "invalid channel id", http.StatusBadRequest)
		return
	}
	if err := h.channels.CheckAccess(r.Context(), user.ID, channelID); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.messages.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if normalized, ok := netutil.NormalizeIP(ip); ok {
			return normalized
		}
	}
	if xr := r.Header.Get("X-Real-IP"); xr != "" {
		if normalized, ok := netutil.NormalizeIP(xr); ok {
			return normalized
		}
	}
	if normalized, ok := netutil.NormalizeIP(r.RemoteAddr); ok {
		return normalized
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrChannelNotFound),
		errors.Is(err, domain.ErrGuildNotFound):
		status = http.StatusNotFound
	case errors.Is(err, impl.ErrAlreadyFriends), errors.Is(err, store.ErrDuplicateKey):
		status = http.StatusConflict
	case errors.Is(err, impl.ErrInvalidRequest),
		errors.Is(err, impl.ErrEmptyCredential),
		errors.Is(err, impl.ErrPasswordLength),
		errors.Is(err, impl.ErrSelfFriend),
		errors.Is(err, impl.ErrEmptyPassword):
		status = http.StatusBadRequest
	}
	http.Error(w, http.StatusText(status), status)
}
