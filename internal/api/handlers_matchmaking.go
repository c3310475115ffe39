package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/muhammadolammi/icanmatch/internal/logging"
	"github.com/muhammadolammi/icanmatch/internal/recommend"
	"github.com/muhammadolammi/icanmatch/internal/swipe"
)

type sessionResponse struct {
	SessionID string       `json:"sessionId"`
	Screen    swipe.Screen `json:"screen"`
}

type decisionRequest struct {
	Type      string `json:"type" validate:"required,oneof=job certification"`
	ID        int    `json:"id" validate:"required,gt=0"`
	Direction string `json:"direction" validate:"required,oneof=left right"`
}

type dragRequest struct {
	StartX        float64 `json:"startX"`
	EndX          float64 `json:"endX"`
	ViewportWidth float64 `json:"viewportWidth" validate:"gte=0"`
}

type dragResponse struct {
	swipe.DragResult
	Screen swipe.Screen `json:"screen"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	u := mustUser(r)
	s, err := h.sessions.Create(r.Context(), u, h.carts.For(u.ID))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondCreated(w, r, sessionResponse{
		SessionID: s.ID,
		Screen:    swipe.Render(s.Controller.Snapshot()),
	})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*swipe.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "sessionID"), mustUser(r).ID)
	if err != nil {
		respondDomainError(w, r, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	state := s.Controller.Snapshot()
	if r.URL.Query().Get("wait") == "true" {
		// Blocks until every in-flight load has settled, not just the latest.
		ctx, cancel := context.WithTimeout(r.Context(), h.waitTimeout)
		var err error
		state, err = s.Controller.WaitIdle(ctx)
		cancel()
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Str("session_id", s.ID).Msg("load still pending")
		}
	}

	respondOK(w, r, sessionResponse{SessionID: s.ID, Screen: swipe.Render(state)})
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "sessionID"), mustUser(r).ID); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req decisionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	kind, err := recommend.ParseKind(req.Type)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}
	dir, err := swipe.ParseDirection(req.Direction)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
		return
	}

	if err := s.Controller.Decide(r.Context(), recommend.Key{Kind: kind, ID: req.ID}, dir); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondOK(w, r, sessionResponse{SessionID: s.ID, Screen: swipe.Render(s.Controller.Snapshot())})
}

func (h *Handler) Drag(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req dragRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.Drag(r.Context(), req.StartX, req.EndX, req.ViewportWidth)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondOK(w, r, dragResponse{DragResult: res, Screen: swipe.Render(s.Controller.Snapshot())})
}

func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Controller.Reset(r.Context())
	respondOK(w, r, sessionResponse{SessionID: s.ID, Screen: swipe.Render(s.Controller.Snapshot())})
}
