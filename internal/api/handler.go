package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/muhammadolammi/icanmatch/internal/advisor"
	"github.com/muhammadolammi/icanmatch/internal/cart"
	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/swipe"
)

// DefaultWaitTimeout bounds ?wait=true session reads.
const DefaultWaitTimeout = 10 * time.Second

type Deps struct {
	Catalog     *catalog.Catalog
	Sessions    *swipe.Registry
	Carts       *cart.Registry
	Coach       *advisor.Coach
	Matcher     *advisor.Matcher
	WaitTimeout time.Duration
}

type Handler struct {
	catalog     *catalog.Catalog
	sessions    *swipe.Registry
	carts       *cart.Registry
	coach       *advisor.Coach
	matcher     *advisor.Matcher
	waitTimeout time.Duration
}

func NewHandler(d Deps) *Handler {
	if d.WaitTimeout <= 0 {
		d.WaitTimeout = DefaultWaitTimeout
	}
	return &Handler{
		catalog:     d.Catalog,
		sessions:    d.Sessions,
		carts:       d.Carts,
		coach:       d.Coach,
		matcher:     d.Matcher,
		waitTimeout: d.WaitTimeout,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, map[string]string{"status": "ok"})
}

// respondDomainError maps package sentinel errors to HTTP statuses.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, swipe.ErrNotJobSeeker), errors.Is(err, advisor.ErrWrongRole):
		respondError(w, r, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, swipe.ErrSessionNotFound),
		errors.Is(err, cart.ErrUnknownCertification),
		errors.Is(err, cart.ErrNotInCart):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, swipe.ErrNotTop):
		respondError(w, r, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}

func mustUser(r *http.Request) catalog.User {
	u, ok := UserFromContext(r.Context())
	if !ok {
		panic("api: handler mounted without identify middleware")
	}
	return u
}

func intParam(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
