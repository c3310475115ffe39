package api

import (
	"net/http"

	"github.com/muhammadolammi/icanmatch/internal/cart"
)

type cartResponse struct {
	Items []cart.Item `json:"items"`
	Total int64       `json:"total"`
}

type addItemRequest struct {
	CertificationID int `json:"certificationId" validate:"required,gt=0"`
}

// A quantity of zero or less removes the item.
type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func cartView(c *cart.Cart) cartResponse {
	items := c.Items()
	if items == nil {
		items = []cart.Item{}
	}
	return cartResponse{Items: items, Total: c.Total()}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, cartView(h.carts.For(mustUser(r).ID)))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.carts.For(mustUser(r).ID)
	c.Clear()
	respondOK(w, r, cartView(c))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	u := mustUser(r)
	if err := h.carts.AddByID(u.ID, req.CertificationID); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondCreated(w, r, cartView(h.carts.For(u.ID)))
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "certificationID")
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid certification id")
		return
	}
	var req updateItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c := h.carts.For(mustUser(r).ID)
	if err := c.UpdateQuantity(id, *req.Quantity); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondOK(w, r, cartView(c))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "certificationID")
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid certification id")
		return
	}

	c := h.carts.For(mustUser(r).ID)
	if err := c.Remove(id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondOK(w, r, cartView(c))
}
