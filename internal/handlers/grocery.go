package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"GroceryWise/internal/middleware"
	"GroceryWise/internal/model"
	"GroceryWise/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GroceryHandler: CRUD позиций списка покупок текущего пользователя.
type GroceryHandler struct {
	Groceries *service.GroceryService
	Logger    *zap.SugaredLogger
}

func NewGroceryHandler(groceries *service.GroceryService, logger *zap.SugaredLogger) *GroceryHandler {
	return &GroceryHandler{Groceries: groceries, Logger: logger}
}

type CreateGroceryRequest struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
	Status   *string `json:"status"`
}

// UpdateGroceryRequest: частичное обновление: меняются только переданные поля.
type UpdateGroceryRequest struct {
	Name     Optional[string] `json:"name"`
	Quantity Optional[int]    `json:"quantity"`
	Status   Optional[string] `json:"status"`
}

func (req UpdateGroceryRequest) patch() (service.GroceryPatch, error) {
	var p service.GroceryPatch
	var err error
	if p.Name, err = req.Name.Ptr("name"); err != nil {
		return p, err
	}
	if p.Quantity, err = req.Quantity.Ptr("quantity"); err != nil {
		return p, err
	}
	raw, err := req.Status.Ptr("status")
	if err != nil {
		return p, err
	}
	if raw != nil {
		st, err := parseStatus(*raw)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	return p, nil
}

func (h *GroceryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, service.ErrUnauthorized)
		return
	}
	var req CreateGroceryRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if req.Name == nil {
		writeError(w, h.Logger, service.Invalid("name", "field required"))
		return
	}
	if req.Quantity == nil {
		writeError(w, h.Logger, service.Invalid("quantity", "field required"))
		return
	}
	var status model.GroceryStatus
	if req.Status != nil {
		st, err := parseStatus(*req.Status)
		if err != nil {
			writeError(w, h.Logger, err)
			return
		}
		status = st
	}

	item, err := h.Groceries.Create(r.Context(), user.ID, *req.Name, *req.Quantity, status)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, service.ErrUnauthorized)
		return
	}
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultListLimit)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	items, err := h.Groceries.List(r.Context(), user.ID, skip, limit)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *GroceryHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.target(w, r)
	if !ok {
		return
	}
	item, err := h.Groceries.Get(r.Context(), user.ID, id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *GroceryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.target(w, r)
	if !ok {
		return
	}
	var req UpdateGroceryRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	item, err := h.Groceries.Update(r.Context(), user.ID, id, patch)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *GroceryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.target(w, r)
	if !ok {
		return
	}
	if err := h.Groceries.Delete(r.Context(), user.ID, id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// target достаёт текущего пользователя и id позиции из пути.
func (h *GroceryHandler) target(w http.ResponseWriter, r *http.Request) (*model.User, int64, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, service.ErrUnauthorized)
		return nil, 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, h.Logger, service.Invalid("id", "must be an integer"))
		return nil, 0, false
	}
	return user, id, true
}

func (h *GroceryHandler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Grocery item not found")
		return
	}
	writeError(w, h.Logger, err)
}

func parseStatus(raw string) (model.GroceryStatus, error) {
	st, err := model.ParseGroceryStatus(raw)
	if err != nil {
		return "", service.Invalid("status", "must be one of: pending, purchased")
	}
	return st, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.Invalid(name, "must be an integer")
	}
	return v, nil
}
