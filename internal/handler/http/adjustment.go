package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	adjustmentdomain "github.com/paylens/attendance-backend-go/internal/domain/adjustment"
	"github.com/paylens/attendance-backend-go/internal/handler/http/response"
	"github.com/paylens/attendance-backend-go/internal/service/adjustment"
)

type AdjustmentHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type adjustmentHandlerImpl struct {
	adjustmentService *adjustment.AdjustmentService
}

func NewAdjustmentHandler(adjustmentService *adjustment.AdjustmentService) AdjustmentHandler {
	return &adjustmentHandlerImpl{adjustmentService: adjustmentService}
}

func (h *adjustmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	month := chi.URLParam(r, "month")

	result, err := h.adjustmentService.Get(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *adjustmentHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	month := chi.URLParam(r, "month")

	var req adjustmentdomain.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.adjustmentService.Upsert(r.Context(), employeeID, month, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
