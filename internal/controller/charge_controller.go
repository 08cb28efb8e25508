package controller

import (
	"net/http"

	domainErrors "github.com/cassiomorais/recurly-gateway/internal/domain/errors"
	"github.com/cassiomorais/recurly-gateway/internal/service"
)

const defaultProvider = "recurly"

// ChargeController handles charge-related HTTP requests.
type ChargeController struct {
	chargeService *service.ChargeService
}

// NewChargeController creates a new ChargeController.
func NewChargeController(chargeService *service.ChargeService) *ChargeController {
	return &ChargeController{chargeService: chargeService}
}

// CreateCharge handles POST /api/v1/charges
//
// A declined charge is a successful HTTP exchange: the response carries
// success=false with the provider's message. Only transport, validation,
// and reconciliation failures map to error statuses.
func (h *ChargeController) CreateCharge(w http.ResponseWriter, r *http.Request) {
	var req CreateChargeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Token == "" && req.Card == nil {
		writeError(w, domainErrors.NewValidationError("token", "either token or card is required"))
		return
	}

	providerName := req.Provider
	if providerName == "" {
		providerName = defaultProvider
	}

	result, err := h.chargeService.Charge(r.Context(), providerName, req.ToChargeRequest())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromChargeResult(result))
}
