package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/interfaces/http/middleware"
	"merchant-verify.backend/internal/interfaces/http/response"
	"merchant-verify.backend/internal/usecases"
)

// FlagHandler handles verification flag endpoints
type FlagHandler struct {
	flagUsecase *usecases.FlagUsecase
}

// NewFlagHandler creates a new flag handler
func NewFlagHandler(flagUsecase *usecases.FlagUsecase) *FlagHandler {
	return &FlagHandler{flagUsecase: flagUsecase}
}

// RaiseFlag opens a flag against a merchant
// POST /api/v1/merchants/:id/flags
func (h *FlagHandler) RaiseFlag(c *gin.Context) {
	merchantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input entities.CreateFlagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	flag, err := h.flagUsecase.Raise(c.Request.Context(), merchantID, &input, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, flag)
}

// ListMerchantFlags lists every flag of a merchant
// GET /api/v1/merchants/:id/flags
func (h *FlagHandler) ListMerchantFlags(c *gin.Context) {
	merchantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	flags, err := h.flagUsecase.ListByMerchant(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, flags)
}

// ListActiveFlags lists open and investigating flags
// GET /api/v1/flags
func (h *FlagHandler) ListActiveFlags(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}

	page, err := h.flagUsecase.ListActive(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetFlag returns a flag
// GET /api/v1/flags/:id
func (h *FlagHandler) GetFlag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	flag, err := h.flagUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, flag)
}

// UpdateFlag edits a flag or moves it between open and investigating
// PUT /api/v1/flags/:id
func (h *FlagHandler) UpdateFlag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input entities.UpdateFlagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	flag, err := h.flagUsecase.Update(c.Request.Context(), id, &input, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, flag)
}

// ResolveFlag closes a flag as resolved or dismissed
// POST /api/v1/flags/:id/resolve
func (h *FlagHandler) ResolveFlag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input entities.ResolveFlagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	flag, err := h.flagUsecase.Resolve(c.Request.Context(), id, &input, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, flag)
}
