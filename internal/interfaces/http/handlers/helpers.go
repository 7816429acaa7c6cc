package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/interfaces/http/response"
	"merchant-verify.backend/pkg/utils"
)

const dateLayout = "2006-01-02"

// parseIDParam reads a UUID path parameter, answering 400 when malformed
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(c.Param(name))
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// bindPagination reads page and limit query parameters
func bindPagination(c *gin.Context) (utils.PaginationParams, bool) {
	var q utils.PaginationParams
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return utils.PaginationParams{}, false
	}
	return utils.GetPaginationParams(q.Page, q.Limit), true
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
