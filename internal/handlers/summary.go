package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Ledger summary
// @Description  Totals per account type, net worth and the balance equation, recomputed on every call.
// @Tags         summary
// @Produce      json
// @Success      200  {object}  models.Summary
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/summary [get]
// @Security     SessionCookie
func (h *Handler) getSummary(c *gin.Context) {
	sum, err := h.services.Summary(c.Request.Context(), ownerID(c))
	if err != nil {
		h.fail(c, err, "summary_failed", "user_id", ownerID(c))
		return
	}
	c.JSON(http.StatusOK, sum)
}
