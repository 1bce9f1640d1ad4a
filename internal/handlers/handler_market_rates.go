package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/SscSPs/jewel_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type marketRatesHandler struct {
	rates portssvc.MarketRateSvc
}

func registerMarketRateRoutes(rg *gin.RouterGroup, rates portssvc.MarketRateSvc) {
	h := &marketRatesHandler{rates: rates}
	rg.GET("/market-rates", h.getCurrentRates)
}

// getCurrentRates godoc
// @Summary Current market rates
// @Description Per-purity gold and silver rates in rupees per gram, served from a short-lived cache.
// @Tags market-rates
// @Produce json
// @Success 200 {object} dto.MarketRatesResponse
// @Failure 503 {object} map[string]string "No price source configured or the source failed"
// @Security BearerAuth
// @Router /market-rates [get]
func (h *marketRatesHandler) getCurrentRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rates.CurrentRates(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch market rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToMarketRatesResponse(*rates))
}
