package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/dto"
	"github.com/SscSPs/jewel_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers the customer routes.
func registerCustomerRoutes(rg *gin.RouterGroup, cs portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(cs)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("/:id", h.getCustomer)
	}
}

// createCustomer godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req, middleware.ActorID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(*customer))
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]interface{} "Invalid ID"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, logger.With(slog.String("customer_id", customerID)), err, "Failed to get customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(*customer))
}
