package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wasel-app/wasel-api/internal/dto"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
	"github.com/wasel-app/wasel-api/pkg/response"
)

type restaurantService interface {
	Create(ctx context.Context, req dto.CreateRestaurantRequest) (*models.Restaurant, error)
	Get(ctx context.Context, id string) (*models.Restaurant, error)
	List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, *models.Pagination, error)
	UpdateSchedule(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*models.Restaurant, error)
	TemporaryClose(ctx context.Context, id string, reason string) error
	Reopen(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Status(ctx context.Context, id string, at *time.Time) (*dto.RestaurantStatusResponse, error)
	Eligibility(ctx context.Context, id string, at *time.Time) (*dto.OrderEligibilityResponse, error)
}

// RestaurantHandler exposes restaurant record and availability endpoints.
type RestaurantHandler struct {
	service restaurantService
}

// NewRestaurantHandler builds a new handler.
func NewRestaurantHandler(service restaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// Create godoc
// @Summary Register a restaurant
// @Tags Restaurants
// @Accept json
// @Produce json
// @Param payload body dto.CreateRestaurantRequest true "Restaurant payload"
// @Success 201 {object} response.Envelope
// @Router /restaurants [post]
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req dto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid restaurant payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && claims.Role == models.RoleVendor {
		req.VendorID = claims.UserID
	}
	restaurant, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, restaurant)
}

// Get godoc
// @Summary Fetch a restaurant record
// @Tags Restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Envelope
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c *gin.Context) {
	restaurant, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restaurant, nil)
}

// List godoc
// @Summary List restaurants
// @Tags Restaurants
// @Produce json
// @Param search query string false "Name search"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	page, pageSize := pageFromQuery(c)
	filter := models.RestaurantFilter{
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		filter.VendorID = &vendorID
	}
	restaurants, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restaurants, pagination)
}

// Status godoc
// @Summary Derived availability status
// @Tags Availability
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param at query string false "RFC3339 instant to evaluate at"
// @Success 200 {object} response.Envelope
// @Router /restaurants/{id}/status [get]
func (h *RestaurantHandler) Status(c *gin.Context) {
	at, err := atFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	status, err := h.service.Status(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Eligibility godoc
// @Summary Order eligibility decision
// @Tags Availability
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param at query string false "RFC3339 instant to evaluate at"
// @Success 200 {object} response.Envelope
// @Router /restaurants/{id}/eligibility [get]
func (h *RestaurantHandler) Eligibility(c *gin.Context) {
	at, err := atFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	eligibility, err := h.service.Eligibility(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, eligibility, nil)
}

// UpdateSchedule godoc
// @Summary Update availability schedule
// @Tags Restaurants
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param payload body dto.UpdateScheduleRequest true "Schedule mutations"
// @Success 200 {object} response.Envelope
// @Router /restaurants/{id}/schedule [put]
func (h *RestaurantHandler) UpdateSchedule(c *gin.Context) {
	id := c.Param("id")
	if err := h.requireOwnership(c, id); err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	restaurant, err := h.service.UpdateSchedule(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restaurant, nil)
}

// TemporaryClose godoc
// @Summary Temporarily close a restaurant
// @Tags Restaurants
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param payload body dto.TemporaryCloseRequest false "Optional reason"
// @Success 204
// @Router /restaurants/{id}/close [post]
func (h *RestaurantHandler) TemporaryClose(c *gin.Context) {
	id := c.Param("id")
	if err := h.requireOwnership(c, id); err != nil {
		response.Error(c, err)
		return
	}
	var req dto.TemporaryCloseRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid close payload"))
			return
		}
	}
	if err := h.service.TemporaryClose(c.Request.Context(), id, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reopen godoc
// @Summary Clear a temporary closure
// @Tags Restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 204
// @Router /restaurants/{id}/reopen [post]
func (h *RestaurantHandler) Reopen(c *gin.Context) {
	id := c.Param("id")
	if err := h.requireOwnership(c, id); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Reopen(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a restaurant
// @Tags Restaurants
// @Param id path string true "Restaurant ID"
// @Success 204
// @Router /restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// requireOwnership lets admins through and checks vendors against the record.
func (h *RestaurantHandler) requireOwnership(c *gin.Context, id string) error {
	claims := claimsFromContext(c)
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleVendor {
		return nil
	}
	restaurant, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	if restaurant.VendorID != claims.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "restaurant belongs to another vendor")
	}
	return nil
}
