package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasel-app/wasel-api/internal/dto"
	"github.com/wasel-app/wasel-api/internal/middleware"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
	"github.com/wasel-app/wasel-api/pkg/response"
)

type restaurantServiceMock struct {
	restaurant  *models.Restaurant
	status      *dto.RestaurantStatusResponse
	eligibility *dto.OrderEligibilityResponse
	statusAt    *time.Time
	updated     *models.Restaurant
	err         error
}

func (m *restaurantServiceMock) Create(ctx context.Context, req dto.CreateRestaurantRequest) (*models.Restaurant, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.restaurant, nil
}

func (m *restaurantServiceMock) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	if m.restaurant == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "restaurant not found")
	}
	return m.restaurant, nil
}

func (m *restaurantServiceMock) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, *models.Pagination, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return []models.Restaurant{}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize}, nil
}

func (m *restaurantServiceMock) UpdateSchedule(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*models.Restaurant, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.updated, nil
}

func (m *restaurantServiceMock) TemporaryClose(ctx context.Context, id string, reason string) error {
	return m.err
}

func (m *restaurantServiceMock) Reopen(ctx context.Context, id string) error {
	return m.err
}

func (m *restaurantServiceMock) Delete(ctx context.Context, id string) error {
	return m.err
}

func (m *restaurantServiceMock) Status(ctx context.Context, id string, at *time.Time) (*dto.RestaurantStatusResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.statusAt = at
	return m.status, nil
}

func (m *restaurantServiceMock) Eligibility(ctx context.Context, id string, at *time.Time) (*dto.OrderEligibilityResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.eligibility, nil
}

func testContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, target, nil)
	}
	c.Request = req
	return c, w
}

func TestRestaurantHandlerStatus(t *testing.T) {
	mock := &restaurantServiceMock{
		status: &dto.RestaurantStatusResponse{
			RestaurantID: "rest-1",
			IsOpen:       true,
			StatusColor:  "green",
			Message:      "Open until 23:00",
		},
	}
	handler := NewRestaurantHandler(mock)

	c, w := testContext(t, http.MethodGet, "/restaurants/rest-1/status", nil)
	c.Params = gin.Params{{Key: "id", Value: "rest-1"}}

	handler.Status(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, _ := json.Marshal(envelope.Data)
	var status dto.RestaurantStatusResponse
	require.NoError(t, json.Unmarshal(data, &status))
	assert.True(t, status.IsOpen)
	assert.Equal(t, "green", status.StatusColor)
	assert.Nil(t, mock.statusAt)
}

func TestRestaurantHandlerStatusAtOverride(t *testing.T) {
	mock := &restaurantServiceMock{status: &dto.RestaurantStatusResponse{RestaurantID: "rest-1"}}
	handler := NewRestaurantHandler(mock)

	c, w := testContext(t, http.MethodGet, "/restaurants/rest-1/status?at=2024-01-03T22:45:00Z", nil)
	c.Params = gin.Params{{Key: "id", Value: "rest-1"}}

	handler.Status(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mock.statusAt)
	assert.Equal(t, time.Date(2024, time.January, 3, 22, 45, 0, 0, time.UTC), mock.statusAt.UTC())
}

func TestRestaurantHandlerStatusRejectsBadAt(t *testing.T) {
	handler := NewRestaurantHandler(&restaurantServiceMock{})

	c, w := testContext(t, http.MethodGet, "/restaurants/rest-1/status?at=yesterday", nil)
	c.Params = gin.Params{{Key: "id", Value: "rest-1"}}

	handler.Status(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestaurantHandlerUpdateScheduleOwnership(t *testing.T) {
	mock := &restaurantServiceMock{
		restaurant: &models.Restaurant{ID: "rest-1", VendorID: "vendor-1"},
		updated:    &models.Restaurant{ID: "rest-1", VendorID: "vendor-1", ClosingTime: "22:00"},
	}
	handler := NewRestaurantHandler(mock)

	body, _ := json.Marshal(dto.UpdateScheduleRequest{})
	c, w := testContext(t, http.MethodPut, "/restaurants/rest-1/schedule", body)
	c.Params = gin.Params{{Key: "id", Value: "rest-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "vendor-2", Role: models.RoleVendor})

	handler.UpdateSchedule(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = testContext(t, http.MethodPut, "/restaurants/rest-1/schedule", body)
	c.Params = gin.Params{{Key: "id", Value: "rest-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "vendor-1", Role: models.RoleVendor})

	handler.UpdateSchedule(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRestaurantHandlerTemporaryCloseWithoutBody(t *testing.T) {
	mock := &restaurantServiceMock{restaurant: &models.Restaurant{ID: "rest-1", VendorID: "vendor-1"}}
	handler := NewRestaurantHandler(mock)

	c, w := testContext(t, http.MethodPost, "/restaurants/rest-1/close", nil)
	c.Params = gin.Params{{Key: "id", Value: "rest-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})

	handler.TemporaryClose(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}
