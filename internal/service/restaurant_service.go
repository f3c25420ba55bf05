package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wasel-app/wasel-api/internal/availability"
	"github.com/wasel-app/wasel-api/internal/dto"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
)

type restaurantRepository interface {
	FindByID(ctx context.Context, id string) (*models.Restaurant, error)
	List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, int, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	UpdateSchedule(ctx context.Context, restaurant *models.Restaurant) error
	SetTemporaryClosure(ctx context.Context, id string, closed bool, reason *string) error
	Delete(ctx context.Context, id string) error
}

// RestaurantServiceConfig tunes runtime behaviour.
type RestaurantServiceConfig struct {
	// RecordCacheTTL bounds how long raw restaurant records stay cached.
	RecordCacheTTL time.Duration
}

// RestaurantService manages restaurant records and derives their availability.
// Statuses are recomputed from the record on every call; only the record
// itself is ever cached.
type RestaurantService struct {
	repo      restaurantRepository
	cache     *CacheService
	resolver  *availability.Resolver
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cacheTTL  time.Duration
}

// NewRestaurantService constructs a RestaurantService. The clock defaults to
// time.Now and is injectable for tests.
func NewRestaurantService(repo restaurantRepository, cache *CacheService, resolver *availability.Resolver, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg RestaurantServiceConfig, now func() time.Time) *RestaurantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if resolver == nil {
		resolver = availability.NewResolver(nil, 0)
	}
	if now == nil {
		now = time.Now
	}
	if cfg.RecordCacheTTL <= 0 {
		cfg.RecordCacheTTL = 5 * time.Minute
	}
	return &RestaurantService{
		repo:      repo,
		cache:     cache,
		resolver:  resolver,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       now,
		cacheTTL:  cfg.RecordCacheTTL,
	}
}

// Create registers a new restaurant record with its schedule.
func (s *RestaurantService) Create(ctx context.Context, req dto.CreateRestaurantRequest) (*models.Restaurant, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid restaurant payload")
	}

	opening := req.OpeningTime
	if opening == "" {
		opening = availability.DefaultOpeningTime
	}
	closing := req.ClosingTime
	if closing == "" {
		closing = availability.DefaultClosingTime
	}
	workingDays := req.WorkingDays
	if workingDays == "" {
		workingDays = availability.AllWeek().String()
	}
	if err := validateScheduleFields(opening, closing, workingDays); err != nil {
		return nil, err
	}

	restaurant := &models.Restaurant{
		ID:          uuid.NewString(),
		VendorID:    req.VendorID,
		Name:        req.Name,
		NameAr:      req.NameAr,
		Phone:       req.Phone,
		Address:     req.Address,
		IsOpen:      true,
		OpeningTime: opening,
		ClosingTime: closing,
		WorkingDays: workingDays,
	}
	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create restaurant")
	}
	return restaurant, nil
}

// Get fetches a restaurant record by ID, going through the record cache.
func (s *RestaurantService) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	return s.fetchRecord(ctx, id)
}

// List returns restaurants matching the filter plus pagination metadata.
func (s *RestaurantService) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, *models.Pagination, error) {
	restaurants, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list restaurants")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return restaurants, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// UpdateSchedule applies the provided schedule mutations. Nil fields in the
// request leave the stored value untouched.
func (s *RestaurantService) UpdateSchedule(ctx context.Context, id string, req dto.UpdateScheduleRequest) (*models.Restaurant, error) {
	restaurant, err := s.loadFromRepo(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsOpen != nil {
		restaurant.IsOpen = *req.IsOpen
	}
	if req.OpeningTime != nil {
		restaurant.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		restaurant.ClosingTime = *req.ClosingTime
	}
	if req.WorkingDays != nil {
		restaurant.WorkingDays = *req.WorkingDays
	}
	if err := validateScheduleFields(restaurant.OpeningTime, restaurant.ClosingTime, restaurant.WorkingDays); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSchedule(ctx, restaurant); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "restaurant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule")
	}
	s.invalidateRecord(ctx, id)
	return restaurant, nil
}

// TemporaryClose flips the temporary-closure override on. The reason is
// optional and shown to customers verbatim when present.
func (s *RestaurantService) TemporaryClose(ctx context.Context, id string, reason string) error {
	var reasonPtr *string
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		reasonPtr = &trimmed
	}
	if err := s.repo.SetTemporaryClosure(ctx, id, true, reasonPtr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "restaurant not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to close restaurant")
	}
	s.invalidateRecord(ctx, id)
	return nil
}

// Reopen clears the temporary-closure override.
func (s *RestaurantService) Reopen(ctx context.Context, id string) error {
	if err := s.repo.SetTemporaryClosure(ctx, id, false, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "restaurant not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reopen restaurant")
	}
	s.invalidateRecord(ctx, id)
	return nil
}

// Delete removes a restaurant record.
func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "restaurant not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete restaurant")
	}
	s.invalidateRecord(ctx, id)
	return nil
}

// Status derives the availability status for the restaurant at the given
// instant. A nil instant means "now" per the injected clock.
func (s *RestaurantService) Status(ctx context.Context, id string, at *time.Time) (*dto.RestaurantStatusResponse, error) {
	restaurant, err := s.fetchRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	checkedAt := s.instant(at)
	status := s.resolver.ResolveStatus(restaurant.Schedule(), checkedAt)
	if s.metrics != nil {
		s.metrics.RecordAvailabilityResolution(string(status.Color))
	}
	return &dto.RestaurantStatusResponse{
		RestaurantID: restaurant.ID,
		IsOpen:       status.Open,
		NextOpenTime: status.NextOpenTime,
		CloseTime:    status.CloseTime,
		Message:      status.Message,
		StatusColor:  string(status.Color),
		CheckedAt:    checkedAt,
	}, nil
}

// Eligibility answers whether an order may be placed at the given instant.
func (s *RestaurantService) Eligibility(ctx context.Context, id string, at *time.Time) (*dto.OrderEligibilityResponse, error) {
	restaurant, err := s.fetchRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	checkedAt := s.instant(at)
	eligibility := s.resolver.ResolveOrderEligibility(restaurant.Schedule(), checkedAt)
	return &dto.OrderEligibilityResponse{
		RestaurantID: restaurant.ID,
		CanOrder:     eligibility.CanOrder,
		Message:      eligibility.Message,
		CheckedAt:    checkedAt,
	}, nil
}

func (s *RestaurantService) instant(at *time.Time) time.Time {
	if at != nil {
		return *at
	}
	return s.now()
}

func recordCacheKey(id string) string {
	return "restaurant:record:" + id
}

func (s *RestaurantService) fetchRecord(ctx context.Context, id string) (*models.Restaurant, error) {
	var cached models.Restaurant
	if s.cache.Enabled() {
		if hit, err := s.cache.Get(ctx, recordCacheKey(id), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	restaurant, err := s.loadFromRepo(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, recordCacheKey(id), restaurant, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache restaurant record", zap.String("restaurant_id", id), zap.Error(err))
		}
	}
	return restaurant, nil
}

func (s *RestaurantService) loadFromRepo(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "restaurant not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch restaurant")
	}
	return restaurant, nil
}

func (s *RestaurantService) invalidateRecord(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, recordCacheKey(id)); err != nil {
		s.logger.Warn("failed to invalidate restaurant record", zap.String("restaurant_id", id), zap.Error(err))
	}
}

// validateScheduleFields rejects malformed writes. Reads stay tolerant (the
// resolver substitutes defaults), but new garbage is not let in.
func validateScheduleFields(opening, closing, workingDays string) error {
	if err := validateClockValue(opening); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("opening_time: %v", err))
	}
	if err := validateClockValue(closing); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("closing_time: %v", err))
	}
	if err := validateWorkingDaysValue(workingDays); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("working_days: %v", err))
	}
	return nil
}

func validateClockValue(raw string) error {
	if _, err := time.Parse("15:04", raw); err != nil {
		return fmt.Errorf("%q is not a valid HH:MM time", raw)
	}
	return nil
}

func validateWorkingDaysValue(raw string) error {
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil || day < 0 || day > 6 {
			return fmt.Errorf("%q is not a weekday index between 0 and 6", part)
		}
	}
	return nil
}
