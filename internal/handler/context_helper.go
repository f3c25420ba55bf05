package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wasel-app/wasel-api/internal/middleware"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// atFromQuery parses the optional "at" query parameter used to evaluate
// availability at a specific instant instead of now.
func atFromQuery(c *gin.Context) (*time.Time, error) {
	raw := c.Query("at")
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at must be an RFC3339 timestamp")
	}
	return &parsed, nil
}

func pageFromQuery(c *gin.Context) (page, pageSize int) {
	page = intQuery(c, "page", 1)
	pageSize = intQuery(c, "page_size", 20)
	return page, pageSize
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return fallback
		}
		value = value*10 + int(r-'0')
	}
	if value < 1 {
		return fallback
	}
	return value
}
