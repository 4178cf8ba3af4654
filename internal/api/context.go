package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"careerhub/internal/domain"
	"careerhub/internal/store"
)

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

var errInvalidID = errors.New("invalid id")

// idParam parses the :id路径参数，要求正整数。
func idParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// writeStoreError maps repository errors onto HTTP responses. Raw adapter
// errors never reach the client; only the message strings below do.
func writeStoreError(c *gin.Context, err error, fallback string) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "record not found")
	case errors.Is(err, store.ErrNotWithdrawable):
		Conflict(c, "application can only be withdrawn while status is Applied")
	case errors.Is(err, store.ErrInvalidTransition):
		Conflict(c, "status transition not allowed")
	case errors.As(err, &validationErr):
		BadRequest(c, validationErr.Error())
	default:
		Internal(c, fallback)
	}
}
