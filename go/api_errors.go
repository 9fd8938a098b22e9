package storeserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	storeapp "github.com/Apurer/go-gin-store-api/internal/domains/store/application"
	storedomain "github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
	userapp "github.com/Apurer/go-gin-store-api/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-store-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-store-api/internal/platform/validation"
	apierrors "github.com/Apurer/go-gin-store-api/internal/shared/errors"
)

var responder = apierrors.NewResponder("", mapUserError, mapStoreError)

func mapUserError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapStoreError(err error) (apierrors.ProblemDetail, bool) {
	var lineErr *storedomain.LineError
	switch {
	case errors.As(err, &lineErr):
		return apierrors.ErrValidation.
			WithDetail(err.Error()).
			WithExtension("line", lineErr.Index).
			WithExtension("productId", lineErr.ProductID.String()), true
	case errors.Is(err, storeapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, storeports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondError maps a service error onto a problem response.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBindError reports a request body that failed decoding or validation.
func respondBindError(c *gin.Context, err error) {
	responder.ValidationFailed(c, validation.ToDetails(err))
}

// pathID parses a UUID path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		responder.BadRequest(c, param+" must be a valid UUID, got '"+raw+"'")
		return uuid.Nil, false
	}
	return id, true
}
