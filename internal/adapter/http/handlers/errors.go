package handlers

import (
	"errors"
	"net/http"

	"ecommerce_api/internal/usecase"
	"ecommerce_api/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidProductPayload = pkg.NewDomainErrorSimple("INVALID_PRODUCT_INPUT", "Invalid product payload", http.StatusBadRequest)
	errInvalidOrderPayload   = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Invalid order payload", http.StatusBadRequest)
	errInvalidOrderQuery     = pkg.NewDomainErrorSimple("INVALID_REQUEST", "A valid customer email is required", http.StatusBadRequest)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapProductError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("PRODUCT_ALREADY_EXISTS", "A product with this code already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrStoreUnavailable):
		return pkg.NewDomainError("STORE_UNAVAILABLE", "Catalog store is unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderProductNotFound):
		return pkg.NewDomainError("PRODUCT_NOT_FOUND", err.Error(), err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConflict):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_EXISTS", "Order already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrStoreUnavailable):
		return pkg.NewDomainError("STORE_UNAVAILABLE", "Order store is unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
