package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/anish435/Hotel-Inventory-management-system/internal/apierror"
	"github.com/anish435/Hotel-Inventory-management-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps the service sentinel errors onto HTTP statuses.
// Anything unrecognized is recorded on the context for the ErrorHandler
// middleware, which logs it and answers 500 without leaking internals.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrStaffNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrItemInUse):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Operation failed, please try again"))
	}
}
