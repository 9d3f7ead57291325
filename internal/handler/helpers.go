package handler

import (
	"errors"
	"net/http"
	"reflect"

	"screenstock/internal/apierror"

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
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewFieldErrors(fields))
		return false
	}
	return true
}

// bindQueryAndValidate binds query string params and runs validator tags.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewFieldErrors(fields))
		return false
	}
	return true
}

// respondError maps the typed domain errors to HTTP statuses. Anything
// untyped is attached to the context and turned into a 500 by the
// ErrorHandler middleware.
func respondError(c *gin.Context, err error) {
	var (
		ve *apierror.ValidationError
		nf *apierror.NotFoundError
		cf *apierror.ConflictError
		is *apierror.InsufficientStockError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(ve.Error()))
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, apierror.New(nf.Error()))
	case errors.As(err, &cf):
		c.JSON(http.StatusConflict, apierror.New(cf.Error()))
	case errors.As(err, &is):
		c.JSON(http.StatusConflict, apierror.New(is.Error()))
	default:
		_ = c.Error(err)
	}
}
