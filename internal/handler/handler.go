// Package handler exposes the back-office operations over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
	"github.com/segyhp/edu-backoffice/pkg/response"
)

const maxBodyBytes = 1 << 20

// NewValidator teaches the validator about money and calendar types
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.NullDecimal); ok && d.Valid {
			return d.Decimal.InexactFloat64()
		}
		return nil
	}, decimal.NullDecimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(domain.Date); ok {
			return d.Time
		}
		return nil
	}, domain.Date{})

	return v
}

// decode reads a JSON body into dest and validates it
func decode(w http.ResponseWriter, r *http.Request, v *validator.Validate, dest interface{}) error {
	return decodeBody(w, r, v, dest, false)
}

// decodeOptional treats a missing body as an empty object
func decodeOptional(w http.ResponseWriter, r *http.Request, v *validator.Validate, dest interface{}) error {
	return decodeBody(w, r, v, dest, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v *validator.Validate, dest interface{}, allowEmpty bool) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		return customError.WrapValidation("invalid request body: %v", err)
	}

	if err := v.Struct(dest); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return customError.WrapValidation("%s", describe(fieldErrs))
		}
		return customError.WrapValidation("%v", err)
	}
	return nil
}

func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// writeError maps business errors onto HTTP statuses
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var be *customError.BusinessError
	code := customError.ErrCodeDatabaseError
	if errors.As(err, &be) {
		code = be.Code
	}

	switch {
	case errors.Is(err, customError.ErrValidation):
		response.Fail(w, http.StatusBadRequest, code, customError.Message(err))
	case errors.Is(err, customError.ErrNotFound):
		response.Fail(w, http.StatusNotFound, code, customError.Message(err))
	case errors.Is(err, customError.ErrConflict):
		response.Fail(w, http.StatusConflict, code, customError.Message(err))
	default:
		logger.Error("request failed", zap.Error(err))
		response.Fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, customError.WrapValidation("invalid %s %q", name, raw)
	}
	return id, nil
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, customError.WrapValidation("invalid %s %q", name, raw)
	}
	return &id, nil
}

func queryDate(r *http.Request, name string) (*domain.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, customError.WrapValidation("%s: %v", name, err)
	}
	return &d, nil
}

// queryTime accepts a plain date as well as RFC 3339
func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, customError.WrapValidation("%s: expected YYYY-MM-DD or RFC 3339", name)
	}
	return &d.Time, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, customError.WrapValidation("invalid %s %q", name, raw)
	}
	return &b, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, customError.WrapValidation("invalid %s %q", name, raw)
	}
	return n, nil
}
