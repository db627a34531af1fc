package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"sales-service/internal/dberr"
)

const (
	codeSuccess    = "success"
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeInternal   = "internal_server_error"

	msgSuccess    = "Request processed successfully."
	msgBadRequest = "Invalid request."
	msgNotFound   = "Resource not found."
	msgConflict   = "Request conflicts with existing data."
	msgInternal   = "Server error. Please try again later."
)

type successEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   any    `json:"error"`
}

// FieldError attributes a failure to one payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, successEnvelope{Code: codeSuccess, Message: msgSuccess, Data: data})
}

func respondBadRequest(c *gin.Context, details []FieldError) {
	c.JSON(http.StatusBadRequest, errorEnvelope{Code: codeBadRequest, Message: msgBadRequest, Error: details})
}

// respondError writes the envelope for a service error. Internal details
// never reach the client; services log them.
func respondError(c *gin.Context, err error) {
	var dbErr *dberr.Error
	errors.As(err, &dbErr)

	switch dberr.KindOf(err) {
	case dberr.KindNotFound:
		c.JSON(http.StatusNotFound, errorEnvelope{Code: codeNotFound, Message: msgNotFound})
	case dberr.KindConflict:
		if dbErr.Field != "" {
			c.JSON(http.StatusConflict, errorEnvelope{
				Code:    codeConflict,
				Message: msgConflict,
				Error:   []FieldError{{Field: dbErr.Field, Message: dbErr.Message}},
			})
			return
		}
		c.JSON(http.StatusConflict, errorEnvelope{Code: codeConflict, Message: dbErr.Message})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorEnvelope{Code: codeInternal, Message: msgInternal})
	}
}

// bindingErrors turns a bind failure into field errors keyed by JSON name.
func bindingErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{
				Field:   fieldPath(fe),
				Message: "failed on the '" + fe.Tag() + "' rule",
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []FieldError{{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}}
	}
	return []FieldError{{Field: "body", Message: err.Error()}}
}

// fieldPath drops the request struct name and embedded struct names from
// the validator namespace.
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) <= 1 {
		return fe.Field()
	}
	kept := parts[1:]
	out := kept[:0]
	for _, p := range kept {
		if p == "" || (p[0] >= 'A' && p[0] <= 'Z') {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return fe.Field()
	}
	return strings.Join(out, ".")
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report JSON names instead of Go names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}
