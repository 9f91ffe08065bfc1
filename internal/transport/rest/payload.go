package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/abgdnv/productcrud/internal/service"
	"github.com/abgdnv/productcrud/pkg/web"
	"github.com/go-playground/validator/v10"
)

// productPayload is the request body of create and update.
// Pointers tell a missing key apart from a zero value; only presence is validated.
// A null value leaves the pointer nil and is reported as a missing field.
type productPayload struct {
	Name        *looseString `json:"name"        validate:"required"`
	Description *looseString `json:"description" validate:"required"`
	Price       *looseInt    `json:"price"       validate:"required"`
}

func (p productPayload) toDto() service.ProductCreateDto {
	return service.ProductCreateDto{
		Name:        string(*p.Name),
		Description: string(*p.Description),
		Price:       int64(*p.Price),
	}
}

var (
	int64Type  = reflect.TypeOf(int64(0))
	stringType = reflect.TypeOf("")
)

// looseInt accepts an integral JSON number (10 or 10.0) or a string holding an integer ("10").
type looseInt int64

func (i *looseInt) UnmarshalJSON(data []byte) error {
	v, err := decodeScalar(data)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case json.Number:
		if n, ok := integral(string(t)); ok {
			*i = looseInt(n)
			return nil
		}
		return &json.UnmarshalTypeError{Value: "number " + string(t), Type: int64Type}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			*i = looseInt(n)
			return nil
		}
		return &json.UnmarshalTypeError{Value: "string", Type: int64Type}
	default:
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: int64Type}
	}
}

// looseString accepts a JSON string or a number, kept as its literal text.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	v, err := decodeScalar(data)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*s = looseString(t)
		return nil
	case json.Number:
		*s = looseString(t.String())
		return nil
	default:
		return &json.UnmarshalTypeError{Value: jsonKind(data), Type: stringType}
	}
}

func decodeScalar(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// integral parses a JSON number literal that has no fractional part and fits in int64.
func integral(lit string) (int64, bool) {
	if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func jsonKind(data []byte) string {
	switch bytes.TrimSpace(data)[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	default:
		return "value"
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeProduct reads and type-checks the body. On failure it writes a 422 response and returns false.
func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (service.ProductCreateDto, bool) {
	var payload productPayload
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&payload); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondValidationErrors(w, h.logger, []web.ValidationError{decodeError(err)})
		return service.ProductCreateDto{}, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "Trailing data after request body", "error", err)
		web.RespondValidationErrors(w, h.logger, []web.ValidationError{malformedBody})
		return service.ProductCreateDto{}, false
	}

	if err := h.validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			h.logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
			web.RespondValidationErrors(w, h.logger, []web.ValidationError{{
				Loc: []string{"body"}, Msg: "invalid request body", Type: "value_error",
			}})
			return service.ProductCreateDto{}, false
		}
		errs := make([]web.ValidationError, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			errs = append(errs, web.ValidationError{
				Loc:  []string{"body", fieldErr.Field()},
				Msg:  "field required",
				Type: "value_error.missing",
			})
		}
		h.logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errs)
		web.RespondValidationErrors(w, h.logger, errs)
		return service.ProductCreateDto{}, false
	}

	return payload.toDto(), true
}

var malformedBody = web.ValidationError{Loc: []string{"body"}, Msg: "Expecting value", Type: "value_error.jsondecode"}

// decodeError converts a json decoding failure into a single validation error.
func decodeError(err error) web.ValidationError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return web.ValidationError{Loc: []string{"body"}, Msg: "field required", Type: "value_error.missing"}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		ve := web.ValidationError{Loc: []string{"body", typeErr.Field}}
		switch typeErr.Type.Kind() {
		case reflect.String:
			ve.Msg, ve.Type = "str type expected", "type_error.str"
		default:
			ve.Msg, ve.Type = "value is not a valid integer", "type_error.integer"
		}
		return ve
	case errors.As(err, &typeErr):
		return web.ValidationError{Loc: []string{"body"}, Msg: "value is not a valid dict", Type: "type_error.dict"}
	default:
		return malformedBody
	}
}
