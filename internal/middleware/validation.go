package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "bpmsclient/internal/errors"
)

// DefaultMaxBodySize bounds JSON request bodies
const DefaultMaxBodySize int64 = 1 << 20

// Validator decodes JSON request bodies and checks them against validate tags.
// Field names in errors use the json tag.
type Validator struct {
	validate    *validator.Validate
	logger      *slog.Logger
	maxBodySize int64
}

// NewValidator creates a validator. maxBodySize <= 0 uses DefaultMaxBodySize.
func NewValidator(logger *slog.Logger, maxBodySize int64) *Validator {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("filename", isValidFilename)

	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		validate:    v,
		logger:      logger.With(slog.String("component", "validation")),
		maxBodySize: maxBodySize,
	}
}

// Decode reads r's JSON body into dst and validates it. Returned errors are
// *apierrors.APIError or *http.MaxBytesError, both understood by the error handler.
func (v *Validator) Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return apierrors.ErrInvalidRequest.WithDetails("request body is empty")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, v.maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytes):
			return maxBytes
		case errors.Is(err, io.EOF):
			return apierrors.ErrInvalidRequest.WithDetails("request body is empty")
		default:
			v.logger.DebugContext(r.Context(), "rejected request body", slog.String("error", err.Error()))
			return apierrors.InvalidRequestWithError(err)
		}
	}
	if dec.More() {
		return apierrors.ErrInvalidRequest.WithDetails("request body must contain a single JSON value")
	}

	return v.Struct(dst)
}

// Struct validates an already populated value
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return apierrors.FromValidator(err)
	}
	return nil
}

// ContentTypeValidator rejects bodies whose media type is not one of contentTypes
func ContentTypeValidator(errorHandler *apierrors.ErrorHandler, contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead ||
				r.Method == http.MethodDelete || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Content-Type")
			if header == "" {
				errorHandler.HandleError(w, r, apierrors.New(
					http.StatusBadRequest,
					"MISSING_CONTENT_TYPE",
					"Content-Type header is required",
				))
				return
			}

			mediaType, _, err := mime.ParseMediaType(header)
			if err == nil {
				for _, allowed := range contentTypes {
					if strings.EqualFold(mediaType, allowed) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE",
				fmt.Sprintf("Unsupported content type %q", header),
				map[string]interface{}{
					"content_type": header,
					"allowed":      contentTypes,
				},
			))
		})
	}
}

// isValidFilename rejects names carrying path separators or traversal
func isValidFilename(fl validator.FieldLevel) bool {
	filename := fl.Field().String()
	if filename == "" {
		return false
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return false
	}
	return len(filename) <= 255
}
