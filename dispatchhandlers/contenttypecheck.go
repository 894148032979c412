package dispatchhandlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/hashmux/hashmux/dispatch"
)

// ErrNoAllowedTypes is returned when ContentTypeCheckConfig.AllowedTypes is
// empty.
var ErrNoAllowedTypes = errors.New("content type check: at least one allowed content type is required")

// ContentTypeCheckConfig configures the Content-Type Check middleware behaviour.
type ContentTypeCheckConfig struct {
	// AllowedTypes is the set of acceptable Content-Type values.
	// Matching is case-insensitive and ignores parameters
	// (e.g. "application/json" matches "application/json; charset=utf-8").
	// Required; at least one must be provided.
	AllowedTypes []string

	// Methods is the set of HTTP methods that require Content-Type
	// validation. When nil, defaults to POST, PUT, PATCH.
	Methods []string
}

// defaultCheckedMethods is the set of HTTP methods that require Content-Type
// validation when Methods is nil.
var defaultCheckedMethods = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
}

// ContentTypeCheckMiddleware returns a middleware that validates the
// Content-Type header on requests with matching methods, answering 415
// when the header is missing or not among the allowed types. Unlike the
// content package's decoder lookup, which uses the header verbatim, this
// gate parses the media type and ignores its parameters.
//
// It returns ErrNoAllowedTypes if AllowedTypes is empty.
func ContentTypeCheckMiddleware(cfg ContentTypeCheckConfig) (dispatch.Middleware, error) {
	if len(cfg.AllowedTypes) == 0 {
		return nil, ErrNoAllowedTypes
	}

	methods := cfg.Methods
	if methods == nil {
		methods = defaultCheckedMethods
	}

	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}

	allowedSet := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowedSet[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	return func(next dispatch.Handler) dispatch.Handler {
		return func(ctx *dispatch.Context) (*dispatch.Response, error) {
			if _, check := methodSet[ctx.Request.Method]; check {
				ct := ctx.Request.Header.Get("Content-Type")
				if ct == "" {
					return unsupportedMediaType(), nil
				}

				mediaType, _, err := mime.ParseMediaType(ct)
				if err != nil {
					return unsupportedMediaType(), nil
				}

				if _, ok := allowedSet[strings.ToLower(mediaType)]; !ok {
					return unsupportedMediaType(), nil
				}
			}

			return next(ctx)
		}
	}, nil
}

func unsupportedMediaType() *dispatch.Response {
	return dispatch.Text(http.StatusUnsupportedMediaType, http.StatusText(http.StatusUnsupportedMediaType))
}
