package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"gymAPI/internal/types/pagination"
	"gymAPI/middleware"
	"gymAPI/services"
)

const requestTimeout = 5 * time.Second

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads the body into dst and validates it. The returned error
// message is safe to show to clients.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return errors.New("Invalid request body")
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", fe.Field())
		case "email":
			return fmt.Errorf("%s must be a valid email", fe.Field())
		case "min":
			return fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param())
		case "oneof":
			return fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param())
		}
		return fmt.Errorf("%s is invalid", fe.Field())
	}
	return errors.New("Invalid request body")
}

func withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

// callerID returns the authenticated user id.
func callerID(ctx context.Context) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// viewer describes the caller for reads that may expose private data.
func viewer(ctx context.Context) services.Viewer {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return services.Viewer{}
	}
	return services.Viewer{ID: claims.UserID, Role: claims.Role}
}

func pageParams(r *http.Request) pagination.Params {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return pagination.Params{Page: page, Limit: limit}.Normalize()
}

func queryBool(r *http.Request, key string) *bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}

func pathVar(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}
