package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/keepers-bakery/pkg/errors"
)

// QueryInt reads an integer query parameter bounded to [min, max]. A missing
// parameter yields def.
func QueryInt(r *http.Request, key string, def, min, max int) (int, error) {
	raw := QueryString(r, key, 0)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError(key, "must be an integer")
	}
	if value < min || value > max {
		return 0, fieldError(key, "out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// QueryBool reads an optional boolean filter. nil means the shopper did not
// ask for it.
func QueryBool(r *http.Request, key string) (*bool, error) {
	raw := QueryString(r, key, 0)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fieldError(key, "must be a boolean")
	}
	return &value, nil
}

// QueryString returns the trimmed parameter, cut to maxLen bytes when maxLen > 0.
func QueryString(r *http.Request, key string, maxLen int) string {
	return truncate(strings.TrimSpace(r.URL.Query().Get(key)), maxLen)
}

func truncate(value string, maxLen int) string {
	if maxLen > 0 && len(value) > maxLen {
		return value[:maxLen]
	}
	return value
}

func fieldError(key, problem string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, key+" "+problem).WithDetails(map[string]any{"field": key})
}
