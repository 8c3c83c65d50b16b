package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/honeycarbs/jobmarket-tracker/internal/errors"
)

// intParam reads an optional integer query parameter bounded to [lo, hi]
func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.Invalidf("%s must be an integer, got %q", name, raw)
	}
	if v < lo || v > hi {
		return 0, apperrors.Invalidf("%s must be between %d and %d", name, lo, hi)
	}
	return v, nil
}

func role(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("role"))
}
