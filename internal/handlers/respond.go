package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps typed service errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}

func statusFor(err error) int {
	var validationErr *apperrors.ErrValidation
	var notFound *apperrors.ErrNotFound
	var parseErr *apperrors.ParseError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &apperrors.ErrValidation{Field: "id", Message: "invalid id " + raw}
	}
	return uint(id), nil
}

// queryUint reads an optional positive integer parameter.
func queryUint(r *http.Request, name string) (*uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, &apperrors.ErrValidation{Field: name, Message: "must be a positive integer"}
	}
	u := uint(v)
	return &u, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &apperrors.ErrValidation{Field: name, Message: "must be an integer"}
	}
	return v, nil
}

func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, &apperrors.ErrValidation{Field: name, Message: "must be YYYY-MM-DD"}
	}
	return &d, nil
}
