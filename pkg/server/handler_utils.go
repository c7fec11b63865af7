package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rendetalje/friday/pkg/models"
)

// APIError represents an error response. Used for swagger documentation.
type APIError struct {
	Message string `json:"message"`
}

var validate = validator.New()

// extractQueryStringValueToInt extracts a query string value and converts it to an int64
// if it is not empty. If the value is empty, it returns 0.
func extractQueryStringValueToInt(
	r *http.Request,
	param string,
) (int64, error) {
	p := r.URL.Query().Get(param)
	if p == "" {
		return 0, nil
	}
	pInt, err := strconv.ParseInt(p, 10, 64)
	if err != nil {
		return 0, err
	}
	return pInt, nil
}

// encodeJSON encodes data into JSON and writes it to the response writer.
func encodeJSON(w http.ResponseWriter, data interface{}) error {
	return json.NewEncoder(w).Encode(data)
}

// decodeAndValidateJSON decodes a JSON request body into the provided struct
// and validates it against its `validate` tags.
func decodeAndValidateJSON(r *http.Request, data interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return err
	}
	return validate.Struct(data)
}

// renderError renders an error response.
func renderError(w http.ResponseWriter, err error, status int) {
	if status != http.StatusNotFound {
		// Don't log not found errors
		log.Error(err)
	}
	if _, ok := err.(validator.ValidationErrors); ok {
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

// parseIDFromURL parses a numeric ID from a URL parameter. If the ID is
// invalid, an error is rendered and 0 is returned.
func parseIDFromURL(r *http.Request, w http.ResponseWriter, paramName string) int64 {
	idStr := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		renderError(
			w,
			fmt.Errorf("unable to parse %s: %q is not a valid id", paramName, idStr),
			http.StatusBadRequest,
		)
		return 0
	}
	return id
}

// requireQueryUserID extracts a mandatory user_id query parameter.
func requireQueryUserID(r *http.Request, w http.ResponseWriter) int64 {
	userID, err := extractQueryStringValueToInt(r, "user_id")
	if err != nil || userID <= 0 {
		renderError(
			w,
			fmt.Errorf("user_id query parameter is required"),
			http.StatusBadRequest,
		)
		return 0
	}
	return userID
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
