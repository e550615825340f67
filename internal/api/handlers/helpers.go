package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Share-Backend/internal/validation"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is required")

// parseJSON decodes the request body into T. Bodies over 1 MiB and trailing
// data after the JSON value are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	if r.Body == nil {
		return req, errEmptyBody
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errEmptyBody
		}
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	if decoder.More() {
		return req, errors.New("invalid JSON: unexpected data after body")
	}

	return req, nil
}

// respondValidation answers 400 with the per-field messages when err is a
// validation.Error, and with its text otherwise.
func respondValidation(w http.ResponseWriter, err error) {
	var ve *validation.Error
	if errors.As(err, &ve) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", ve.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}
