package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/romanch203/DataConverterPro/pipeline"
	"github.com/romanch203/DataConverterPro/store"
)

// errorEnvelope is the uniform JSON error body.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: code, Message: message})
}

// writeConversionError maps classified pipeline failures onto HTTP
// statuses. Total extraction failure is a client-visible 422, not an
// empty success.
func writeConversionError(w http.ResponseWriter, err error) {
	kind := pipeline.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case pipeline.FailureMalformedInput:
		status = http.StatusBadRequest
	case pipeline.FailureNoData:
		status = http.StatusUnprocessableEntity
	case pipeline.FailureBackend, pipeline.FailureStructural:
		status = http.StatusUnprocessableEntity
	}

	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the size limit")
		return
	}

	writeError(w, status, string(kind), err.Error())
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", "conversion not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", "ledger lookup failed")
}
