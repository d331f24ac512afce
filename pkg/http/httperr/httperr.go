package httperr

import (
	"encoding/json"
	"net/http"
)

// Machine-readable error kinds returned in every error body.
const (
	KindBadRequest   = "bad_request"
	KindUnauthorized = "unauthorized"
	KindNotFound     = "not_found"
	KindInternal     = "internal"
)

// Response is the error body shape: {"error":{"kind":"...","message":"..."}}.
type Response struct {
	Error Detail `json:"error"`
}

type Detail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Write emits a structured error response.
func Write(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Error: Detail{Kind: kind, Message: message}})
}

func BadRequest(w http.ResponseWriter, message string) {
	Write(w, http.StatusBadRequest, KindBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Write(w, http.StatusUnauthorized, KindUnauthorized, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Write(w, http.StatusNotFound, KindNotFound, message)
}

func Internal(w http.ResponseWriter, message string) {
	Write(w, http.StatusInternalServerError, KindInternal, message)
}
