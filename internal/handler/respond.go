package handler

import (
	"encoding/json"
	"net/http"

	"github.com/AlexZinkM/trader-ranker/internal/model"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 4 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	http.Error(w, "Method not allowed. Should be "+allowed, http.StatusMethodNotAllowed)
}
