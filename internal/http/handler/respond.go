package handler

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, username, detail string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"username": username,
		"success":  false,
		"detail":   detail,
	})
}
