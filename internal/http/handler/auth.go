package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"jobseeker/internal/auth"
)

type AuthHandler struct {
	Svc *auth.Service
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "", "bad json")
		return
	}

	if _, err := h.Svc.Register(r.Context(), req.Username, req.Password); err != nil {
		detail := err.Error()
		var regErr *auth.RegistrationError
		if errors.As(err, &regErr) {
			detail = regErr.Detail
		}
		fail(w, req.Username, detail)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"username": req.Username,
		"success":  true,
		"detail":   fmt.Sprintf("User: %s created", req.Username),
	})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "", "bad json")
		return
	}

	_, token, err := h.Svc.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("signin %q: %v\n", req.Username, err)
		}
		fail(w, req.Username, "signin failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
		"success":  true,
		"detail":   "signin successful",
		"token":    token,
	})
}
