package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"jobseeker/internal/auth"
	"jobseeker/internal/tracker"

	"github.com/jackc/pgx/v5/pgconn"
)

type JobHandler struct {
	Svc *tracker.Service
}

// jobID accepts both 12 and "12".
type jobID uint64

func (id *jobID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	b = bytes.Trim(b, `"`)
	n, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid job_id: %w", err)
	}
	*id = jobID(n)
	return nil
}

type jobReq struct {
	Username string `json:"username"`
	SignedIn bool   `json:"signedIn"`

	Job                tracker.JobInput  `json:"job"`
	JobID              jobID             `json:"job_id"`
	UpdatedInformation tracker.JobUpdate `json:"updated_information"`
	Filter             string            `json:"filter"`
	Format             string            `json:"format"`
}

// caller builds the identity the service sees. A verified session for a
// different user than the one named in the body does not count as signed in.
func (req jobReq) caller(r *http.Request) tracker.Caller {
	c := tracker.Caller{Username: req.Username, SignedIn: req.SignedIn}
	if s, ok := auth.SessionFromContext(r.Context()); ok && s.Username != req.Username {
		c.SignedIn = false
	}
	return c
}

func decodeJobReq(w http.ResponseWriter, r *http.Request) (jobReq, bool) {
	var req jobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "", "bad json")
		return req, false
	}
	return req, true
}

func errorDetail(err error, username string) string {
	switch {
	case errors.Is(err, tracker.ErrNotSignedIn):
		return "You are not signed in"
	case errors.Is(err, tracker.ErrUserNotFound):
		return fmt.Sprintf("User: %s does not exist", username)
	case errors.Is(err, tracker.ErrJobNotFound):
		return "Job does not exist or access is denied"
	case errors.Is(err, tracker.ErrStoreWrite):
		log.Printf("store write for %q: %v\n", username, err)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return pgErr.Detail
		}
		return strings.TrimPrefix(err.Error(), tracker.ErrStoreWrite.Error()+": ")
	default:
		return err.Error()
	}
}

func (h *JobHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJobReq(w, r)
	if !ok {
		return
	}

	j, err := h.Svc.AddJob(r.Context(), req.caller(r), req.Job)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"username": req.Username,
			"success":  false,
			"detail":   errorDetail(err, req.Username),
			"job":      req.Job,
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"username": req.Username,
		"success":  true,
		"detail":   "Job added",
		"job":      j,
	})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJobReq(w, r)
	if !ok {
		return
	}

	upd, err := h.Svc.UpdateJob(r.Context(), req.caller(r), uint64(req.JobID), req.UpdatedInformation)
	if err != nil {
		fail(w, req.Username, errorDetail(err, req.Username))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
		"success":  true,
		"detail":   fmt.Sprintf("Job with id: %d updated", req.JobID),
		"job":      upd,
	})
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJobReq(w, r)
	if !ok {
		return
	}

	if err := h.Svc.DeleteJob(r.Context(), req.caller(r), uint64(req.JobID)); err != nil {
		fail(w, req.Username, errorDetail(err, req.Username))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
		"success":  true,
		"detail":   fmt.Sprintf("Job with id: %d deleted", req.JobID),
	})
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJobReq(w, r)
	if !ok {
		return
	}

	jobs, err := h.Svc.ListJobs(r.Context(), req.caller(r), req.Filter)
	if err != nil {
		fail(w, req.Username, errorDetail(err, req.Username))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
		"success":  true,
		"result":   jobs,
	})
}

func (h *JobHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJobReq(w, r)
	if !ok {
		return
	}

	if _, err := h.Svc.Refresh(r.Context(), req.caller(r)); err != nil {
		fail(w, req.Username, errorDetail(err, req.Username))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
		"success":  true,
	})
}

func (h *JobHandler) Stats(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJobReq(w, r)
	if !ok {
		return
	}

	counts, err := h.Svc.Stats(r.Context(), req.caller(r))
	if err != nil {
		fail(w, req.Username, errorDetail(err, req.Username))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": req.Username,
		"success":  true,
		"counts":   counts,
	})
}
