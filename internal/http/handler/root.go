package handler

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobseeker/internal/tracker"

	"github.com/google/uuid"
)

const maxMockJobs = 100

// Root answers the liveness probe front ends use. With ?number=N it returns
// N made-up jobs so a client can be built without a database.
func Root(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("number")))
	if err != nil || n <= 0 {
		writeJSON(w, http.StatusOK, "The API is working!")
		return
	}
	if n > maxMockJobs {
		n = maxMockJobs
	}
	writeJSON(w, http.StatusOK, mockJobs(n, time.Now()))
}

var mockCompanies = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries"}
var mockTitles = []string{"Backend Engineer", "Site Reliability Engineer", "Data Engineer", "Platform Engineer"}

func mockJobs(n int, now time.Time) []tracker.Job {
	out := make([]tracker.Job, 0, n)
	for i := 0; i < n; i++ {
		modified := tracker.FormatDate(now.AddDate(0, 0, -i))
		out = append(out, tracker.Job{
			ID:           uint64(i + 1),
			Title:        mockTitles[rand.Intn(len(mockTitles))],
			Company:      mockCompanies[rand.Intn(len(mockCompanies))],
			Notes:        fmt.Sprintf("mock job %d", i+1),
			Link:         "https://jobs.example.com/" + uuid.NewString(),
			DateCreated:  modified,
			LastModified: modified,
			Active:       true,
			Category:     tracker.Categories[rand.Intn(len(tracker.Categories))],
		})
	}
	return out
}
