package http

import (
	"net/http"

	"jobseeker/internal/auth"
	"jobseeker/internal/config"
	"jobseeker/internal/http/handler"
	mw "jobseeker/internal/http/middleware"
	"jobseeker/internal/tracker"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, jobSvc *tracker.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/", handler.Root)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{Svc: &auth.Service{DB: db, JWT: jwtSvc}}
	r.Post("/register", ah.Register)
	r.Post("/signin", ah.SignIn)

	jh := &handler.JobHandler{Svc: jobSvc}
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtSvc, cfg.AuthRequireToken))

		r.Post("/add", jh.Add)
		r.Put("/update", jh.Update)
		r.Delete("/delete", jh.Delete)
		r.Post("/jobs", jh.List)
		r.Post("/refresh", jh.Refresh)
		r.Post("/stats", jh.Stats)
		r.Post("/export", jh.Export)
	})

	return r
}
