package httpserver

import (
	"net/http"

	"talentdesk/internal/auth"
	"talentdesk/internal/config"
	"talentdesk/internal/httpserver/handlers"
	"talentdesk/internal/models"
	"talentdesk/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, cfg *config.Config, relay *storage.Relay, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Get("/v1/auth/google", handlers.GoogleLogin(cfg, lg))
	r.Get("/v1/auth/google/callback", handlers.GoogleCallback(db, cfg, lg))
	r.Post("/v1/auth/login", handlers.Login(db, cfg, lg))

	// Job listings are the only public resource.
	r.Get("/v1/jobs", handlers.ListJobs(db, lg))
	r.Get("/v1/jobs/{jobID}", handlers.GetJob(db, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(db, lg))
		protected.Get("/v1/me", handlers.Me(db, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(db))

		protected.Group(func(recruiter chi.Router) {
			recruiter.Use(auth.RequireRole(models.RoleRecruiter))
			recruiter.Post("/v1/jobs", handlers.CreateJob(db, lg))
			recruiter.Put("/v1/jobs/{jobID}", handlers.UpdateJob(db, lg))
			recruiter.Delete("/v1/jobs/{jobID}", handlers.DeleteJob(db, lg))
			recruiter.Get("/v1/jobs/{jobID}/applications", handlers.ListJobApplications(db, lg))
			recruiter.Put("/v1/applications/{id}/status", handlers.UpdateApplicationStatus(db, lg))
		})

		protected.Group(func(applicant chi.Router) {
			applicant.Use(auth.RequireRole(models.RoleApplicant))
			applicant.Post("/v1/applications", handlers.CreateApplication(db, relay, lg))
			applicant.Get("/v1/applications", handlers.ListMyApplications(db, lg))
		})

		protected.Post("/v1/tickets", handlers.CreateTicket(db, relay, lg))
		protected.Get("/v1/tickets", handlers.ListTickets(db, lg))
		protected.Get("/v1/tickets/{id}", handlers.GetTicket(db, lg))
		protected.Get("/v1/tickets/{id}/updates", handlers.ListTicketUpdates(db, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(models.RoleAdmin))
			admin.Patch("/v1/tickets/{id}", handlers.UpdateTicketStatus(db, lg))
		})

		protected.Get("/v1/files/resumes/{key}", handlers.GetResume(db, relay, lg))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
