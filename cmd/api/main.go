package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"talentdesk/internal/auth"
	"talentdesk/internal/config"
	"talentdesk/internal/httpserver"
	"talentdesk/internal/identity"
	"talentdesk/internal/logger"
	"talentdesk/internal/models"
	"talentdesk/internal/notify"
	"talentdesk/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	cfg, err := config.Load()
	if err != nil {
		lg.Fatalw("config load failed", "error", err)
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Admin{}, &models.Recruiter{}, &models.Applicant{},
		&models.Job{}, &models.Application{},
		&models.Ticket{}, &models.TicketUpdate{},
		&models.Session{}, &models.OutboxMessage{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedLocalAdmin(db, cfg, lg)

	relay, err := storage.NewRelay(context.Background(), cfg.Storage)
	if err != nil {
		lg.Fatalw("storage init failed", "error", err)
	}
	if relay == nil {
		lg.Infow("file storage not configured; uploads will be rejected")
	}

	dispatcher := notify.NewDispatcher(db, lg, cfg)
	dispatcher.Start()

	router := httpserver.NewRouter(db, cfg, relay, lg)
	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Infow("listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	dispatcher.Stop()
}

// seedLocalAdmin provisions a password-backed admin so the system is
// operable before OAuth is configured. The email still goes through
// the regular resolver so the role record exists.
func seedLocalAdmin(db *gorm.DB, cfg *config.Config, lg *zap.SugaredLogger) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return
	}
	lists := identity.AllowLists{AdminEmails: cfg.AdminEmails, RecruiterEmails: cfg.RecruiterEmails}
	user, err := identity.Resolve(db, cfg.SeedAdminEmail, "local", "", "Administrator", lists)
	if err != nil {
		lg.Errorw("seed admin failed", "error", err)
		return
	}
	if user.PasswordHash != nil {
		return
	}
	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		lg.Errorw("seed admin hash failed", "error", err)
		return
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("password_hash", hash).Error; err != nil {
		lg.Errorw("seed admin update failed", "error", err)
		return
	}
	lg.Infow("seeded local admin", "email", cfg.SeedAdminEmail)
}
