package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"talentdesk/internal/apperr"
	"talentdesk/internal/auth"
	"talentdesk/internal/config"
	"talentdesk/internal/identity"
	"talentdesk/internal/models"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const stateCookie = "oauth_state"

func allowLists(cfg *config.Config) identity.AllowLists {
	return identity.AllowLists{
		AdminEmails:     cfg.AdminEmails,
		RecruiterEmails: cfg.RecruiterEmails,
	}
}

func oauthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.BaseURL + "/v1/auth/google/callback",
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleLogin starts the OAuth code flow with a random state pinned in
// a short-lived cookie.
func GoogleLogin(cfg *config.Config, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
			respondError(w, lg, apperr.Dependencyf("oauth_not_configured", nil, "google sign-in is not configured"))
			return
		}
		buf := make([]byte, 24)
		if _, err := rand.Read(buf); err != nil {
			respondError(w, lg, apperr.Internalf(err, "could not generate state"))
			return
		}
		state := base64.RawURLEncoding.EncodeToString(buf)
		http.SetCookie(w, &http.Cookie{
			Name:     stateCookie,
			Value:    state,
			Path:     "/",
			MaxAge:   600,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, oauthConfig(cfg).AuthCodeURL(state), http.StatusSeeOther)
	}
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleCallback exchanges the code, resolves the verified email to a
// role via the allow-lists and issues a session token. Any persistence
// failure denies the sign-in.
func GoogleCallback(db *gorm.DB, cfg *config.Config, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(stateCookie)
		if err != nil || c.Value == "" || r.URL.Query().Get("state") != c.Value {
			respondError(w, lg, apperr.Unauthenticatedf("invalid_state", "oauth state mismatch"))
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			respondError(w, lg, apperr.Unauthenticatedf("missing_code", "authorization code missing"))
			return
		}
		oc := oauthConfig(cfg)
		tok, err := oc.Exchange(r.Context(), code)
		if err != nil {
			respondError(w, lg, apperr.Dependencyf("oauth_exchange_failed", err, "could not complete sign-in"))
			return
		}
		resp, err := oc.Client(r.Context(), tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
		if err != nil {
			respondError(w, lg, apperr.Dependencyf("oauth_userinfo_failed", err, "could not fetch profile"))
			return
		}
		defer resp.Body.Close()
		var info googleUserInfo
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			respondError(w, lg, apperr.Dependencyf("oauth_userinfo_failed", err, "could not decode profile"))
			return
		}
		if info.Email == "" || !info.VerifiedEmail {
			respondError(w, lg, apperr.Unauthenticatedf("unverified_email", "a verified email is required"))
			return
		}
		user, err := identity.Resolve(db, info.Email, "google", info.ID, info.Name, allowLists(cfg))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		issueSession(w, db, lg, user)
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login is the local password fallback used by the seeded admin.
func Login(db *gorm.DB, cfg *config.Config, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, lg, apperr.Validationf("bad_request", "invalid request body"))
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		var u models.User
		if err := db.First(&u, "email = ?", req.Email).Error; err != nil || u.PasswordHash == nil {
			respondError(w, lg, apperr.Unauthenticatedf("invalid_credentials", "invalid credentials"))
			return
		}
		if err := auth.CheckPassword(*u.PasswordHash, req.Password); err != nil {
			respondError(w, lg, apperr.Unauthenticatedf("invalid_credentials", "invalid credentials"))
			return
		}
		// Re-derive the role on every sign-in so allow-list edits take
		// effect immediately. The stored provider is preserved so a
		// password login never relabels an OAuth-provisioned user.
		user, err := identity.Resolve(db, u.Email, loginProvider(u), "", u.Name, allowLists(cfg))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		issueSession(w, db, lg, user)
	}
}

// loginProvider keeps the provider a user was originally provisioned
// with when they use the password fallback.
func loginProvider(u models.User) string {
	if u.Provider != "" {
		return u.Provider
	}
	return "local"
}

func issueSession(w http.ResponseWriter, db *gorm.DB, lg *zap.SugaredLogger, user models.User) {
	token, jti, expiresAt, err := auth.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(w, lg, apperr.Internalf(err, "could not sign token"))
		return
	}
	sess := models.Session{JTI: jti, UserID: user.ID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	if err := db.Create(&sess).Error; err != nil {
		respondError(w, lg, apperr.Dependencyf("db_error", err, "could not create session"))
		return
	}
	respondJSON(w, map[string]any{"token": token, "user": user})
}

func Logout(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		now := time.Now()
		_ = db.Model(&models.Session{}).Where("jti = ?", claims.JWTID).Update("revoked_at", now).Error
		respondJSON(w, map[string]any{"ok": true})
	}
}

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := auth.Subject(r.Context())
		var u models.User
		if err := db.First(&u, "id = ?", sub).Error; err != nil {
			respondError(w, lg, apperr.NotFoundf("user_not_found", "user not found"))
			return
		}
		respondJSON(w, u)
	}
}
