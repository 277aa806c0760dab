package httputil

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/iamasit07/4-in-a-row/solo/internal/config"
)

const SessionCookieName = "session_token"

// SetSessionCookie stores the session token for browser clients, which cannot
// set headers on a websocket upgrade.
func SetSessionCookie(w http.ResponseWriter, token string) {
	isProduction := config.GetEnv("ENVIRONMENT", "development") == "production"

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.SessionTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	}

	// SameSite=None requires Secure=true
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, cookie)
}

func GetSessionCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", errors.Wrap(err, "session cookie")
	}
	if cookie.Value == "" {
		return "", errors.New("session cookie is empty")
	}
	return cookie.Value, nil
}
