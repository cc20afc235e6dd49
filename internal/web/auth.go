package web

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func getAuthCredentials() (username, password string) {
	return os.Getenv("DASHBOARD_USERNAME"), os.Getenv("DASHBOARD_PASSWORD")
}

func authEnabled() bool {
	username, password := getAuthCredentials()
	return username != "" && password != ""
}

// passwordMatches accepts either a bcrypt hash (recommended) or a plain
// value in DASHBOARD_PASSWORD.
func passwordMatches(expected, got string) bool {
	if strings.HasPrefix(expected, "$2a$") || strings.HasPrefix(expected, "$2b$") || strings.HasPrefix(expected, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(expected), []byte(got)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

func basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedUser, expectedPass := getAuthCredentials()
		if expectedUser == "" || expectedPass == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(expectedUser)) != 1 || !passwordMatches(expectedPass, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Drop Dashboard"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
