package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName matches the marker the public site has always used.
	CookieName = "adminAuth"
	// SessionTTL is the fixed lifetime of an issued session marker.
	SessionTTL = 7 * 24 * time.Hour

	adminPrefix = "/admin"
	loginPath   = "/admin/login"
)

// MintToken builds an opaque session marker that expires at the given
// moment: "<unix>.<base64(hmac-sha256(unix, secret))>". The marker carries
// no identity, only proof that the shared secret was presented.
func MintToken(expires time.Time, secret string) string {
	exp := strconv.FormatInt(expires.Unix(), 10)
	return exp + "." + sign(exp, secret)
}

// Verify reports whether the token is well formed, untampered, and not yet
// expired at the given moment. Pure: same inputs, same answer.
func Verify(token string, now time.Time, secret string) bool {
	exp, sig, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	if !hmac.Equal([]byte(sig), []byte(sign(exp, secret))) {
		return false
	}
	unix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return false
	}
	return now.Unix() < unix
}

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CheckSecret compares a candidate password against the configured secret.
// The hash form (bcrypt) wins when both are configured. With neither
// configured it fails closed: every candidate is rejected.
func CheckSecret(candidate, plain, hash string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
	}
	if plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(plain)) == 1
}

// Configured reports whether any admin secret is set at all. Callers use
// it to distinguish "wrong password" from "authentication not configured".
func Configured(plain, hash string) bool { return plain != "" || hash != "" }

// CreateSession sets the HTTP-only session cookie with the fixed TTL.
func CreateSession(w http.ResponseWriter, now time.Time, secret string) {
	expires := now.Add(SessionTTL)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    MintToken(expires, secret),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Expires:  expires,
	})
}

// ClearSession deletes the session cookie immediately.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteStrictMode})
}

// FromRequest reports whether the request carries a valid session marker.
func FromRequest(r *http.Request, now time.Time, secret string) bool {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return false
	}
	return Verify(c.Value, now, secret)
}

// Gate protects the /admin prefix. Unauthenticated requests to any admin
// path other than the login page are redirected to the login page; an
// authenticated visit to the login page is bounced to the admin landing.
// JSON clients get a bare 401 instead of a redirect.
func Gate(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if !strings.HasPrefix(path, adminPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		isLogin := strings.HasPrefix(path, loginPath)
		authed := FromRequest(r, time.Now(), secret)
		if !isLogin && !authed {
			accept := r.Header.Get("Accept")
			if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
				w.WriteHeader(http.StatusUnauthorized)
				if _, werr := w.Write([]byte(`{"error":"unauthorized"}`)); werr != nil {
					_ = werr
				}
				return
			}
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		if isLogin && authed {
			http.Redirect(w, r, adminPrefix, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
