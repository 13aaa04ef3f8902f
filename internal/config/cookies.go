package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Cookies splits a player's JWT between a script-readable "auth" cookie
// (header and payload) and an HttpOnly "sign" cookie (signature).
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func NewCookies(jwt *JWT) (*Cookies, error) {
	domain, ok := os.LookupEnv("COOKIES_DOMAIN")
	if !ok {
		return nil, fmt.Errorf("no COOKIES_DOMAIN env variable set")
	}
	cookies := &Cookies{
		Domain:   domain,
		Secure:   lookupOr("COOKIES_SECURE", "1") != "0",
		SameSite: parseSameSite(lookupOr("COOKIES_SAMESITE", "STRICT")),
		jwt:      jwt,
	}
	return cookies, nil
}

func NewCookiesWithJWT(domain string, jwt *JWT) *Cookies {
	return &Cookies{Domain: domain, SameSite: http.SameSiteStrictMode, jwt: jwt}
}

func (c *Cookies) cookie(name, value string, expires time.Time, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		Expires:  expires,
		HttpOnly: httpOnly,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{"auth", "sign"} {
		cookie := c.cookie(name, "delete", time.Time{}, name == "sign")
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
}

// Refresh signs claims and stores the token in the response cookies.
func (c *Cookies) Refresh(w http.ResponseWriter, claims *PlayerClaims) error {
	fresh := c.jwt.NewPlayerClaims(claims.PlayerId, claims.Username)
	token, err := c.jwt.Sign(fresh)
	if err != nil {
		return fmt.Errorf("unable to sign claims: %w", err)
	}
	header, rest, _ := strings.Cut(token, ".")
	payload, signature, ok := strings.Cut(rest, ".")
	if !ok {
		return fmt.Errorf("malformed JWT token generated")
	}
	expires := time.Now().Add(c.jwt.TokenLifetime)
	http.SetCookie(w, c.cookie("auth", header+"."+payload, expires, false))
	http.SetCookie(w, c.cookie("sign", signature, expires, true))
	return nil
}

func (c *Cookies) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	auth, err := r.Cookie("auth")
	if err != nil {
		return nil, err
	}
	sign, err := r.Cookie("sign")
	if err != nil {
		return nil, err
	}
	return c.jwt.ParsePlayerClaims(auth.Value + "." + sign.Value)
}
