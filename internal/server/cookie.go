package server

import (
	"strings"
	"time"

	"feedengine/internal/config"

	"github.com/gofiber/fiber/v2"
)

// CookieConfig holds the session cookie attributes. It is built once at
// startup; issuing and clearing use the same attributes so browsers match
// the two.
type CookieConfig struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite string
	MaxAge   time.Duration
}

// NewCookieConfig derives cookie attributes from cfg. maxAge should equal the
// token lifetime.
func NewCookieConfig(cfg *config.Config, maxAge time.Duration) CookieConfig {
	name := cfg.CookieName
	if name == "" {
		name = "access_token"
	}
	return CookieConfig{
		Name:     name,
		Domain:   cfg.CookieDomain,
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteMode(cfg.CookieSameSite),
		MaxAge:   maxAge,
	}
}

func sameSiteMode(v string) string {
	switch strings.ToLower(v) {
	case "strict":
		return fiber.CookieSameSiteStrictMode
	case "none":
		return fiber.CookieSameSiteNoneMode
	default:
		return fiber.CookieSameSiteLaxMode
	}
}

// Session returns the cookie carrying token.
func (cc CookieConfig) Session(token string, now time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     cc.Name,
		Value:    token,
		Path:     "/",
		Domain:   cc.Domain,
		MaxAge:   int(cc.MaxAge.Seconds()),
		Expires:  now.Add(cc.MaxAge),
		Secure:   cc.Secure,
		HTTPOnly: true,
		SameSite: cc.SameSite,
	}
}

// Cleared returns an already-expired cookie that overwrites the session.
func (cc CookieConfig) Cleared() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     cc.Name,
		Value:    "",
		Path:     "/",
		Domain:   cc.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   cc.Secure,
		HTTPOnly: true,
		SameSite: cc.SameSite,
	}
}
