// Package session decides how the identity token travels between client and
// server. Exactly one transport strategy is active per process, selected from
// configuration at startup: bearer (Authorization header, token in the login
// response body) or cookie (HttpOnly session cookie).
package session

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Mode names a transport strategy.
type Mode string

const (
	ModeBearer Mode = "bearer"
	ModeCookie Mode = "cookie"
)

// CookieName is the session cookie set in cookie mode.
const CookieName = "_sessionUser"

// cookieMaxAge is the session cookie lifetime in seconds.
const cookieMaxAge = 86400

// Carrier transports the token to and from the client.
type Carrier interface {
	Mode() Mode
	// Extract pulls the token out of the request. ok is false when the
	// request carries no token at all.
	Extract(c echo.Context) (token string, ok bool)
	// Attach places the token on the response. A no-op in bearer mode, where
	// the token travels in the response body instead.
	Attach(c echo.Context, token string)
}

// New returns the carrier for the configured mode. cookieDomain is only used
// in cookie mode.
func New(mode string, cookieDomain string) (Carrier, error) {
	switch Mode(mode) {
	case ModeBearer, "":
		return &BearerCarrier{}, nil
	case ModeCookie:
		return &CookieCarrier{Domain: cookieDomain}, nil
	default:
		return nil, fmt.Errorf("session: unknown mode %q", mode)
	}
}

// BearerCarrier reads the token from the Authorization header. The client is
// expected to replay the accessToken from the login response as
// "Authorization: Bearer <token>".
type BearerCarrier struct{}

func (b *BearerCarrier) Mode() Mode { return ModeBearer }

func (b *BearerCarrier) Extract(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func (b *BearerCarrier) Attach(echo.Context, string) {}

// CookieCarrier stores the token in an HttpOnly, Secure session cookie pinned
// to the deployment host.
type CookieCarrier struct {
	Domain string
}

func (cc *CookieCarrier) Mode() Mode { return ModeCookie }

func (cc *CookieCarrier) Extract(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (cc *CookieCarrier) Attach(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   cc.Domain,
		MaxAge:   cookieMaxAge,
		Secure:   true,
		HttpOnly: true,
	})
}
