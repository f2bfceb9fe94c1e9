package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T, modify func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if modify != nil {
		modify(req)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestNew_UnknownMode(t *testing.T) {
	if _, err := New("telepathy", ""); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestNew_DefaultsToBearer(t *testing.T) {
	carrier, err := New("", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if carrier.Mode() != ModeBearer {
		t.Fatalf("expected bearer mode, got %s", carrier.Mode())
	}
}

func TestBearerCarrier_Extract(t *testing.T) {
	carrier := &BearerCarrier{}

	c, _ := newContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer tok123")
	})
	tok, ok := carrier.Extract(c)
	if !ok || tok != "tok123" {
		t.Fatalf("expected tok123, got %q ok=%v", tok, ok)
	}

	c, _ = newContext(t, nil)
	if _, ok := carrier.Extract(c); ok {
		t.Fatalf("expected no token without header")
	}

	c, _ = newContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Token abc")
	})
	if _, ok := carrier.Extract(c); ok {
		t.Fatalf("expected no token for non-bearer scheme")
	}
}

func TestCookieCarrier_RoundTrip(t *testing.T) {
	carrier := &CookieCarrier{Domain: "example.com"}

	c, rec := newContext(t, nil)
	carrier.Attach(c, "tok456")

	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != CookieName || ck.Value != "tok456" {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if ck.Path != "/" || ck.Domain != "example.com" || ck.MaxAge != 86400 {
		t.Fatalf("unexpected cookie attributes: %+v", ck)
	}
	if !ck.Secure || !ck.HttpOnly {
		t.Fatalf("cookie must be Secure and HttpOnly: %+v", ck)
	}

	c, _ = newContext(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok456"})
	})
	tok, ok := carrier.Extract(c)
	if !ok || tok != "tok456" {
		t.Fatalf("expected tok456, got %q ok=%v", tok, ok)
	}
}

func TestCookieCarrier_ExtractMissing(t *testing.T) {
	carrier := &CookieCarrier{Domain: "example.com"}
	c, _ := newContext(t, nil)
	if _, ok := carrier.Extract(c); ok {
		t.Fatalf("expected no token without cookie")
	}
}
