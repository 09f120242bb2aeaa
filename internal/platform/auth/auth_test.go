package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func withRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, UserRolesKey, roles)
}

func signToken(t *testing.T, key []byte, subject string, roles []string) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	key := []byte("test-signing-key")
	e := echo.New()

	var gotUserID string
	var gotRoles []string
	h := JWTMiddleware(JWTConfig{SigningKey: key})(func(c echo.Context) error {
		gotUserID = UserIDFromContext(c.Request().Context())
		gotRoles = RolesFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, key, "user-42", []string{"nurse"}))
	rec := httptest.NewRecorder()

	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserID != "user-42" {
		t.Errorf("expected subject user-42, got %q", gotUserID)
	}
	if len(gotRoles) != 1 || gotRoles[0] != "nurse" {
		t.Errorf("expected roles [nurse], got %v", gotRoles)
	}
}

func TestJWTMiddleware_RejectsMissingAndMalformed(t *testing.T) {
	key := []byte("test-signing-key")
	e := echo.New()
	h := JWTMiddleware(JWTConfig{SigningKey: key})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		err := h(e.NewContext(req, rec))
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %v", name, err)
		}
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	cases := []struct {
		name     string
		roles    []string
		required []string
		allowed  bool
	}{
		{"exact match", []string{"nurse"}, []string{"nurse"}, true},
		{"admin passes any check", []string{"admin"}, []string{"manager"}, true},
		{"caregiver denied", []string{"caregiver"}, []string{"nurse", "manager"}, false},
		{"no roles denied", nil, []string{"nurse"}, false},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		mw := RequireRole(tc.required...)(ok)
		ctx := c.Request().Context()
		if tc.roles != nil {
			c.SetRequest(c.Request().WithContext(withRoles(ctx, tc.roles)))
		}

		err := mw(c)
		if tc.allowed && err != nil {
			t.Errorf("%s: expected access, got %v", tc.name, err)
		}
		if !tc.allowed {
			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusForbidden {
				t.Errorf("%s: expected 403, got %v", tc.name, err)
			}
		}
	}
}

func TestIsPrivileged(t *testing.T) {
	cases := []struct {
		roles []string
		want  bool
	}{
		{[]string{"admin"}, true},
		{[]string{"nurse"}, true},
		{[]string{"manager"}, true},
		{[]string{"caregiver"}, false},
		{nil, false},
		{[]string{"caregiver", "nurse"}, true},
	}
	for _, tc := range cases {
		if got := IsPrivileged(tc.roles); got != tc.want {
			t.Errorf("IsPrivileged(%v) = %v, want %v", tc.roles, got, tc.want)
		}
	}
}
