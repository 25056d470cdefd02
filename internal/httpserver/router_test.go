package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"storefront/internal/domain"
)

func TestBuildRouter_RequiresServices(t *testing.T) {
	if _, err := buildRouter(logDiscard(), Deps{}, nil); err == nil {
		t.Fatalf("expected error for missing services")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, testDeps())
	rec := doRequest(router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	ok := ReadinessCheck{Name: "postgres", Ping: func(context.Context) error { return nil }}
	down := ReadinessCheck{Name: "mongo", Ping: func(context.Context) error { return errors.New("no reachable servers") }}

	cases := []struct {
		name   string
		checks []ReadinessCheck
		want   int
	}{
		{"all up", []ReadinessCheck{ok}, http.StatusOK},
		{"one down", []ReadinessCheck{ok, down}, http.StatusServiceUnavailable},
		{"unconfigured", nil, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := testDeps()
			deps.Checks = tc.checks
			rec := doRequest(newTestRouter(t, deps), http.MethodGet, "/readyz", "", "")
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, testDeps())
	req := newPreflight("http://localhost:4200")
	rec := serve(router, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:4200" {
		t.Fatalf("unexpected allow-origin %q", got)
	}

	rec = serve(router, newPreflight("http://evil.test"))
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin for foreign origin %q", got)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := newTestRouter(t, testDeps())

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + userToken, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + userToken, http.StatusOK},
		{"lowercase scheme", "bearer " + userToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := newRequest(http.MethodGet, "/api/auth/me")
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := serve(router, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
			if tc.want == http.StatusUnauthorized {
				if body := decodeError(t, rec); body.Kind != "Unauthenticated" || body.Success {
					t.Fatalf("unexpected error body %+v", body)
				}
			}
		})
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		err  error
		code int
		kind string
	}{
		{domain.Invalid("name required"), http.StatusBadRequest, "ValidationError"},
		{domain.ErrInvalidQuantity, http.StatusBadRequest, "InvalidQuantity"},
		{domain.ErrDuplicateEmail, http.StatusBadRequest, "DuplicateEmail"},
		{domain.ErrInvalidCredentials, http.StatusBadRequest, "InvalidCredentials"},
		{fmt.Errorf("%w: token expired", domain.ErrUnauthenticated), http.StatusUnauthorized, "Unauthenticated"},
		{domain.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{domain.ErrProductNotFound, http.StatusNotFound, "NotFound"},
		{domain.ErrCartNotFound, http.StatusNotFound, "NotFound"},
		{domain.ErrItemNotFound, http.StatusNotFound, "NotFound"},
		{errors.New("boom"), http.StatusInternalServerError, "InternalError"},
	}
	for _, tc := range cases {
		code, kind := classify(tc.err)
		if code != tc.code || kind != tc.kind {
			t.Fatalf("classify(%v) = %d %s", tc.err, code, kind)
		}
	}
}
