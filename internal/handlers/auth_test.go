package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"account_ledger/internal/models"
	"account_ledger/internal/service"
)

func postJSON(path, body string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return out
}

func TestAuthHandlers_RegisterSetsSessionCookie(t *testing.T) {
	auth := &mockAuth{registerUser: &models.User{ID: 42, Username: "u", PasswordHash: "secret-hash"}}
	sessions := &mockSessions{token: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth, Sessions: sessions})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/api/register", `{"username":"u","password":"p"}`))

	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 42 || m["username"] != "u" {
		t.Fatalf("unexpected body: %v", m)
	}
	if _, leaked := m["password_hash"]; leaked || bytes.Contains(w.Body.Bytes(), []byte("secret-hash")) {
		t.Fatalf("password hash must not be serialized: %s", w.Body.String())
	}
	if auth.lastRegisterUsername != "u" || auth.lastRegisterPassword != "p" {
		t.Fatalf("Register got %q/%q", auth.lastRegisterUsername, auth.lastRegisterPassword)
	}

	c := findCookie(w, testCookie)
	if c == nil || c.Value != "tok123" {
		t.Fatalf("expected session cookie tok123, got %+v", c)
	}
	if !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Fatalf("cookie attributes: %+v", c)
	}
	if c.MaxAge < 24*3600-5 || c.MaxAge > 24*3600 {
		t.Fatalf("expected ~24h max-age, got %d", c.MaxAge)
	}
	if len(sessions.createdFor) != 1 || sessions.createdFor[0] != 42 {
		t.Fatalf("expected session for user 42, got %v", sessions.createdFor)
	}
}

func TestAuthHandlers_RegisterErrors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantCat  string
	}{
		{"duplicate", `{"username":"u","password":"p"}`, service.ErrDuplicateUsername, http.StatusBadRequest, codeDuplicateUsername},
		{"validation", `{"username":"u","password":" "}`, &service.ValidationError{Field: "password", Reason: "must not be empty"}, http.StatusBadRequest, codeValidation},
		{"store failure", `{"username":"u","password":"p"}`, errors.New("disk"), http.StatusInternalServerError, codeServerError},
		{"missing field", `{"username":"u"}`, nil, http.StatusBadRequest, codeBadRequest},
		{"bad json", `{"username":1}`, nil, http.StatusBadRequest, codeBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{registerErr: tc.err}
			sessions := &mockSessions{token: "tok"}
			r := newTestRouter(&service.Service{Authorization: auth, Sessions: sessions})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, postJSON("/api/register", tc.body))

			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if got := decodeError(t, w).Code; got != tc.wantCat {
				t.Fatalf("code=%q, want %q", got, tc.wantCat)
			}
			if len(sessions.createdFor) != 0 {
				t.Fatalf("no session must be created on failure")
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	auth := &mockAuth{verifyUser: &models.User{ID: 5, Username: "bob"}}
	sessions := &mockSessions{token: "tok5"}
	r := newTestRouter(&service.Service{Authorization: auth, Sessions: sessions})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/api/login", `{"username":"bob","password":"pw"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	if c := findCookie(w, testCookie); c == nil || c.Value != "tok5" {
		t.Fatalf("expected cookie tok5, got %+v", c)
	}
	if auth.lastVerifyUsername != "bob" || auth.lastVerifyPassword != "pw" {
		t.Fatalf("VerifyCredentials got %q/%q", auth.lastVerifyUsername, auth.lastVerifyPassword)
	}
}

func TestAuthHandlers_LoginFailures(t *testing.T) {
	cases := []struct {
		name      string
		verifyErr error
		createErr error
		wantCode  int
		wantCat   string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, nil, http.StatusUnauthorized, codeInvalidCredentials},
		{"store failure", errors.New("db down"), nil, http.StatusInternalServerError, codeServerError},
		{"session failure", nil, errors.New("redis down"), http.StatusInternalServerError, codeServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{verifyErr: tc.verifyErr}
			if tc.verifyErr == nil {
				auth.verifyUser = &models.User{ID: 1}
			}
			sessions := &mockSessions{token: "t", createErr: tc.createErr}
			r := newTestRouter(&service.Service{Authorization: auth, Sessions: sessions})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, postJSON("/api/login", `{"username":"u","password":"p"}`))

			if w.Code != tc.wantCode {
				t.Fatalf("status=%d, want %d", w.Code, tc.wantCode)
			}
			if got := decodeError(t, w).Code; got != tc.wantCat {
				t.Fatalf("code=%q, want %q", got, tc.wantCat)
			}
			if findCookie(w, testCookie) != nil {
				t.Fatalf("no cookie expected on failure")
			}
		})
	}
}

func TestAuthHandlers_LoginMissingFieldsAreInvalidCredentials(t *testing.T) {
	for _, body := range []string{
		`{"username":"alice","password":""}`,
		`{"username":"alice"}`,
		`{}`,
	} {
		auth := &mockAuth{verifyErr: service.ErrInvalidCredentials}
		r := newTestRouter(&service.Service{Authorization: auth, Sessions: &mockSessions{}})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/api/login", body))

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status=%d, want 401 (body=%s)", body, w.Code, w.Body.String())
		}
		if got := decodeError(t, w).Code; got != codeInvalidCredentials {
			t.Fatalf("%s: code=%q, want %q", body, got, codeInvalidCredentials)
		}
	}
}

func TestAuthHandlers_LoginReplacesPresentedSession(t *testing.T) {
	auth := &mockAuth{verifyUser: &models.User{ID: 5, Username: "bob"}}
	sessions := &mockSessions{token: "fresh"}
	r := newTestRouter(&service.Service{Authorization: auth, Sessions: sessions})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/api/login", `{"username":"bob","password":"pw"}`, sessionCookie("stale")))

	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	if sessions.destroyedToken != "stale" {
		t.Fatalf("expected previous session to be destroyed, got %q", sessions.destroyedToken)
	}
	if c := findCookie(w, testCookie); c == nil || c.Value != "fresh" {
		t.Fatalf("expected cookie fresh, got %+v", c)
	}
}

func TestAuthHandlers_LoginWithoutPreviousSessionDestroysNothing(t *testing.T) {
	auth := &mockAuth{verifyUser: &models.User{ID: 5, Username: "bob"}}
	sessions := &mockSessions{token: "fresh"}
	r := newTestRouter(&service.Service{Authorization: auth, Sessions: sessions})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/api/login", `{"username":"bob","password":"pw"}`))

	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	if sessions.destroyedToken != "" {
		t.Fatalf("nothing to destroy, got %q", sessions.destroyedToken)
	}
}

func TestAuthHandlers_LoginRateLimitIgnoresForwardedFor(t *testing.T) {
	auth := &mockAuth{verifyErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth, Sessions: &mockSessions{}}
	r := NewHandler(s, nil, Options{LoginRatePerMinute: 1, LoginBurst: 1}).InitRoutes()

	codes := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req := postJSON("/api/login", `{"username":"u","password":"p"}`)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	want := []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("status sequence %v, want %v", codes, want)
		}
	}
}

func TestAuthHandlers_LoginRateLimitTrustedProxy(t *testing.T) {
	auth := &mockAuth{verifyErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth, Sessions: &mockSessions{}}
	r := NewHandler(s, nil, Options{
		LoginRatePerMinute: 1,
		LoginBurst:         1,
		TrustedProxies:     []string{"198.51.100.7"},
	}).InitRoutes()

	// behind a trusted proxy each forwarded client gets its own bucket
	for i := 0; i < 3; i++ {
		req := postJSON("/api/login", `{"username":"u","password":"p"}`)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("client %d: status=%d, want 401", i+1, w.Code)
		}
	}
}

func TestAuthHandlers_LoginRateLimited(t *testing.T) {
	auth := &mockAuth{verifyErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth, Sessions: &mockSessions{}}
	h := NewHandler(s, nil, Options{LoginRatePerMinute: 1, LoginBurst: 2})
	r := h.InitRoutes()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/api/login", `{"username":"u","password":"p"}`))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusUnauthorized || codes[1] != http.StatusUnauthorized || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	s, _, sessions := loggedIn(&mockLedger{})
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, postJSON("/api/logout", ``, sessionCookie("good")))

	if w.Code != http.StatusOK {
		t.Fatalf("logout status=%d, body=%s", w.Code, w.Body.String())
	}
	if sessions.destroyedToken != "good" {
		t.Fatalf("expected destroy of 'good', got %q", sessions.destroyedToken)
	}
	if c := findCookie(w, testCookie); c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared, got %+v", c)
	}
}

func TestAuthHandlers_LogoutFailures(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		s, _, _ := loggedIn(&mockLedger{})
		r := newTestRouter(s)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, postJSON("/api/logout", ``))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status=%d, want 401", w.Code)
		}
	})

	for name, tc := range map[string]struct {
		err  error
		code string
	}{
		"session vanished": {service.ErrSessionNotFound, codeSessionNotFound},
		"store failure":    {errors.New("redis down"), codeServerError},
	} {
		t.Run(name, func(t *testing.T) {
			s, _, sessions := loggedIn(&mockLedger{})
			sessions.destroyErr = tc.err
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, postJSON("/api/logout", ``, sessionCookie("good")))
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status=%d, want 500", w.Code)
			}
			if got := decodeError(t, w).Code; got != tc.code {
				t.Fatalf("code=%q, want %q", got, tc.code)
			}
		})
	}
}

func TestAuthHandlers_CurrentUser(t *testing.T) {
	s, _, _ := loggedIn(&mockLedger{})
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/current_user", nil)
	req.AddCookie(sessionCookie("good"))
	r.ServeHTTP(w, req)
	var u models.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil || u.ID != 7 || u.Username != "alice" {
		t.Fatalf("current_user with session: %s (%v)", w.Body.String(), err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/current_user", nil))
	if w.Code != http.StatusOK || w.Body.String() != "{}" {
		t.Fatalf("anonymous current_user: %d %s", w.Code, w.Body.String())
	}
}
