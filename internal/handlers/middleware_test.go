package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"profilevault/internal/models"
	"profilevault/internal/service"
)

func TestSessionGate_DeniesWithoutValidSession(t *testing.T) {
	cases := []struct {
		name   string
		cookie string
		auth   *mockAuth
	}{
		{
			name:   "no cookie",
			cookie: "",
			auth:   &mockAuth{},
		},
		{
			name:   "invalid token",
			cookie: "tampered",
			auth:   &mockAuth{authErr: service.ErrNotAuthenticated},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := &mockProfile{}
			s := &service.Service{Authorization: tc.auth, Profile: profile, Audit: &mockAudit{}}
			r := newTestRouter(s)

			// GET /dashboard is gated.
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tc.cookie})
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusFound {
				t.Fatalf("status=%d, want %d", w.Code, http.StatusFound)
			}
			if loc := w.Header().Get("Location"); loc != "/login" {
				t.Errorf("redirect target: got %q, want /login", loc)
			}
			if profile.viewCalls != 0 {
				t.Errorf("denied request must not reach the profile service")
			}
		})
	}
}

func TestSessionGate_DeniedUpdateNeverTouchesStore(t *testing.T) {
	profile := &mockProfile{}
	s := &service.Service{Authorization: &mockAuth{authErr: service.ErrNotAuthenticated}, Profile: profile, Audit: &mockAudit{}}
	r := newTestRouter(s)

	w := postForm(r, "/update-profile", url.Values{
		"name":  {"Alice Smith"},
		"email": {"alice@example.com"},
		"bio":   {"Loves hiking"},
	}, "expired-token")

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
	if profile.updateCalls != 0 {
		t.Errorf("unauthenticated update must not invoke the update pipeline")
	}
}

func TestSessionGate_AdmitsAndExposesUserID(t *testing.T) {
	auth := &mockAuth{authSession: models.Session{ID: "sid", UserID: 7}}
	profile := &mockProfile{view: service.ProfileView{ID: 7, Name: "Alice Smith"}}
	s := &service.Service{Authorization: auth, Profile: profile, Audit: &mockAudit{}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "tok123"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.lastAuthToken != "tok123" {
		t.Errorf("token passed to Authenticate: %q", auth.lastAuthToken)
	}
	if profile.viewCalls != 1 {
		t.Errorf("dashboard must render the profile view")
	}
}
