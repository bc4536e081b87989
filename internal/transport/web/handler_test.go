package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"congeadmin/internal/backend"
	"congeadmin/internal/platform/cache"
	"congeadmin/internal/session"
)

const testToken = "jeton-de-test"

// fakeBackend mimics the leave-management API: every response is wrapped in
// the usual envelope and each call is recorded for assertions.
type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	lastAuth string

	unauthorized  bool
	failRecalcFor string
}

func (f *fakeBackend) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.lastAuth = r.Header.Get("Authorization")
}

func (f *fakeBackend) called(method, path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.calls {
		if call == method+" "+path {
			return true
		}
	}
	return false
}

func writeEnvelope(w http.ResponseWriter, data any) {
	payload, _ := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(backend.Envelope{Success: true, Data: payload})
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds backend.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "bon-mot-de-passe" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"identifiants invalides"}`))
			return
		}
		writeEnvelope(w, backend.LoginResult{Token: testToken})
	})

	mux.HandleFunc("GET /employes", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, backend.Page[backend.Employee]{
			Content: []backend.Employee{
				{ID: 1, Matricule: "MAT-001", Nom: "Durand", Prenom: "Claire", Fonction: "Analyste", ServiceNom: "Informatique"},
			},
			TotalElements: 1,
			TotalPages:    1,
			Size:          10,
		})
	})

	mux.HandleFunc("GET /employes/search", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []backend.Employee{
			{ID: 1, Matricule: "MAT-001", Nom: "Durand", Prenom: "Claire"},
		})
	})

	mux.HandleFunc("GET /demandes-conges", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, backend.Page[backend.DemandeConge]{
			Content: []backend.DemandeConge{
				{ID: 5, EmployeNom: "Durand Claire", DateDebut: "2025-07-01", DateFin: "2025-07-10", NbJours: 8, Statut: backend.StatutEnAttente},
			},
			TotalElements: 1,
			TotalPages:    1,
		})
	})

	mux.HandleFunc("PUT /demandes-conges/{id}/statut", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, backend.DemandeConge{ID: 5, Statut: r.URL.Query().Get("statut")})
	})

	mux.HandleFunc("GET /ica/statistiques", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, backend.StatistiquesICA{TotalAgents: 12, Eligibles: 9, NonEligibles: 3, TauxEligibilite: 75, Annee: 2025})
	})

	mux.HandleFunc("GET /ica/suivi", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []backend.SuiviICA{
			{HistoriqueID: 1, EmployeNom: "Durand Claire", JoursRestants: 3, Eligible: true},
			{HistoriqueID: 2, EmployeNom: "Martin Paul", JoursRestants: 0, Eligible: false},
			{HistoriqueID: 3, EmployeNom: "Petit Anne", JoursRestants: 12, Eligible: true},
		})
	})

	mux.HandleFunc("PUT /historique-conges/{id}/recalculer-ica", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == f.failRecalcFor {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"erreur interne"}`))
			return
		}
		writeEnvelope(w, nil)
	})

	mux.HandleFunc("GET /historique-conges/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, backend.HistoriqueConge{
			ID: 7, EmployeID: 1, EmployeNom: "Durand Claire", Matricule: "MAT-001",
			Annee: 2025, JoursAttribues: 30, JoursConsommes: 22, JoursRestants: 8,
		})
	})

	mux.HandleFunc("GET /audit/recent", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []backend.AuditEntry{})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if f.unauthorized && r.URL.Path != "/auth/login" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"jeton expiré"}`))
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func newTestConsole(t *testing.T, f *fakeBackend) http.Handler {
	t.Helper()
	api := httptest.NewServer(f.handler())
	t.Cleanup(api.Close)

	client := backend.New(api.URL, 2*time.Second, 0, cache.New(time.Minute))
	sessions := session.NewManager("conge_session", time.Hour, false)
	handler, err := NewHandler(client, sessions, 10, 2)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return handler.Routes()
}

func withSession(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: "conge_session", Value: testToken})
	return r
}

func postForm(path string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func flashCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "conge_notice" && cookie.Value != "" {
			decoded, err := url.QueryUnescape(cookie.Value)
			if err != nil {
				t.Fatalf("flash cookie unreadable: %v", err)
			}
			return decoded
		}
	}
	return ""
}

func TestGuardedRoutesRedirectToLogin(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{})

	for _, path := range []string{"/", "/employes", "/conges", "/ica", "/historique", "/users", "/audit"} {
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusFound)
		}
		if location := rec.Header().Get("Location"); location != "/login" {
			t.Errorf("%s: redirect to %q, want /login", path, location)
		}
	}
}

func TestLoginIssuesSessionCookie(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, postForm("/login", url.Values{
		"username": {"admin"},
		"password": {"bon-mot-de-passe"},
	}))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if location := rec.Header().Get("Location"); location != "/" {
		t.Errorf("redirect to %q, want /", location)
	}

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "conge_session" && cookie.Value == testToken {
			found = true
			if !cookie.HttpOnly {
				t.Error("session cookie must be HttpOnly")
			}
		}
	}
	if !found {
		t.Error("session cookie not issued")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, postForm("/login", url.Values{
		"username": {"admin"},
		"password": {"mauvais"},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Identifiants incorrects.") {
		t.Error("page should show the bad-credentials notice")
	}
}

func TestLoginValidatesForm(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, postForm("/login", url.Values{"username": {"admin"}}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "champ obligatoire") {
		t.Error("missing password should be flagged on the page")
	}
}

func TestEmployesListRendersAndForwardsToken(t *testing.T) {
	fake := &fakeBackend{}
	routes := newTestConsole(t, fake)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/employes", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"Durand", "MAT-001", "Informatique"} {
		if !strings.Contains(body, want) {
			t.Errorf("page should contain %q", want)
		}
	}
	if !fake.called("GET", "/employes") {
		t.Error("backend list endpoint not called")
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.lastAuth != "Bearer "+testToken {
		t.Errorf("Authorization = %q, want bearer token from the session", fake.lastAuth)
	}
}

func TestBackendUnauthorizedEndsSession(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{unauthorized: true})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/employes", nil)))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if location := rec.Header().Get("Location"); location != "/login" {
		t.Errorf("redirect to %q, want /login", location)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "conge_session" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie should be cleared after a backend 401")
	}
}

func TestCongeCreateRejectsBadDate(t *testing.T) {
	fake := &fakeBackend{}
	routes := newTestConsole(t, fake)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(postForm("/conges", url.Values{
		"employeId": {"1"},
		"dateDebut": {"32/01/2025"},
		"dateFin":   {"05/02/2025"},
		"motif":     {"congé annuel"},
	})))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "jour invalide") {
		t.Error("page should flag the impossible day")
	}
	if fake.called("POST", "/demandes-conges") {
		t.Error("invalid form must not reach the backend")
	}
}

func TestCongeCreateRejectsReversedRange(t *testing.T) {
	fake := &fakeBackend{}
	routes := newTestConsole(t, fake)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(postForm("/conges", url.Values{
		"employeId": {"1"},
		"dateDebut": {"10/07/2025"},
		"dateFin":   {"01/07/2025"},
		"motif":     {"congé annuel"},
	})))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "postérieure à la date de début") {
		t.Error("page should flag the reversed range")
	}
	if fake.called("POST", "/demandes-conges") {
		t.Error("invalid form must not reach the backend")
	}
}

func TestDecisionRejectionRequiresRemark(t *testing.T) {
	fake := &fakeBackend{}
	routes := newTestConsole(t, fake)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(postForm("/conges/5/decision", url.Values{
		"statut": {"REJETEE"},
	})))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if flash := flashCookie(t, rec); !strings.Contains(flash, "Remarque") {
		t.Errorf("flash = %q, want a remark complaint", flash)
	}
	if fake.called("PUT", "/demandes-conges/5/statut") {
		t.Error("rejection without remark must not reach the backend")
	}
}

func TestDecisionApprovalSubmits(t *testing.T) {
	fake := &fakeBackend{}
	routes := newTestConsole(t, fake)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(postForm("/conges/5/decision", url.Values{
		"statut": {"APPROUVEE"},
	})))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if !fake.called("PUT", "/demandes-conges/5/statut") {
		t.Error("approval should reach the backend")
	}
	if flash := flashCookie(t, rec); !strings.Contains(flash, "success") {
		t.Errorf("flash = %q, want a success notice", flash)
	}
}

func TestRecalculerToutReportsPartialFailure(t *testing.T) {
	fake := &fakeBackend{failRecalcFor: "2"}
	routes := newTestConsole(t, fake)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(postForm("/ica/recalculer", url.Values{})))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	flash := flashCookie(t, rec)
	if !strings.Contains(flash, "2 réussites") || !strings.Contains(flash, "1 échecs") {
		t.Errorf("flash = %q, want partial-failure counts", flash)
	}
	for _, id := range []string{"1", "2", "3"} {
		if !fake.called("PUT", "/historique-conges/"+id+"/recalculer-ica") {
			t.Errorf("record %s not recalculated", id)
		}
	}
}

func TestRecalculerToutAllSuccess(t *testing.T) {
	fake := &fakeBackend{}
	routes := newTestConsole(t, fake)

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(postForm("/ica/recalculer", url.Values{})))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if flash := flashCookie(t, rec); !strings.Contains(flash, "3 enregistrements traités") {
		t.Errorf("flash = %q, want the full-success count", flash)
	}
}

func TestAjustementPreviewEndpoint(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet,
		"/historique/7/apercu?type=RETRAIT&jours=5", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var preview struct {
		NewConsumed  float64 `json:"newConsumed"`
		NewRemaining float64 `json:"newRemaining"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if preview.NewConsumed != 27 || preview.NewRemaining != 3 {
		t.Errorf("preview = %+v, want consumed 27 remaining 3", preview)
	}
}

func TestAjustementPreviewRejectsBadDays(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet,
		"/historique/7/apercu?type=RETRAIT&jours=0.3", nil)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "multiple de 0,5") {
		t.Errorf("body = %q, want the half-day message", rec.Body.String())
	}
}

func TestAjustementSubmitSendsSignedDelta(t *testing.T) {
	var gotAjustement string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/ajuster") {
			gotAjustement = r.URL.Query().Get("ajustement")
		}
		writeEnvelope(w, backend.HistoriqueConge{ID: 7})
	}))
	defer api.Close()

	client := backend.New(api.URL, 2*time.Second, 0, cache.New(time.Minute))
	sessions := session.NewManager("conge_session", time.Hour, false)
	handler, err := NewHandler(client, sessions, 10, 2)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, withSession(postForm("/historique/7/ajuster", url.Values{
		"type":     {"RETRAIT"},
		"jours":    {"2.5"},
		"remarque": {"absence non justifiée"},
	})))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if gotAjustement != "-2.5" {
		t.Errorf("ajustement = %q, want -2.5 for a retrait", gotAjustement)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(postForm("/logout", url.Values{})))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if location := rec.Header().Get("Location"); location != "/login" {
		t.Errorf("redirect to %q, want /login", location)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "conge_session" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie should be cleared on logout")
	}
}

func TestDashboardShowsStatistics(t *testing.T) {
	routes := newTestConsole(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{"12", "75.0"} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard should contain %q", want)
		}
	}
}
