package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"congeadmin/internal/platform/cache"
	"congeadmin/internal/requestctx"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := New(server.URL, 2*time.Second, 1, cache.New(time.Minute))
	return client, server
}

func writeEnvelope(w http.ResponseWriter, data any) {
	raw, _ := json.Marshal(data)
	_ = json.NewEncoder(w).Encode(Envelope{
		Success:   true,
		Message:   "OK",
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, []Employee{})
	}))

	ctx := requestctx.WithToken(context.Background(), "jeton-test")
	if _, err := client.SearchEmployees(ctx, "ben"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer jeton-test" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestListEmployeesDecodesPage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/employes" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("size") != "10" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		writeEnvelope(w, Page[Employee]{
			Content:       []Employee{{ID: 7, Nom: "Benali", Prenom: "Samira"}},
			TotalElements: 21,
			TotalPages:    3,
			Size:          10,
			Number:        2,
		})
	}))

	page, err := client.ListEmployees(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalElements != 21 || page.TotalPages != 3 || page.Number != 2 {
		t.Fatalf("unexpected page metadata: %+v", page)
	}
	if len(page.Content) != 1 || page.Content[0].Nom != "Benali" {
		t.Fatalf("unexpected content: %+v", page.Content)
	}
}

func TestStatusErrorsAreClassified(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
		name   string
	}{
		{http.StatusUnauthorized, IsUnauthorized, "unauthorized"},
		{http.StatusForbidden, IsForbidden, "forbidden"},
		{http.StatusNotFound, IsNotFound, "not found"},
		{http.StatusConflict, IsConflict, "conflict"},
		{http.StatusUnprocessableEntity, IsValidation, "validation"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(Envelope{Success: false, Message: "refusé"})
			}))

			_, err := client.GetEmployee(context.Background(), 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tc.check(err) {
				t.Fatalf("status %d not classified: %v", tc.status, err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Message != "refusé" {
				t.Fatalf("backend message lost: %v", err)
			}
		})
	}
}

func TestNoticeMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&APIError{Status: http.StatusUnauthorized}, "Session expirée, veuillez vous reconnecter."},
		{&APIError{Status: http.StatusForbidden}, "Accès refusé : vous n'avez pas les droits nécessaires."},
		{&APIError{Status: http.StatusNotFound}, "Ressource introuvable."},
		{&APIError{Status: http.StatusConflict}, "Conflit : la ressource a été modifiée entre-temps."},
		{&APIError{Status: http.StatusUnprocessableEntity}, "Données invalides, vérifiez le formulaire."},
		{&APIError{Status: http.StatusInternalServerError}, "Erreur interne du serveur, réessayez plus tard."},
		{&APIError{Status: http.StatusTeapot}, "Une erreur inattendue s'est produite."},
		{fmt.Errorf("%w: connexion refusée", ErrUnreachable), "Serveur injoignable, vérifiez votre connexion."},
		{nil, ""},
	}
	for _, tc := range tests {
		if got := Notice(tc.err); got != tc.want {
			t.Fatalf("Notice(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestReadRetriesOnceOn5xx(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeEnvelope(w, Employee{ID: 3, Nom: "Cherif"})
	}))

	employee, err := client.GetEmployee(context.Background(), 3)
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if employee.Nom != "Cherif" {
		t.Fatalf("unexpected employee: %+v", employee)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", calls.Load())
	}
}

func TestMutationsAreNeverRetried(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.CreateEmployee(context.Background(), EmployeeInput{Nom: "X"})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("mutation retried: %d calls", calls.Load())
	}
}

func TestNetworkFailureWrapsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := New(server.URL, time.Second, 0, nil)

	_, err := client.ListUsers(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestListIsCachedAndMutationInvalidates(t *testing.T) {
	var listCalls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/employes":
			listCalls.Add(1)
			writeEnvelope(w, Page[Employee]{Content: []Employee{{ID: 1}}, TotalElements: 1, TotalPages: 1})
		case r.Method == http.MethodPost && r.URL.Path == "/employes":
			writeEnvelope(w, Employee{ID: 2})
		default:
			t.Fatalf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
	}))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.ListEmployees(ctx, 0, 10); err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
	}
	if listCalls.Load() != 1 {
		t.Fatalf("expected 1 backend list call, got %d", listCalls.Load())
	}

	if _, err := client.CreateEmployee(ctx, EmployeeInput{Nom: "Nouveau"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := client.ListEmployees(ctx, 0, 10); err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if listCalls.Load() != 2 {
		t.Fatalf("expected re-fetch after invalidation, got %d calls", listCalls.Load())
	}
}

func TestUnsuccessfulEnvelopeIsAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Envelope{Success: false, Message: "traitement refusé"})
	}))

	_, err := client.GetStatistiquesICA(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "traitement refusé" {
		t.Fatalf("expected envelope failure surfaced, got %v", err)
	}
}

func TestUpdateDemandeStatutSendsQueryParams(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/demandes-conges/9/statut" {
			t.Fatalf("unexpected call: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("statut") != StatutRejetee || r.URL.Query().Get("remarque") != "justificatif manquant" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		writeEnvelope(w, DemandeConge{ID: 9, Statut: StatutRejetee})
	}))

	demande, err := client.UpdateDemandeStatut(context.Background(), 9, StatutRejetee, "justificatif manquant")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if demande.Statut != StatutRejetee {
		t.Fatalf("unexpected statut: %s", demande.Statut)
	}
}

func TestAjusterHistoriqueSendsSignedDelta(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/historique-conges/4/ajuster" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("ajustement") != "-2.5" {
			t.Fatalf("unexpected ajustement: %s", r.URL.Query().Get("ajustement"))
		}
		writeEnvelope(w, HistoriqueConge{ID: 4, JoursConsommes: 24.5, JoursRestants: 5.5})
	}))

	record, err := client.AjusterHistorique(context.Background(), 4, -2.5, "retrait saisi en double")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.JoursRestants != 5.5 {
		t.Fatalf("server figures must win: %+v", record)
	}
}
