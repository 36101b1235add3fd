package naapi

import (
	"context"
	"encoding/json"
	"naapi/app/config"
	"naapi/app/dto"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (t staticToken) Token() string {
	return string(t)
}

func newTestClient(t *testing.T, scheme string, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(&config.Config{
		Backend: config.Backend{
			BaseURL:    srv.URL,
			AuthScheme: scheme,
			Timeout:    5,
		},
	})
}

func TestClient_LoginNeverCarriesHeldToken(t *testing.T) {
	var loginAuth, listAuth string

	client := newTestClient(t, config.AuthSchemeBearer, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			loginAuth = r.Header.Get("Authorization")

			var req loginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ana@naapi.br", req.Email)
			assert.Equal(t, "secret", req.Password)

			_ = json.NewEncoder(w).Encode(loginResponse{Token: "fresh"})
		case "/cursos":
			listAuth = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode([]dto.Course{{ID: 1, Name: "ADS"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	client.SetTokenSource(staticToken("held"))

	token, usr, err := client.Authenticate(context.Background(), "ana@naapi.br", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	assert.Nil(t, usr)
	assert.Empty(t, loginAuth)

	courses, err := client.Courses.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "ADS", courses[0].Name)
	assert.Equal(t, "Bearer held", listAuth)
}

func TestClient_AnonymousRequestHasNoHeader(t *testing.T) {
	var auth []string

	client := newTestClient(t, config.AuthSchemeBearer, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Values("Authorization")
		_, _ = w.Write([]byte("[]"))
	})
	client.SetTokenSource(staticToken(""))

	_, err := client.Classes.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestClient_BasicScheme(t *testing.T) {
	var meCalls atomic.Int32

	client := newTestClient(t, config.AuthSchemeBasic, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/usuarios/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		meCalls.Add(1)

		email, password, ok := r.BasicAuth()
		if !ok || email != "ana@naapi.br" || password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_ = json.NewEncoder(w).Encode(dto.User{ID: 7, Email: email})
	})

	token, profile, err := client.Authenticate(context.Background(), "ana@naapi.br", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, profile)
	assert.Equal(t, int64(7), profile.ID)
	assert.Equal(t, int32(1), meCalls.Load())

	usr, err := client.Me(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), usr.ID)

	_, _, err = client.Authenticate(context.Background(), "ana@naapi.br", "wrong")
	require.Error(t, err)
}

func TestClient_ErrorMapping(t *testing.T) {
	client := newTestClient(t, config.AuthSchemeBearer, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Matrícula já cadastrada"}`))
	})

	_, err := client.Students.Create(context.Background(), dto.StudentInsert{Name: "Bia"})
	require.Error(t, err)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, oopsErr.Context()["status_code"])
	assert.Equal(t, "Matrícula já cadastrada", oops.GetPublic(err, ""))
}

func TestClient_TransportError(t *testing.T) {
	client := New(&config.Config{
		Backend: config.Backend{
			BaseURL:    "http://127.0.0.1:1",
			AuthScheme: config.AuthSchemeBearer,
			Timeout:    1,
		},
	})

	_, err := client.Me(context.Background(), "token")
	require.Error(t, err)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, oopsErr.Context()["status_code"])
}

func TestClient_Relays(t *testing.T) {
	client := newTestClient(t, config.AuthSchemeBearer, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/atendimentos/aluno/3":
			assert.Equal(t, dto.AppointmentStatusDone, r.URL.Query().Get("status"))
			_, _ = w.Write([]byte(`[{"id":1,"status":"REALIZADO"}]`))
		case r.URL.Path == "/atendimentos/9/status" && r.Method == http.MethodPatch:
			_, _ = w.Write([]byte(`{"id":9,"status":"REALIZADO"}`))
		case r.URL.Path == "/laudos" && r.Method == http.MethodPost:
			assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
			_, _ = w.Write([]byte(`{"id":4}`))
		case r.URL.Path == "/relatorios/alunos-por-curso/csv":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("curso,total\nADS,3\n"))
		case r.URL.Path == "/relatorios/total-atendimentos":
			_, _ = w.Write([]byte(`{"total":12}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	client.SetTokenSource(staticToken("held"))
	ctx := context.Background()

	appointments, err := client.Appointments.ListByStudent(ctx, 3, map[string][]string{"status": {dto.AppointmentStatusDone}})
	require.NoError(t, err)
	require.Len(t, appointments, 1)

	concluded, err := client.ConcludeAppointment(ctx, 9, dto.AppointmentConclusion{Status: dto.AppointmentStatusDone})
	require.NoError(t, err)
	assert.Equal(t, dto.AppointmentStatusDone, concluded.Status)

	report, err := client.MedicalReports.CreateRaw(ctx, "multipart/form-data; boundary=x", strings.NewReader("--x--"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), report.ID)

	csv, err := client.ReportCSV(ctx, "alunos-por-curso", nil)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", csv.ContentType)
	assert.Equal(t, "curso,total\nADS,3\n", string(csv.Body))

	kpi, err := client.TotalAppointments(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 12, kpi.Total)

	_, err = client.Breakdown(ctx, "unknown")
	require.Error(t, err)
}

func TestClient_WaitHealthy(t *testing.T) {
	calls := 0
	client := newTestClient(t, config.AuthSchemeBearer, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	})
	client.cfg.Backend.StartupProbes = 3

	require.NoError(t, client.WaitHealthy(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestClient_UploadWithEmptyAnswer(t *testing.T) {
	client := newTestClient(t, config.AuthSchemeBearer, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/laudos", r.URL.Path)
		assert.Equal(t, "Bearer held", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
	})
	client.SetTokenSource(staticToken("held"))

	report, err := client.MedicalReports.CreateRaw(context.Background(), "multipart/form-data; boundary=x", strings.NewReader("--x--"))
	require.NoError(t, err)
	assert.Zero(t, report.ID)

	client = newTestClient(t, config.AuthSchemeBearer, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("{not json"))
	})

	_, err = client.MedicalReports.CreateRaw(context.Background(), "multipart/form-data; boundary=x", strings.NewReader("--x--"))
	require.Error(t, err)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, oopsErr.Context()["status_code"])
}
