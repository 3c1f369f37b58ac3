package jtable_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/csrf"
	"github.com/deltegui/pmadmin/cypher"
	"github.com/deltegui/pmadmin/jtable"
	"github.com/deltegui/pmadmin/persistence"
	"github.com/deltegui/pmadmin/validator"
)

type panicRepository struct{}

func (panicRepository) Create(context.Context, note) persistence.Outcome {
	panic("nil map assignment")
}

func (panicRepository) Update(context.Context, noteKey, note) persistence.Outcome {
	panic(errors.New("index out of range"))
}

func (panicRepository) Delete(context.Context, noteKey) persistence.Outcome {
	panic("unreachable")
}

func newServer(repo jtable.Repository[noteKey, note]) *pmadmin.Router {
	router := pmadmin.NewRouter()
	gateway := jtable.NewGateway[noteKey, note](&fakeLister{}, repo, validator.New())
	options := func(context.Context) ([]persistence.Option, error) {
		return []persistence.Option{{Value: int64(1), Text: "Developer"}, {Value: int64(2), Text: "Manager"}}, nil
	}
	jtable.NewController(gateway, options).Register(router, "/note")
	return router
}

func post(t *testing.T, router http.Handler, target, form string) map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Want status 200, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Want json content type, got '%s'", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("Cannot decode '%s': %s", recorder.Body.String(), err)
	}
	return body
}

func TestListEndpoint(t *testing.T) {
	router := newServer(&fakeRepository{})
	body := post(t, router, "/note/list?jtStartIndex=0&jtPageSize=5", "")
	if body["Result"] != "OK" {
		t.Errorf("Want OK, got %v", body["Result"])
	}
	if body["TotalRecordCount"] != float64(42) {
		t.Errorf("Want total 42, got %v", body["TotalRecordCount"])
	}
	records := body["Records"].([]any)
	if len(records) != 1 || records[0].(map[string]any)["Name"] != "first" {
		t.Errorf("Unexpected records %v", records)
	}
}

func TestCreateEndpoint(t *testing.T) {
	router := newServer(&fakeRepository{nextId: 3})
	body := post(t, router, "/note/create", "Name=Test&Priority=1")
	if body["Result"] != "OK" {
		t.Fatalf("Want OK, got %v", body)
	}
	record := body["Record"].(map[string]any)
	if record["Id"] != float64(3) || record["Name"] != "Test" {
		t.Errorf("Unexpected record %v", record)
	}

	body = post(t, router, "/note/create", "")
	if body["Result"] != "ERROR" || body["Message"] != "Model is null" {
		t.Errorf("Want Model is null, got %v", body)
	}

	body = post(t, router, "/note/create", "Name=")
	if body["Result"] != "ERROR" || body["Message"] != "Name is required" {
		t.Errorf("Want validation error, got %v", body)
	}
}

func TestUpdateAndDeleteEndpoints(t *testing.T) {
	body := post(t, newServer(&fakeRepository{outcome: persistence.NoContent()}), "/note/update", "Id=1&Name=Changed")
	if fmt.Sprint(body) != "map[Result:OK]" {
		t.Errorf("Want bare OK, got %v", body)
	}
	body = post(t, newServer(&fakeRepository{outcome: persistence.NotFound()}), "/note/delete", "Id=99")
	if body["Result"] != "ERROR" || body["Message"] != "Not found" {
		t.Errorf("Want Not found, got %v", body)
	}
	body = post(t, newServer(&fakeRepository{outcome: persistence.NoContent()}), "/note/delete", "")
	if body["Result"] != "ERROR" || body["Message"] != "Not found" {
		t.Errorf("Delete without key: want Not found, got %v", body)
	}
}

func TestUnconvertibleValuesNeverReachTheRepository(t *testing.T) {
	repo := &fakeRepository{nextId: 7, outcome: persistence.NoContent()}
	router := newServer(repo)
	body := post(t, router, "/note/create", "Name=Test&Priority=abc")
	if body["Result"] != "ERROR" || body["Message"] != "Priority is not a valid integer" {
		t.Errorf("Want conversion error, got %v", body)
	}
	body = post(t, router, "/note/update", "Id=abc&Name=Test")
	if body["Result"] != "ERROR" || body["Message"] != "Id is not a valid integer" {
		t.Errorf("Want key conversion error, got %v", body)
	}
	body = post(t, router, "/note/delete", "Id=1.5")
	if body["Result"] != "ERROR" || body["Message"] != "Id is not a valid integer" {
		t.Errorf("Want key conversion error, got %v", body)
	}
	if repo.calls != 0 {
		t.Errorf("Repository must not be called, got %d calls", repo.calls)
	}
}

func TestUpdateWithOnlyTheKeyIsAnAbsentModel(t *testing.T) {
	repo := &fakeRepository{outcome: persistence.NoContent()}
	body := post(t, newServer(repo), "/note/update", "Id=1")
	if body["Result"] != "ERROR" || body["Message"] != "Model is null" {
		t.Errorf("Want Model is null, got %v", body)
	}
	if repo.calls != 0 {
		t.Errorf("Repository must not be called, got %d calls", repo.calls)
	}
}

func TestCsrfRejectionsAreEnvelopes(t *testing.T) {
	router := pmadmin.NewRouter()
	router.Use(csrf.Middleware(csrf.New(time.Hour, cypher.New())))
	gateway := jtable.NewGateway[noteKey, note](&fakeLister{}, &fakeRepository{}, validator.New())
	jtable.NewController(gateway, nil).Register(router, "/note")

	req := httptest.NewRequest(http.MethodPost, "/note/list", nil)
	req.Header.Set(csrf.HeaderName, "expired-or-bogus")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Want status 200, got %d", recorder.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("Cannot decode '%s': %s", recorder.Body.String(), err)
	}
	if body["Result"] != "ERROR" || !strings.Contains(body["Message"].(string), "malformed csrf token") {
		t.Errorf("Want csrf error envelope, got %v", body)
	}

	body = post(t, router, "/note/create", "Name=Test")
	if body["Result"] != "ERROR" || !strings.Contains(body["Message"].(string), "csrf token not found") {
		t.Errorf("Want missing token envelope, got %v", body)
	}
}

func TestBoundaryTranslatesStoreFailures(t *testing.T) {
	failure := persistence.Failed(fmt.Errorf("outer: %w", errors.New("inner")))
	router := newServer(&fakeRepository{outcome: failure})
	body := post(t, router, "/note/update", "Id=1&Name=Changed")
	if body["Result"] != "ERROR" || body["Message"] != "outer\ninner" {
		t.Errorf("Want Error(outer\\ninner), got %v", body)
	}
}

func TestBoundaryRecoversPanics(t *testing.T) {
	router := newServer(panicRepository{})
	body := post(t, router, "/note/create", "Name=Test")
	if body["Result"] != "ERROR" || body["Message"] != "nil map assignment" {
		t.Errorf("Unexpected reply %v", body)
	}
	body = post(t, router, "/note/update", "Id=1&Name=Test")
	if body["Result"] != "ERROR" || body["Message"] != "unexpected failure\nindex out of range" {
		t.Errorf("Unexpected reply %v", body)
	}
}

func TestOptionsEndpoint(t *testing.T) {
	router := newServer(&fakeRepository{})
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		req := httptest.NewRequest(method, "/note/options", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		want := `{"Result":"OK","Options":[{"DisplayText":"Developer","Value":1},{"DisplayText":"Manager","Value":2}]}`
		if got := strings.TrimSpace(recorder.Body.String()); got != want {
			t.Errorf("%s: want %s, got %s", method, want, got)
		}
	}
}

func TestEnvelopeJson(t *testing.T) {
	tt := []struct {
		env  jtable.Envelope
		want string
	}{
		{jtable.Ok(), `{"Result":"OK"}`},
		{jtable.Envelope{}, `{"Result":"OK"}`},
		{jtable.Error("Not found"), `{"Result":"ERROR","Message":"Not found"}`},
		{jtable.Error(""), `{"Result":"ERROR","Message":""}`},
		{jtable.Created(map[string]int{"Id": 1}), `{"Result":"OK","Record":{"Id":1}}`},
	}
	for _, tc := range tt {
		got, err := json.Marshal(tc.env)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != tc.want {
			t.Errorf("Want %s, got %s", tc.want, got)
		}
	}
}
