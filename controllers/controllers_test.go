package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/controllers"
	"github.com/deltegui/pmadmin/export"
	"github.com/deltegui/pmadmin/extensions"
	"github.com/deltegui/pmadmin/persistence"
	"github.com/deltegui/pmadmin/validator"
	"github.com/deltegui/pmadmin/web"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type ControllersSuite struct {
	suite.Suite
	db     *sqlx.DB
	router *pmadmin.Router
}

func TestControllers(t *testing.T) {
	suite.Run(t, new(ControllersSuite))
}

func (s *ControllersSuite) SetupTest() {
	cfg := persistence.Configuration{
		Driver:       persistence.DriverSQLite,
		Connection:   filepath.Join(s.T().TempDir(), "controllers.db") + "?_foreign_keys=on",
		MaxOpenConns: 1,
	}
	s.Require().NoError(persistence.Migrate(cfg))
	db, err := persistence.Connect(context.Background(), cfg)
	s.Require().NoError(err)
	s.db = db

	r := pmadmin.NewRouter()
	extensions.AddCypher(r)
	web.Parse(extensions.AddRendering(r, web.Views()))
	extensions.UseLocalizer(r, web.Locales(), web.SharedKey, web.ErrorsKey)
	controllers.Register(r, db, validator.New(), 2, false)
	s.router = r

	for _, name := range []string{"Lovelace", "Turing", "Hopper"} {
		body := s.post("/persons/create", url.Values{"FirstName": {"Test"}, "LastName": {name}})
		s.Require().Equal("OK", body["Result"], body)
	}
}

func (s *ControllersSuite) TearDownTest() {
	s.db.Close()
}

func (s *ControllersSuite) do(req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	s.router.ServeHTTP(recorder, req)
	return recorder
}

func (s *ControllersSuite) get(target string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (s *ControllersSuite) post(target string, form url.Values) map[string]any {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := s.do(req)
	s.Require().Equal(http.StatusOK, recorder.Code)
	var body map[string]any
	s.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &body), recorder.Body.String())
	return body
}

func (s *ControllersSuite) TestHome() {
	recorder := s.get("/")
	s.Equal(http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	s.Contains(body, `href="/persons"`)
	s.Contains(body, "Tipos de movimiento")
}

func (s *ControllersSuite) TestPageRendersFirstPage() {
	recorder := s.get("/persons?sort=2")
	s.Require().Equal(http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	s.Contains(body, "<h1>Personas</h1>")
	s.Contains(body, "<td>Hopper</td>")
	s.Contains(body, "<td>Lovelace</td>")
	s.NotContains(body, "<td>Turing</td>")
	s.Contains(body, "Mostrando 1 - 2 de 3")
	s.Contains(body, "window.pmadminTable = {")
	s.Contains(body, `"listAction":"/persons/list"`)
}

func (s *ControllersSuite) TestPageIgnoresUnconvertibleControls() {
	recorder := s.get("/persons?page=abc&sort=2")
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Contains(recorder.Body.String(), "Mostrando 1 - 2 de 3")
}

func (s *ControllersSuite) TestPageSearchWithoutResults() {
	recorder := s.get("/persons?search=nobody")
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Contains(recorder.Body.String(), "No hay registros")
}

func (s *ControllersSuite) TestWidgetListSortsAndPages() {
	body := s.post("/persons/list?jtStartIndex=2&jtPageSize=2&jtSorting=LastName%20ASC", url.Values{})
	s.Equal("OK", body["Result"])
	s.Equal(float64(3), body["TotalRecordCount"])
	records := body["Records"].([]any)
	s.Require().Len(records, 1)
	s.Equal("Turing", records[0].(map[string]any)["LastName"])
}

func (s *ControllersSuite) TestWidgetCrud() {
	body := s.post("/roles/create", url.Values{"Name": {"Designer"}})
	s.Require().Equal("OK", body["Result"], body)
	record := body["Record"].(map[string]any)
	s.Equal("Designer", record["Name"])
	id := record["Id"].(float64)

	body = s.post("/roles/update", url.Values{"Id": {"4"}, "Name": {"Architect"}})
	s.Equal(map[string]any{"Result": "OK"}, body)
	s.Equal(float64(4), id)

	body = s.post("/roles/update", url.Values{"Id": {"99"}, "Name": {"Ghost"}})
	s.Equal(map[string]any{"Result": "ERROR", "Message": "Not found"}, body)

	body = s.post("/roles/create", url.Values{"Name": {""}})
	s.Equal(map[string]any{"Result": "ERROR", "Message": "Name is required"}, body)

	body = s.post("/roles/create", url.Values{"Name": {"Developer"}})
	s.Equal("ERROR", body["Result"])
	s.Contains(body["Message"], "cannot create role")

	body = s.post("/roles/delete", url.Values{"Id": {"4"}})
	s.Equal(map[string]any{"Result": "OK"}, body)
}

func (s *ControllersSuite) TestOptions() {
	recorder := s.get("/roles/options")
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.JSONEq(`{"Result":"OK","Options":[
		{"DisplayText":"Developer","Value":1},
		{"DisplayText":"Manager","Value":2},
		{"DisplayText":"Tester","Value":3}]}`, recorder.Body.String())

	recorder = s.get("/tasks/options")
	s.Equal(http.StatusNotFound, recorder.Code)
}

func (s *ControllersSuite) TestExport() {
	recorder := s.get("/persons/export?sort=2&desc=true")
	s.Require().Equal(http.StatusOK, recorder.Code)
	s.Equal(export.ContentType, recorder.Header().Get("Content-Type"))
	f, err := excelize.OpenReader(recorder.Body)
	s.Require().NoError(err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("persons")
	s.Require().NoError(err)
	s.Require().Len(rows, 4)
	s.Equal("LastName", rows[0][2])
	s.Equal("Turing", rows[1][2])
	s.Equal("Hopper", rows[3][2])
}

func (s *ControllersSuite) TestChangeLanguage() {
	req := httptest.NewRequest(http.MethodGet, "/language/en", nil)
	req.Header.Set("Referer", "/persons")
	recorder := s.do(req)
	s.Equal(http.StatusSeeOther, recorder.Code)
	s.Equal("/persons", recorder.Header().Get("Location"))
	cookies := recorder.Result().Cookies()
	s.Require().Len(cookies, 1)

	req = httptest.NewRequest(http.MethodGet, "/persons", nil)
	req.AddCookie(cookies[0])
	page := s.do(req)
	s.Contains(page.Body.String(), "<h1>Persons</h1>")
}

func (s *ControllersSuite) TestHealth() {
	recorder := s.get("/health")
	s.Equal(http.StatusOK, recorder.Code)
	s.JSONEq(`{"status":"up","database":"sqlite3"}`, recorder.Body.String())

	s.db.Close()
	recorder = s.get("/health")
	s.Equal(http.StatusServiceUnavailable, recorder.Code)
}

func (s *ControllersSuite) TestListingFailureIsLocalized() {
	s.db.Close()
	recorder := s.get("/persons")
	s.Equal(http.StatusInternalServerError, recorder.Code)
	s.Equal("No se pudo cargar el listado", recorder.Body.String())

	recorder = s.get("/persons/export")
	s.Equal(http.StatusInternalServerError, recorder.Code)
	s.Equal("No se pudo exportar el listado", recorder.Body.String())
}
