package renderer_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/cypher"
	"github.com/deltegui/pmadmin/localizer"
	"github.com/deltegui/pmadmin/renderer"
)

var views = fstest.MapFS{
	"layout.html": {Data: []byte(`<title>{{ .Localize "title" }}</title>{{ template "content" . }}`)},
	"page.html": {Data: []byte(`{{ define "content" }}<p>{{ Uppercase .Model.Name }} {{ BoolToYesNo .Localizer .Model.Active }}</p>` +
		`{{ if .HaveFormError "Name" }}<em>{{ .GetFormError "Name" }}</em>{{ end }}` +
		`<script>var fields = {{ Json .Model.Fields }};</script>{{ end }}`)},
	"broken.html": {Data: []byte(`{{ define "content" }}{{ .Model.Missing }}{{ end }}`)},
}

var locales = fstest.MapFS{
	"shared.json": {Data: []byte(`{"es": {"shared.yes": "Sí", "shared.no": "No"}, "en": {"shared.yes": "Yes", "shared.no": "No"}}`)},
	"page.json":   {Data: []byte(`{"es": {"title": "Página", "required": "Obligatorio"}, "en": {"title": "Page"}}`)},
}

type pageModel struct {
	Name   string
	Active bool
	Fields []string
}

func newRouter() *pmadmin.Router {
	rend := renderer.NewTemplateRenderer(views)
	rend.AddDefaultTemplateFunctions()
	rend.Parse("page", "layout.html", "layout.html", "page.html")
	rend.Parse("broken", "layout.html", "layout.html", "broken.html")
	router := pmadmin.NewRouter()
	router.UseRenderer(rend)
	router.UseLocalizer(localizer.NewStore(locales, "shared", "errors", cypher.New()))
	router.Get("/page", func(ctx *pmadmin.Context) error {
		return ctx.RenderOk("page", pageModel{Name: "ada", Active: true, Fields: []string{"Name"}})
	})
	router.Get("/invalid", func(ctx *pmadmin.Context) error {
		return ctx.RenderWithErrors(http.StatusBadRequest, "page", pageModel{}, map[string]string{"Name": "required"})
	})
	router.Get("/broken", func(ctx *pmadmin.Context) error {
		return ctx.RenderOk("broken", pageModel{})
	})
	router.Get("/missing", func(ctx *pmadmin.Context) error {
		return ctx.RenderOk("missing", nil)
	})
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func TestRenderPage(t *testing.T) {
	recorder := get(newRouter(), "/page")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Want 200, got %d", recorder.Code)
	}
	body := recorder.Body.String()
	for _, want := range []string{"<title>Página</title>", "<p>ADA Sí</p>", `var fields = ["Name"];`} {
		if !strings.Contains(body, want) {
			t.Errorf("Want '%s' in '%s'", want, body)
		}
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Want html content type, got '%s'", ct)
	}
}

func TestRenderWithErrors(t *testing.T) {
	recorder := get(newRouter(), "/invalid")
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Want 400, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "<em>Obligatorio</em>") {
		t.Errorf("Want localized form error, got '%s'", recorder.Body.String())
	}
}

func TestRenderFailuresAnswerInternalError(t *testing.T) {
	for _, target := range []string{"/broken", "/missing"} {
		recorder := get(newRouter(), target)
		if recorder.Code != http.StatusInternalServerError {
			t.Errorf("%s: want 500, got %d", target, recorder.Code)
		}
		if strings.Contains(recorder.Body.String(), "<title>") {
			t.Errorf("%s: nothing of the page must be written", target)
		}
	}
}
