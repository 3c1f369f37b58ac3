package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"strings"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/localizer"
	"github.com/deltegui/pmadmin/model"
)

type TemplateRenderer struct {
	tmpl      map[string]*template.Template
	tmplFuncs template.FuncMap
	tmplFS    fs.FS
}

func NewTemplateRenderer(files fs.FS) *TemplateRenderer {
	return &TemplateRenderer{
		tmpl:      make(map[string]*template.Template),
		tmplFS:    files,
		tmplFuncs: template.FuncMap{},
	}
}

func (r *TemplateRenderer) ShowAvailableTemplates() {
	log.Println("[PMADMIN] Templates:")
	for key, value := range r.tmpl {
		log.Println("[PMADMIN]", key, "->", value.Name())
	}
}

func (r *TemplateRenderer) Render(ctx *pmadmin.Context, status int, parsed string, vm any) error {
	return r.RenderWithErrors(ctx, status, parsed, vm, nil)
}

// RenderWithErrors executes the template into a buffer first, so a failing
// template never leaves a half written page behind.
func (r *TemplateRenderer) RenderWithErrors(ctx *pmadmin.Context, status int, parsed string, vm any, formErrors map[string]string) error {
	if ctx == nil {
		panic("Called to Render outside request: no context!")
	}
	tmpl, ok := r.tmpl[parsed]
	if !ok {
		return fmt.Errorf("error executing template with parsed name: '%s'. It does not exists", parsed)
	}
	model := model.CreateViewModel(ctx, parsed, vm)
	model.FormErrors = formErrors
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, model); err != nil {
		return fmt.Errorf("error executing template with parsed name '%s': %w", parsed, err)
	}
	ctx.Res.Header().Set("Content-Type", "text/html; charset=utf-8")
	ctx.Res.WriteHeader(status)
	_, err := buf.WriteTo(ctx.Res)
	return err
}

func (r *TemplateRenderer) AddDefaultTemplateFunctions() {
	r.tmplFuncs = template.FuncMap{
		"Uppercase": strings.ToUpper,
		"StringNotEmpty": func(v string) bool {
			return len(v) > 0
		},
		"BoolToYesNo": func(loc localizer.Localizer, b bool) string {
			if b {
				return loc.Get("shared.yes")
			}
			return loc.Get("shared.no")
		},
		"SelectList": func(loc localizer.Localizer, list model.SelectList) model.ViewModel {
			return model.ViewModel{
				Localizer: loc,
				Model:     list,
			}
		},
		"CreateSelectList": func(loc localizer.Localizer, name string, items []model.SelectItem) model.ViewModel {
			return model.CreateSelectListViewModel(loc, name, items, false)
		},
		"LanguageSelectList": model.LanguageSelectList,
		"Json": func(v any) (template.JS, error) {
			raw, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(raw), nil
		},
	}
}

// AddTemplateFunction registers a new template function. Call
// AddDefaultTemplateFunctions first to keep the default ones.
func (r *TemplateRenderer) AddTemplateFunction(name string, f any) {
	if r.tmplFuncs == nil {
		r.tmplFuncs = template.FuncMap{}
	}
	r.tmplFuncs[name] = f
}

// Parse compiles the files matched by patterns under name. main is the
// template executed on render.
func (r *TemplateRenderer) Parse(name, main string, patterns ...string) {
	tmpl := template.New(main).Funcs(r.tmplFuncs)
	r.tmpl[name] = template.Must(tmpl.ParseFS(r.tmplFS, patterns...))
}

func (r *TemplateRenderer) ParsePartial(name string, patterns ...string) {
	tmpl := template.New("partial").Funcs(r.tmplFuncs)
	compilation, err := tmpl.ParseFS(r.tmplFS, patterns...)
	if err != nil {
		log.Panicln("Failed to parse partial view:", err)
	}
	main := fmt.Sprintf("{{ template \"%s\" . }}", name)
	r.tmpl[name] = template.Must(compilation.Parse(main))
}
