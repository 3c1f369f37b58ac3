package extensions

import (
	"io/fs"
	"time"

	"github.com/deltegui/pmadmin"
	"github.com/deltegui/pmadmin/csrf"
	"github.com/deltegui/pmadmin/cypher"
	"github.com/deltegui/pmadmin/localizer"
	"github.com/deltegui/pmadmin/renderer"
	"github.com/deltegui/pmadmin/validator"
)

func AddCypherWithPassword(r *pmadmin.Router, password string) {
	r.UseCypher(cypher.NewWithPasswordAsString(password))
}

func AddCypher(r *pmadmin.Router) {
	r.UseCypher(cypher.New())
}

// UseCsrf protects every route registered after the call. It reuses the
// router cypher, creating a random one if none was configured.
func UseCsrf(r *pmadmin.Router, duration time.Duration) *csrf.Csrf {
	if r.Cypher() == nil {
		AddCypher(r)
	}
	c := csrf.New(duration, r.Cypher())
	r.Use(csrf.Middleware(c))
	return c
}

func AddValidator(r *pmadmin.Router) {
	r.UseValidator(validator.New())
}

func AddRendering(r *pmadmin.Router, views fs.FS) *renderer.TemplateRenderer {
	rend := renderer.NewTemplateRenderer(views)
	rend.AddDefaultTemplateFunctions()
	r.UseRenderer(rend)
	return rend
}

func UseLocalizer(r *pmadmin.Router, files fs.FS, sharedKey, errorsKey string) *localizer.Store {
	if r.Cypher() == nil {
		AddCypher(r)
	}
	store := localizer.NewStore(files, sharedKey, errorsKey, r.Cypher())
	r.UseLocalizer(store)
	return store
}

// UseCors enables cors for origins. Without origins it does nothing.
func UseCors(r *pmadmin.Router, origins []string) {
	if len(origins) == 0 {
		return
	}
	r.UseCors(pmadmin.CorsOptions{AllowedOrigins: origins})
}
