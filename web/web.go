package web

import (
	"embed"
	"io/fs"
	"log"

	"github.com/deltegui/pmadmin/renderer"
)

const (
	SharedKey string = "shared"
	ErrorsKey string = "errors"
)

//go:embed views
var views embed.FS

//go:embed locales
var locales embed.FS

//go:embed static
var static embed.FS

func sub(files embed.FS, dir string) fs.FS {
	s, err := fs.Sub(files, dir)
	if err != nil {
		log.Panicln("Cannot open embedded directory", dir, err)
	}
	return s
}

func Views() fs.FS {
	return sub(views, "views")
}

func Locales() fs.FS {
	return sub(locales, "locales")
}

func Static() fs.FS {
	return sub(static, "static")
}

// Parse compiles every page over the shared layout and partials.
func Parse(rend *renderer.TemplateRenderer) {
	for _, page := range []string{"home", "resource"} {
		rend.Parse(page, "layout.html", "layout.html", "partials/*.html", page+".html")
	}
}
