package pmadmin

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deltegui/pmadmin/core"
	"github.com/deltegui/pmadmin/localizer"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

type Handler func(c *Context) error

type Middleware func(Handler) Handler

type CorsOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type Router struct {
	router      *httprouter.Router
	middlewares []Middleware
	renderer    Renderer
	locstore    *localizer.Store
	validate    core.Validator
	cy          core.Cypher
	cors        *cors.Cors
}

func NewRouter() *Router {
	return &Router{
		router:      httprouter.New(),
		middlewares: []Middleware{},
	}
}

func (r *Router) UseRenderer(renderer Renderer) {
	r.renderer = renderer
}

func (r *Router) UseLocalizer(store *localizer.Store) {
	r.locstore = store
}

func (r *Router) UseValidator(validate core.Validator) {
	r.validate = validate
}

func (r *Router) UseCypher(cy core.Cypher) {
	r.cy = cy
}

func (r *Router) UseCors(opt CorsOptions) {
	methods := opt.AllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := opt.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{"*"}
	}
	r.cors = cors.New(cors.Options{
		AllowedOrigins:   opt.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
	})
}

// Cypher returns the cypher used for cookies, nil if none was configured.
func (r *Router) Cypher() core.Cypher {
	return r.cy
}

func (r *Router) Validator() core.Validator {
	return r.validate
}

func (r *Router) Localizer() *localizer.Store {
	return r.locstore
}

// Use appends a middleware applied to every route registered after the call.
func (r *Router) Use(middleware Middleware) {
	r.middlewares = append(r.middlewares, middleware)
}

func (r *Router) createContext(w *responseWriter, req *http.Request, params httprouter.Params) *Context {
	return &Context{
		Req:      req,
		Res:      w,
		params:   params,
		ctx:      req.Context(),
		locstore: r.locstore,
		renderer: r.renderer,
		validate: r.validate,
		cy:       r.cy,
	}
}

func (r *Router) chain(handler Handler, middlewares []Middleware) Handler {
	h := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	return h
}

func (r *Router) mount(method, pattern string, h Handler) {
	r.router.Handle(method, pattern, func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		rw := newResponseWriter(w)
		ctx := r.createContext(rw, req, params)
		if err := h(ctx); err != nil {
			if !rw.Written() {
				writeError(rw, err)
			}
			logHttp(req, rw.statusCode, "handler failed: %s", err)
		}
	})
}

// Handle registers handler behind the route middlewares, and those behind
// the global ones. An error returned by the chain is answered with its
// status when it is a *StatusError, 500 otherwise.
func (r *Router) Handle(method, pattern string, handler Handler, middlewares ...Middleware) {
	r.mount(method, pattern, r.chain(handler, middlewares))
}

// HandleWithin is Handle with outer wrapping the whole chain, global
// middlewares included.
func (r *Router) HandleWithin(outer Middleware, method, pattern string, handler Handler, middlewares ...Middleware) {
	r.mount(method, pattern, outer(r.chain(handler, middlewares)))
}

func (r *Router) Get(pattern string, handler Handler, middlewares ...Middleware) {
	r.Handle(http.MethodGet, pattern, handler, middlewares...)
}

func (r *Router) Post(pattern string, handler Handler, middlewares ...Middleware) {
	r.Handle(http.MethodPost, pattern, handler, middlewares...)
}

// Static serves files from fsys under path, which must end with /*filepath.
func (r *Router) Static(path string, fsys fs.FS) {
	r.router.ServeFiles(path, http.FS(fsys))
}

// Handler returns the complete http stack: real ip and request id, gzip,
// optional cors and the routes.
func (r *Router) Handler() http.Handler {
	var h http.Handler = r.router
	if r.cors != nil {
		h = r.cors.Handler(h)
	}
	h = chimiddleware.Compress(5)(h)
	h = chimiddleware.RequestID(h)
	h = chimiddleware.RealIP(h)
	return h
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func startServer(server *http.Server) {
	log.Println("[PMADMIN] Listening on address: ", server.Addr)
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln("[PMADMIN] Error while listening: ", err)
	}
}

func waitAndStopServer(server *http.Server) {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done

	log.Print("[PMADMIN] Server Stopped")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("[PMADMIN] Server shutdown failed:%+v", err)
	}

	log.Print("[PMADMIN] Server exited properly")
}

type ServerOptions struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Run listens on opt.Address until the process receives SIGINT or SIGTERM.
func (r *Router) Run(opt ServerOptions) {
	server := &http.Server{
		Addr:         opt.Address,
		Handler:      r.Handler(),
		ReadTimeout:  opt.ReadTimeout,
		WriteTimeout: opt.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	go startServer(server)
	waitAndStopServer(server)
}
