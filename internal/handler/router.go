package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sitecraft/sitecraft-go/internal/middleware"
)

// Routes bundles the handlers and middleware mounted by NewRouter.
type Routes struct {
	Logger    *slog.Logger
	Tokens    middleware.TokenVerifier
	Home      *HomeHandler
	Auth      *AuthHandler
	Generator *GeneratorHandler
	Sites     *SiteHandler

	// AuthLimiter, when set, guards signup and login.
	AuthLimiter func(http.Handler) http.Handler
}

// NewRouter builds the HTTP front door.
// Preview is deliberately public so generated sites can be shared by link;
// list, delete and export all require a bearer token.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(rt.Logger))
	r.Use(middleware.Recoverer(rt.Logger))

	r.Get("/", rt.Home.HandleIndex)
	r.Get("/health", HandleHealth)

	r.Route("/auth", func(r chi.Router) {
		if rt.AuthLimiter != nil {
			r.Use(rt.AuthLimiter)
		}
		r.Post("/signup", rt.Auth.HandleSignup)
		r.Post("/login", rt.Auth.HandleLogin)
	})

	r.Route("/generate", func(r chi.Router) {
		r.Get("/preview/{id}", rt.Sites.HandlePreview)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(rt.Tokens))
			r.Post("/", rt.Generator.HandleGenerate)
			r.Get("/list", rt.Sites.HandleList)
			r.Delete("/delete/{id}", rt.Sites.HandleDelete)
			r.Get("/export/{id}.html", rt.Sites.HandleExport)
		})
	})

	return r
}
