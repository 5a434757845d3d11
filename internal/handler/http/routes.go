package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withSession)

	// layer delivery: bytes or plain-text 403/404, nothing else
	router.Group(func(r chi.Router) {
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Get("/secure-image/{token}", h.secureImage)
	})

	router.Route("/api", func(r chi.Router) {
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(withGZip)

		r.Get("/version/", h.getServerVersion)

		r.Post("/images", h.uploadImage)
		r.Get("/images/{id}", h.getImage)
		r.Delete("/images/{id}", h.deleteImage)
		r.Get("/images/{id}/presentation", h.getPresentation)

		r.Get("/presentation/styles.css", h.getStylesheet)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
