package api

import (
	"net/http"

	"github.com/kudoslabs/kudos/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Feedback.Handler(domain.Identity).Routes(),
		domain.Tones.Handler().Routes(),
		domain.Enhance.Handler().Routes(),
		domain.Identity.Handler().Routes(),
	)
}
