package routers

import (
	"bitecare-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachRegistrationRoutes(router chi.Router, registrationController *controllers.RegistrationController) {
	router.Route("/{workflow}", func(r chi.Router) {
		r.Post("/start", registrationController.Start)
		r.Put("/form", registrationController.UpdateForm)
		r.Post("/advance", registrationController.Advance)
		r.Post("/retreat", registrationController.Retreat)
		r.Post("/submit", registrationController.Submit)
		r.Delete("/", registrationController.Abandon)
	})
}
