package routers

import (
	"bitecare-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachDoseRoutes(router chi.Router, doseController *controllers.DoseController) {
	router.Get("/", doseController.Lookup)
}
