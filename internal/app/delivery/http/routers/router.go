package routers

import (
	"bitecare-service/internal/app/config"
	"bitecare-service/internal/app/delivery/http/controllers"
	"bitecare-service/internal/app/delivery/http/middlewares"
	"bitecare-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	registrationController *controllers.RegistrationController,
	appointmentController *controllers.AppointmentController,
	doseController *controllers.DoseController,
) {
	corsOptions := cors.Options{
		AllowedOrigins: internalConfig.App.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			constvars.HeaderContentType,
			constvars.HeaderRequestID,
			constvars.HeaderActorID,
			constvars.HeaderActorRole,
		},
		ExposedHeaders:   []string{constvars.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimiter())

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/doses", func(r chi.Router) {
			attachDoseRoutes(r, doseController)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireActor)

			r.Route("/registrations", func(r chi.Router) {
				attachRegistrationRoutes(r, registrationController)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, appointmentController)
			})
		})
	})
}
