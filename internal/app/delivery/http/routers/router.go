package routers

import (
	"fmt"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	paymentController *controllers.PaymentController,
	webhookController *controllers.WebhookController,
	appointmentController *controllers.AppointmentController,
	userController *controllers.UserController,
	professionalController *controllers.ProfessionalController,
	subaccountController *controllers.SubaccountController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{internalConfig.App.FrontendDomain},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))

	router.Use(mw.RequestIDMiddleware)
	router.Use(mw.Logging(mw.Log))
	router.Use(mw.ErrorHandler)

	endpointPrefix := internalConfig.App.EndpointPrefix
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/payments", func(r chi.Router) {
				attachPaymentRouter(r, paymentController)
			})

			r.Route("/hook", func(r chi.Router) {
				attachWebhookRouter(r, webhookController)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRouter(r, appointmentController)
			})

			r.Route("/users", func(r chi.Router) {
				attachUserRouter(r, userController)
			})

			r.Route("/professionals", func(r chi.Router) {
				attachProfessionalRouter(r, professionalController)
			})

			r.Route("/subaccounts", func(r chi.Router) {
				attachSubaccountRouter(r, subaccountController)
			})
		})
	})
}
