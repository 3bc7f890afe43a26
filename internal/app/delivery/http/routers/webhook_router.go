package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachWebhookRouter(router chi.Router, webhookController *controllers.WebhookController) {
	router.Post("/paystack", webhookController.PaystackWebhook)
}
