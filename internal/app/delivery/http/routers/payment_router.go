package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRouter(router chi.Router, paymentController *controllers.PaymentController) {
	router.Post("/start-payment", paymentController.StartPayment)
	router.Post("/create-payment", paymentController.CreatePayment)
	router.Get("/payment-details", paymentController.GetPaymentDetails)
	router.Post("/{appointmentId}/confirm", paymentController.ConfirmAppointmentPayment)
}
