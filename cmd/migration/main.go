package main

import (
	"context"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/drivers/logger"
	"medibook-service/internal/app/services/core/payments"
)

// Ensures the MongoDB indexes the service depends on, most importantly the
// unique index on payment references that deduplicates gateway webhooks.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	paymentRepository := payments.NewPaymentMongoRepository(mongoClient, driverConfig.MongoDB.DbName)
	if err := paymentRepository.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure payment indexes: %v", err)
	}
	log.Println("payment indexes ensured")

	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Fatalf("disconnect mongodb: %v", err)
	}
	log.Println("migration finished")
}
