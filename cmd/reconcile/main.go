package main

import (
	"context"
	"flag"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/drivers/logger"
	"medibook-service/internal/app/drivers/messaging"
	"medibook-service/internal/app/services/shared/reconciliation"

	"github.com/sirupsen/logrus"
)

// Drains the payment reconciliation queue and prints each entry so an
// operator can re-check the gateway and repair appointment state by hand.
func main() {
	maxEntries := flag.Int("max", 100, "maximum number of entries to drain")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)
	zapLog := logger.NewZapLogger(driverConfig, internalConfig)

	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	defer rabbitConn.Close()

	queue, err := reconciliation.NewService(rabbitConn, zapLog, internalConfig.RabbitMQ.ReconciliationQueue)
	if err != nil {
		log.Fatalf("reconciliation queue init: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := queue.FetchN(ctx, *maxEntries)
	if err != nil {
		log.Fatalf("drain reconciliation queue: %v", err)
	}

	if len(entries) == 0 {
		log.Println("reconciliation queue is empty")
		return
	}

	for _, entry := range entries {
		log.WithFields(logrus.Fields{
			"reference":   entry.Reference,
			"reason":      entry.Reason,
			"observed_at": entry.ObservedAt.Format(time.RFC3339),
		}).Warn("payment recorded without activated appointment")
	}
	log.Printf("drained %d entries, verify each against the gateway dashboard", len(entries))
}
