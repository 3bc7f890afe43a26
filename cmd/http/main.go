package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/app/delivery/http/routers"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/drivers/logger"
	smtpdriver "medibook-service/internal/app/drivers/mailer"
	"medibook-service/internal/app/drivers/messaging"
	miniodriver "medibook-service/internal/app/drivers/storage"
	"medibook-service/internal/app/services/core/appointments"
	"medibook-service/internal/app/services/core/payments"
	"medibook-service/internal/app/services/core/professionals"
	"medibook-service/internal/app/services/core/subaccounts"
	"medibook-service/internal/app/services/core/users"
	"medibook-service/internal/app/services/shared/locker"
	mailerservice "medibook-service/internal/app/services/shared/mailer"
	"medibook-service/internal/app/services/shared/payment_gateway"
	"medibook-service/internal/app/services/shared/ratelimiter"
	"medibook-service/internal/app/services/shared/reconciliation"
	redisservice "medibook-service/internal/app/services/shared/redis"
	"medibook-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("load timezone", zap.Error(err))
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := miniodriver.NewMinio(driverConfig)
	smtpClient := smtpdriver.NewSMTPClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Redis:          redisClient,
		Logger:         log,
		RabbitMQ:       rabbitConn,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	bootstrapTheApp(bootstrap, mongoClient, minioClient, smtpClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info("shutdown signal received, draining in-flight requests")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}

func bootstrapTheApp(
	bootstrap *config.Bootstrap,
	mongoClient *mongo.Client,
	minioClient *minio.Client,
	smtpClient *smtpdriver.SMTPClient,
) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	redisRepository := redisservice.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	paystackService := payment_gateway.NewPaystackService(internalConfig, log)
	storageService := storage.NewMinioStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)
	hookRateLimiter := ratelimiter.NewHookRateLimiter(redisRepository, log, internalConfig)

	mailerService, err := mailerservice.NewMailerService(bootstrap.RabbitMQ, internalConfig.RabbitMQ.MailerQueue)
	if err != nil {
		log.Fatal("mailer service init", zap.Error(err))
	}

	mailerWorker, err := mailerservice.NewWorker(bootstrap.RabbitMQ, smtpClient, log, internalConfig.RabbitMQ.MailerQueue)
	if err != nil {
		log.Fatal("mailer worker init", zap.Error(err))
	}
	if err := mailerWorker.Start(); err != nil {
		log.Fatal("mailer worker start", zap.Error(err))
	}
	bootstrap.WorkerStop = mailerWorker.Stop

	reconciliationQueue, err := reconciliation.NewService(bootstrap.RabbitMQ, log, internalConfig.RabbitMQ.ReconciliationQueue)
	if err != nil {
		log.Fatal("reconciliation queue init", zap.Error(err))
	}

	// Repositories
	paymentRepository := payments.NewPaymentMongoRepository(mongoClient, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(mongoClient, dbName)
	userRepository := users.NewUserMongoRepository(mongoClient, dbName)
	professionalRepository := professionals.NewProfessionalMongoRepository(mongoClient, dbName)
	subaccountRepository := subaccounts.NewSubaccountMongoRepository(mongoClient, dbName)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := paymentRepository.EnsureIndexes(indexCtx); err != nil {
		log.Fatal("ensure payment indexes", zap.Error(err))
	}

	// Usecases
	paymentUsecase := payments.NewPaymentUsecase(
		paymentRepository,
		appointmentRepository,
		paystackService,
		redisRepository,
		reconciliationQueue,
		mailerService,
		internalConfig,
		log,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, professionalRepository, log)
	userUsecase := users.NewUserUsecase(userRepository, storageService, mailerService, internalConfig, log)
	professionalUsecase := professionals.NewProfessionalUsecase(professionalRepository, appointmentRepository, log)
	subaccountUsecase := subaccounts.NewSubaccountUsecase(subaccountRepository, paystackService, lockerService, log)

	// Controllers
	paymentController := controllers.NewPaymentController(log, paymentUsecase)
	webhookController := controllers.NewWebhookController(log, paymentUsecase, paystackService, hookRateLimiter)
	appointmentController := controllers.NewAppointmentController(log, appointmentUsecase)
	userController := controllers.NewUserController(log, userUsecase)
	professionalController := controllers.NewProfessionalController(log, professionalUsecase)
	subaccountController := controllers.NewSubaccountController(log, subaccountUsecase)

	mw := middlewares.NewMiddlewares(log, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		mw,
		paymentController,
		webhookController,
		appointmentController,
		userController,
		professionalController,
		subaccountController,
	)
}
