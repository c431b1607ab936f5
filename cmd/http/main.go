package main

import (
	"bitecare-service/internal/app/config"
	"bitecare-service/internal/app/delivery/http/controllers"
	"bitecare-service/internal/app/delivery/http/middlewares"
	"bitecare-service/internal/app/delivery/http/routers"
	"bitecare-service/internal/app/drivers/database"
	"bitecare-service/internal/app/drivers/logger"
	"bitecare-service/internal/app/drivers/messaging"
	"bitecare-service/internal/app/services/core/appointments"
	"bitecare-service/internal/app/services/core/dosing"
	"bitecare-service/internal/app/services/core/patients"
	"bitecare-service/internal/app/services/core/provisioning"
	"bitecare-service/internal/app/services/core/reaper"
	"bitecare-service/internal/app/services/core/registration"
	"bitecare-service/internal/app/services/shared/drafts"
	"bitecare-service/internal/app/services/shared/locker"
	"bitecare-service/internal/app/services/shared/recordstore"
	"bitecare-service/internal/app/services/shared/redis"
	"bitecare-service/internal/app/services/shared/validation"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx := context.Background()
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Record store
	err := recordstore.EnsureIndexes(ctx, bootstrap.MongoDB, dbName)
	if err != nil {
		return err
	}
	changeFeed, err := recordstore.NewChangeFeed(bootstrap.RabbitMQ, bootstrap.InternalConfig.ChangeFeed.Exchange, bootstrap.Logger)
	if err != nil {
		return err
	}
	recordStore := recordstore.NewMongoRecordStore(bootstrap.MongoDB, dbName, changeFeed, bootstrap.Logger)

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	draftTTL := time.Duration(bootstrap.InternalConfig.Draft.TTLInHours) * time.Hour
	draftStore := drafts.NewDraftStore(redisRepository, draftTTL, bootstrap.Logger)

	// Repositories
	appointmentRepository := appointments.NewAppointmentRepository(recordStore, bootstrap.Logger)
	patientRepository := patients.NewPatientRepository(recordStore, bootstrap.Logger)

	// Domain services
	doseScheduler := dosing.NewDoseScheduler()
	formValidator := validation.NewFormValidator(bootstrap.Logger, time.Now)
	provisioningService := provisioning.NewProvisioningService(patientRepository, bootstrap.Logger)

	// Usecases
	registrationUsecase := registration.NewRegistrationUsecase(
		draftStore,
		formValidator,
		provisioningService,
		appointmentRepository,
		patientRepository,
		doseScheduler,
		lockService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, formValidator, bootstrap.Logger)

	// Orphan reaper
	if bootstrap.InternalConfig.Reaper.Enabled {
		reaperWorker := reaper.NewWorker(
			bootstrap.Logger,
			bootstrap.InternalConfig,
			lockService,
			patientRepository,
			appointmentRepository,
			provisioningService,
		)
		reaperWorker.Start(ctx)
		bootstrap.ReaperStop = reaperWorker.Stop
	}

	// Delivery
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)
	registrationController := controllers.NewRegistrationController(bootstrap.Logger, registrationUsecase, doseScheduler)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)
	doseController := controllers.NewDoseController(bootstrap.Logger, doseScheduler, bootstrap.InternalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		registrationController,
		appointmentController,
		doseController,
	)
	return nil
}
