package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-movement/api"
	"github.com/carson-networks/money-movement/internal/analytics"
	"github.com/carson-networks/money-movement/internal/config"
	"github.com/carson-networks/money-movement/internal/logging"
	"github.com/carson-networks/money-movement/internal/operator"
	"github.com/carson-networks/money-movement/internal/service"
	"github.com/carson-networks/money-movement/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logger.Info("money-movement starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Warn("logging.SetLevel")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	ops := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers, logger)
	ops.Start()
	defer ops.Stop()

	recorder := newRecorder(ctx, envConfig, logger)
	if closer, ok := recorder.(*analytics.MongoRecorder); ok {
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = closer.Close(closeCtx)
		}()
	}

	svc := service.NewService(ops, dbStorage.Read(), recorder, logger)
	defer svc.Transfer.Wait()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.ServerPort,
		Storage: dbStorage,
		Service: svc,
	}
	httpRest.Serve(ctx)
}

func newRecorder(ctx context.Context, cfg *config.Config, logger *logrus.Logger) analytics.PairUsageRecorder {
	if cfg.AnalyticsMongoURI == "" {
		return analytics.NoopRecorder{}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	recorder, err := analytics.NewMongoRecorder(connectCtx, cfg.AnalyticsMongoURI, cfg.AnalyticsMongoDatabase, logger)
	if err != nil {
		logger.WithError(err).Warn("analytics.NewMongoRecorder, pair usage will not be recorded")
		return analytics.NoopRecorder{}
	}
	return recorder
}
