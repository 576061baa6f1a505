package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/riccardocatervi/JBudget-sub001/internal/config"
	"github.com/riccardocatervi/JBudget-sub001/internal/logging"
	"github.com/riccardocatervi/JBudget-sub001/internal/operator"
	"github.com/riccardocatervi/JBudget-sub001/internal/service"
	"github.com/riccardocatervi/JBudget-sub001/internal/storage/postgres"
	"github.com/riccardocatervi/JBudget-sub001/internal/worker"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-core starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := postgres.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("postgres.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.NumOperators)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catchUp := &worker.CatchUp{
		Logger:     logger,
		Recurrence: svc.Recurrence,
		Interval:   envConfig.WorkerInterval,
	}
	catchUp.Run(ctx)

	logrus.Info("ledger-core stopped")
}
