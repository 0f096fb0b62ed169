package routes

import (
	"context"
	"fmt"

	"oficina_motos/internal/adapter/persistence/repository"
	"oficina_motos/internal/infrastructure/config"
	"oficina_motos/internal/infrastructure/database"
	"oficina_motos/internal/usecase/interfaces"
)

type storage struct {
	budgets interfaces.IBudgetRepository
	links   interfaces.IOrderLinkAdapter
	uow     interfaces.IUnitOfWork
}

func newStorage(ctx context.Context, cfg config.Config) (storage, error) {
	if cfg.StorageDriver == config.DriverDynamoDB {
		ddb, err := database.ConnectDynamoDB(ctx, cfg.Dynamo)
		if err != nil {
			return storage{}, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		return storage{
			budgets: repository.NewBudgetDynamoRepository(ddb),
			links:   repository.NewOrderLinkDynamoAdapter(ddb),
			uow:     repository.NewDynamoUnitOfWork(ddb),
		}, nil
	}

	db, err := database.ConnectGorm(cfg)
	if err != nil {
		return storage{}, err
	}
	if err := repository.AutoMigrate(db); err != nil {
		return storage{}, fmt.Errorf("automigrate: %w", err)
	}
	return storage{
		budgets: repository.NewBudgetGormRepository(db),
		links:   repository.NewOrderLinkGormAdapter(db),
		uow:     repository.NewGormUnitOfWork(db),
	}, nil
}
