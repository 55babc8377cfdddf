package routes

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"oficina_assistant/internal/adapter/persistence/memory"
	"oficina_assistant/internal/adapter/persistence/repository"
	"oficina_assistant/internal/infrastructure/config"
	"oficina_assistant/internal/infrastructure/database"
	"oficina_assistant/internal/usecase/assistant"
	"oficina_assistant/internal/usecase/interfaces"
)

// repositories is the full set of tenant-scoped stores for one driver.
type repositories struct {
	tenants      interfaces.ITenantRepository
	customers    interfaces.ICustomerRepository
	vehicles     interfaces.IVehicleRepository
	quotes       interfaces.IQuoteRepository
	serviceItems interfaces.IServiceItemRepository
	reminders    interfaces.IMaintenanceReminderRepository
	suppliers    interfaces.ISupplierRepository
	payments     interfaces.IBillingPaymentRepository
}

func (r repositories) toolStore() assistant.Store {
	return assistant.Store{
		Customers:    r.customers,
		Vehicles:     r.vehicles,
		Quotes:       r.quotes,
		ServiceItems: r.serviceItems,
		Reminders:    r.reminders,
		Suppliers:    r.suppliers,
	}
}

func newRepositories(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		db := memory.NewDB()
		if cfg.MemorySeedFile == "" {
			logger.Warn("[http][routes] MEMORY_SEED_FILE not set, in-memory store starts without tenants")
		} else {
			seed, err := memory.LoadSeedFile(cfg.MemorySeedFile)
			if err != nil {
				return repositories{}, err
			}
			if err := seed.Apply(db); err != nil {
				return repositories{}, fmt.Errorf("apply memory seed: %w", err)
			}
			logger.WithFields(logrus.Fields{
				"tenants":       len(seed.Tenants),
				"service_items": len(seed.ServiceItems),
			}).Info("[http][routes] in-memory store seeded")
		}
		logger.Warn("[http][routes] using in-memory storage, data is lost on restart")
		return memoryRepositories(db), nil
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return repositories{}, fmt.Errorf("connect dynamodb: %w", err)
		}
		return repositories{
			tenants:      repository.NewTenantDynamoRepository(ddb),
			customers:    repository.NewCustomerDynamoRepository(ddb),
			vehicles:     repository.NewVehicleDynamoRepository(ddb),
			quotes:       repository.NewQuoteDynamoRepository(ddb),
			serviceItems: repository.NewServiceItemDynamoRepository(ddb),
			reminders:    repository.NewMaintenanceReminderDynamoRepository(ddb),
			suppliers:    repository.NewSupplierDynamoRepository(ddb),
			payments:     repository.NewBillingPaymentDynamoRepository(ddb),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func memoryRepositories(db *memory.DB) repositories {
	return repositories{
		tenants:      memory.NewTenantRepository(db),
		customers:    memory.NewCustomerRepository(db),
		vehicles:     memory.NewVehicleRepository(db),
		quotes:       memory.NewQuoteRepository(db),
		serviceItems: memory.NewServiceItemRepository(db),
		reminders:    memory.NewMaintenanceReminderRepository(db),
		suppliers:    memory.NewSupplierRepository(db),
		payments:     memory.NewBillingPaymentRepository(db),
	}
}
