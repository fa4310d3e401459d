package services

import (
	"context"
	"sync"
	"time"

	"github.com/fachrinfl/ts-project-management-api/internal/logger"
	"github.com/fachrinfl/ts-project-management-api/internal/services/dto"
	"github.com/fachrinfl/ts-project-management-api/internal/storage"

	"gorm.io/gorm"
)

const healthProbeTimeout = 3 * time.Second

type HealthService interface {
	Check(ctx context.Context, db *gorm.DB) dto.HealthStatus
}

type healthService struct {
	storage storage.Storage
}

func NewHealthService(store storage.Storage) HealthService {
	return &healthService{storage: store}
}

// Check опрашивает БД и хранилище параллельно, каждую проверку ограничивает таймаутом
func (s *healthService) Check(ctx context.Context, db *gorm.DB) dto.HealthStatus {
	var (
		wg              sync.WaitGroup
		dbOK, storageOK bool
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		dbOK = s.probe(ctx, "database", func(ctx context.Context) error {
			return pingDatabase(ctx, db)
		})
	}()
	go func() {
		defer wg.Done()
		storageOK = s.probe(ctx, "storage", func(ctx context.Context) error {
			if s.storage == nil {
				return errStorageNotConfigured
			}
			return s.storage.Ping(ctx)
		})
	}()
	wg.Wait()

	status := dto.HealthStatus{
		Services: dto.HealthServices{Server: true, Database: dbOK, Storage: storageOK},
	}
	if status.Healthy() {
		status.Status = "OK"
		status.Message = "Server, database, and storage are healthy"
	} else {
		status.Status = "ERROR"
		status.Message = "Some services are down"
	}
	return status
}

func (s *healthService) probe(ctx context.Context, name string, fn func(ctx context.Context) error) bool {
	ctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		logger.CtxWarn(ctx, "Health probe failed", "service", name, "error", err)
		return false
	}
	return true
}

func pingDatabase(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errDatabaseNotConfigured
	}
	var one int
	return db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}
