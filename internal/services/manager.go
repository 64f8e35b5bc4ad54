package services

import (
	"log/slog"

	"github.com/readinglab/passage-service/internal/cache"
	"github.com/readinglab/passage-service/internal/events"
	"github.com/readinglab/passage-service/internal/generator"
	"github.com/readinglab/passage-service/internal/repositories"
)

// ServiceManager bundles the services behind one dependency for the
// handlers and the scheduler.
type ServiceManager interface {
	Passage() PassageService
	Result() ResultService
	Batch() BatchService
	Export() ExportService
}

type serviceManager struct {
	passage PassageService
	result  ResultService
	batch   BatchService
	export  ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	gen *generator.Client,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
) ServiceManager {
	passage := NewPassageService(repo, gen, cacheService, publisher, logger)
	return &serviceManager{
		passage: passage,
		result:  NewResultService(repo, cacheService, publisher, logger),
		batch:   NewBatchService(repo, passage, logger),
		export:  NewExportService(repo, logger),
	}
}

func (m *serviceManager) Passage() PassageService { return m.passage }
func (m *serviceManager) Result() ResultService   { return m.result }
func (m *serviceManager) Batch() BatchService     { return m.batch }
func (m *serviceManager) Export() ExportService   { return m.export }
