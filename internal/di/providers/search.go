package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shopfolio/shopfolio-server/internal/config"
	"github.com/shopfolio/shopfolio-server/internal/logger"
	"github.com/shopfolio/shopfolio-server/internal/search"
	"github.com/shopfolio/shopfolio-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(indexHandle.SearchIndex, storeHandle.Store, log.Logger)

	// Wire to store for automatic indexing
	storeHandle.SetSearchIndexer(svc)

	return svc, nil
}

// TriggerSearchRebuildIfNeeded rebuilds the index when it is empty but data exists.
// Should be called after all services are wired.
func TriggerSearchRebuildIfNeeded(i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := searchService.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	shops, err := storeHandle.ListShops(ctx)
	if err != nil || len(shops) == 0 {
		return
	}

	log.Info("Search index is empty but shops exist, triggering initial rebuild",
		"shop_count", len(shops),
	)

	go func() {
		rebuildCtx := context.Background()
		if err := searchService.RebuildIndex(rebuildCtx); err != nil {
			log.Error("Initial search rebuild failed", "error", err)
		} else {
			count, _ := searchService.DocumentCount()
			log.Info("Initial search rebuild completed", "documents", count)
		}
	}()
}
