package cmd

import (
	"errors"
	"fmt"

	"github.com/kamusis/pandora-cli/internal/config"
	"github.com/kamusis/pandora-cli/internal/fetch"
	"github.com/kamusis/pandora-cli/internal/marketplace"
	"github.com/kamusis/pandora-cli/internal/search"
)

// openCatalog builds the catalog from the loaded configuration. The cache
// lives only as long as the process.
func openCatalog() (*marketplace.Catalog, error) {
	cfg := appConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	f := fetch.NewHTTP(nil, fetch.Options{
		Timeout:   cfg.HTTPTimeout.D(),
		Retries:   1,
		UserAgent: "pandora-cli/" + version,
		Logger:    logger,
	})
	src := marketplace.NewRemoteSource(f, marketplace.Endpoints{
		ManifestBase: cfg.ManifestBaseURL,
		RawBase:      cfg.RawBaseURL,
	})
	return marketplace.NewCatalog(src, marketplace.Options{
		TTL:    cfg.CacheTTL.D(),
		Logger: logger,
	})
}

func openSearch() (*marketplace.Catalog, *search.Service, error) {
	cat, err := openCatalog()
	if err != nil {
		return nil, nil, err
	}
	return cat, search.NewService(cat), nil
}

// explainCatalogErr turns a failed index load into an actionable message.
func explainCatalogErr(err error) error {
	if errors.Is(err, marketplace.ErrIndexUnavailable) {
		return fmt.Errorf("%w\nCheck your network or manifest_base_url and try again.", err)
	}
	return err
}
