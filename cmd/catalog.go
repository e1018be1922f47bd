package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/config"
	"github.com/sells-group/scout-cli/internal/dataset"
	"github.com/sells-group/scout-cli/internal/jobtitle"
	"github.com/sells-group/scout-cli/internal/orgchart"
	"github.com/sells-group/scout-cli/internal/ownership"
	"github.com/sells-group/scout-cli/internal/resident"
	"github.com/sells-group/scout-cli/internal/resilience"
	"github.com/sells-group/scout-cli/internal/store"
)

// env bundles what every query command needs.
type env struct {
	Catalog  *dataset.Catalog
	Linker   *orgchart.Linker
	Resolver *resident.Resolver
	Sizes    browser.PageSizes
}

func initEnv(ctx context.Context, mode string) (*env, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	linker, err := newLinker(cfg.Rules)
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return &env{
		Catalog:  cat,
		Linker:   linker,
		Resolver: newResolver(cfg.Browse),
		Sizes:    pageSizes(cfg.Browse),
	}, nil
}

// loadCatalog reads the dataset from files or from the last import,
// depending on dataset.source.
func loadCatalog(ctx context.Context) (*dataset.Catalog, error) {
	if cfg.Dataset.Source == config.SourceFiles {
		return dataset.Load(ctx, sources(cfg.Dataset))
	}

	st, err := openStore(ctx, cfg.Dataset.Source)
	if err != nil {
		return nil, err
	}
	defer st.Close() //nolint:errcheck

	cat, err := st.LoadCatalog(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "load catalog from store")
	}
	zap.L().Info("catalog loaded from store",
		zap.String("driver", cfg.Dataset.Source),
		zap.String("version", cat.Version.String()),
		zap.Int("facilities", len(cat.Facilities)),
	)
	return cat, nil
}

// openStore connects to the store, retrying transient connection failures.
func openStore(ctx context.Context, driver string) (store.Store, error) {
	poolCfg := &store.PoolConfig{
		MaxConns: cfg.Store.MaxConns,
		MinConns: cfg.Store.MinConns,
	}
	retry := resilience.FromConfig(cfg.Store.ConnectAttempts, cfg.Store.ConnectBackoffMs)
	retry.OnRetry = resilience.RetryLogger("open " + driver + " store")

	st, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (store.Store, error) {
		return store.Open(ctx, driver, cfg.Store.DatabaseURL, poolCfg)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "open %s store", driver)
	}
	return st, nil
}

func sources(c config.DatasetConfig) dataset.Sources {
	return dataset.Sources{
		Facilities: c.Facilities,
		Contacts:   c.Contacts,
		Residents:  c.Residents,
	}
}

// newLinker builds the linker from the built-in rule tables, replaced by
// the configured YAML files when set.
func newLinker(c config.RulesConfig) (*orgchart.Linker, error) {
	owners := ownership.NewDefault()
	if c.OwnershipPath != "" {
		rules, err := ownership.LoadRules(c.OwnershipPath)
		if err != nil {
			return nil, eris.Wrap(err, "load ownership rules")
		}
		owners = ownership.New(rules)
	}

	titles := jobtitle.NewDefault()
	if c.JobTitlePath != "" {
		rules, err := jobtitle.LoadRules(c.JobTitlePath)
		if err != nil {
			return nil, eris.Wrap(err, "load job title rules")
		}
		titles = jobtitle.New(rules)
	}

	return orgchart.NewLinker(owners, titles), nil
}

func newResolver(c config.BrowseConfig) *resident.Resolver {
	r := resident.NewResolver()
	r.MinAge = c.MinResidentAge
	return r
}

func pageSizes(c config.BrowseConfig) browser.PageSizes {
	return browser.PageSizes{
		Card:      c.CardPageSize,
		Table:     c.TablePageSize,
		Residents: c.ResidentPageSize,
	}
}
