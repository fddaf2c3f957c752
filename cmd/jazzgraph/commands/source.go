package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/db"
	"github.com/teranos/jazzgraph/errors"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/logger"
)

// source is where a command's catalog came from, for banners and stats
type source struct {
	kind string // "database", "directory" or "embedded"
	path string
}

func (s source) String() string {
	if s.path == "" {
		return s.kind
	}
	return s.kind + " " + s.path
}

// loadConfig loads am.toml and checks it
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// loadCatalog resolves the dataset: a SQLite snapshot when one is configured
// and holds data, then a dataset directory, then the embedded dataset.
// --db and --data override the config.
func loadCatalog(cmd *cobra.Command, cfg *am.Config) (*catalog.Catalog, source, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			c, err := loadSnapshot(cmd.Context(), dbPath)
			switch {
			case err == nil:
				return c, source{kind: "database", path: dbPath}, nil
			case errors.IsNotFoundError(err):
				logger.Logger.Infow("Database holds no snapshot, falling back", logger.FieldFile, dbPath)
			default:
				return nil, source{}, err
			}
		}
	}

	dataDir, _ := cmd.Flags().GetString("data")
	if dataDir == "" {
		dataDir = cfg.Data.Dir
	}
	if dataDir != "" {
		c, err := catalog.LoadDir(dataDir)
		if err != nil {
			return nil, source{}, errors.Wrapf(err, "failed to load dataset from %s", dataDir)
		}
		return c, source{kind: "directory", path: dataDir}, nil
	}

	c, err := catalog.Default()
	if err != nil {
		return nil, source{}, errors.Wrap(err, "failed to load embedded dataset")
	}
	return c, source{kind: "embedded"}, nil
}

func loadSnapshot(ctx context.Context, path string) (*catalog.Catalog, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	database, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return nil, err
	}
	defer database.Close()
	return catalog.LoadSQLite(ctx, database)
}

// sessionOptions turns the config and -v count into explorer defaults
func sessionOptions(cmd *cobra.Command, cfg *am.Config) (explorer.Options, error) {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	return explorer.OptionsFromConfig(cfg, verbosity)
}

// newSession loads config and catalog and opens an explorer over them
func newSession(cmd *cobra.Command) (*explorer.Explorer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	c, src, err := loadCatalog(cmd, cfg)
	if err != nil {
		return nil, err
	}
	opts, err := sessionOptions(cmd, cfg)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debugw("Catalog loaded",
		"source", src.String(),
		"artists", len(c.Artists),
		"albums", len(c.Albums),
	)
	return explorer.New(c, opts, logger.ComponentLogger("explorer")), nil
}
