package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/db"
	"github.com/teranos/jazzgraph/display"
	"github.com/teranos/jazzgraph/errors"
	"github.com/teranos/jazzgraph/internal/httpclient"
	"github.com/teranos/jazzgraph/logger"
)

// DefaultDatabasePath is used when neither --db nor database.path is set
const DefaultDatabasePath = "jazzgraph.db"

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the SQLite catalog snapshot",
	Long: `Import a dataset into a SQLite snapshot and inspect it.

Once database.path (or --db) names a snapshot, every command reads the
catalog from it instead of the dataset files.

Examples:
  jazzgraph db import --db jazz.db                    # embedded dataset
  jazzgraph db import --db jazz.db --data ./dataset
  jazzgraph db import --db jazz.db catalog.yaml
  jazzgraph db import --db jazz.db https://example.com/catalog.json
  jazzgraph db stats --db jazz.db
  jazzgraph db export --db jazz.db --format toml`,
}

var dbImportCmd = &cobra.Command{
	Use:   "import [FILE|URL]",
	Short: "Replace the snapshot with a dataset",
	Long:  "Load a combined dataset FILE or http(s) URL, the --data directory, or the embedded dataset and write it to the snapshot in one transaction.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDbImport,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show snapshot statistics",
	Args:  cobra.NoArgs,
	RunE:  runDbStats,
}

var dbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the snapshot as a dataset document to stdout",
	Args:  cobra.NoArgs,
	RunE:  runDbExport,
}

var exportFormat string

func init() {
	dbExportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, yaml, toml")

	DbCmd.AddCommand(dbImportCmd)
	DbCmd.AddCommand(dbStatsCmd)
	DbCmd.AddCommand(dbExportCmd)
}

// databasePath resolves --db, then database.path, then DefaultDatabasePath
func databasePath(cmd *cobra.Command, cfg *am.Config) string {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path
	}
	return DefaultDatabasePath
}

func runDbImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var (
		c    *catalog.Catalog
		from string
	)
	dataDir, _ := cmd.Flags().GetString("data")
	if dataDir == "" {
		dataDir = cfg.Data.Dir
	}
	switch {
	case len(args) == 1 && isRemote(args[0]):
		c, err = fetchCatalog(cmd.Context(), args[0])
		from = args[0]
	case len(args) == 1:
		c, err = catalog.LoadFile(args[0])
		from = args[0]
	case dataDir != "":
		c, err = catalog.LoadDir(dataDir)
		from = dataDir
	default:
		c, err = catalog.Default()
		from = "embedded dataset"
	}
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", from)
	}

	path := databasePath(cmd, cfg)
	database, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := catalog.SaveSQLite(cmd.Context(), database, c); err != nil {
		return errors.Wrapf(err, "failed to import into %s", path)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(map[string]interface{}{"database": path, "source": from, "stats": c.Summary()})
	}
	s := c.Summary()
	pterm.Success.Printf("Imported %d artists, %d albums, %d eras from %s into %s\n",
		s.Artists, s.Albums, s.Eras, from, path)
	return nil
}

func isRemote(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// fetchCatalog downloads a combined dataset document. The format follows the
// URL path extension and defaults to JSON.
func fetchCatalog(ctx context.Context, rawURL string) (*catalog.Catalog, error) {
	client := httpclient.New(httpclient.Options{})
	u, err := client.ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	format, ok := catalog.FormatFor(u.Path)
	if !ok {
		format = catalog.FormatJSON
	}
	data, err := client.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return catalog.Parse(data, format)
}

// snapshotStats describes what a snapshot database holds
type snapshotStats struct {
	Path          string        `json:"path"`
	SchemaVersion string        `json:"schemaVersion"`
	Catalog       catalog.Stats `json:"catalog"`
	Labels        int           `json:"labels"`
	YearsFrom     int           `json:"yearsFrom"`
	YearsTo       int           `json:"yearsTo"`
}

// querySnapshotStats reads counts straight from the snapshot tables
func querySnapshotStats(ctx context.Context, database *sql.DB) (snapshotStats, error) {
	var st snapshotStats

	err := database.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), '') FROM schema_migrations`).Scan(&st.SchemaVersion)
	if err != nil {
		return st, errors.Wrap(err, "failed to read schema version")
	}

	err = database.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM artists),
			(SELECT COUNT(*) FROM albums),
			(SELECT COUNT(*) FROM eras),
			(SELECT COUNT(DISTINCT label) FROM albums WHERE label != ''),
			(SELECT COALESCE(MIN(year), 0) FROM albums WHERE year > 0),
			(SELECT COALESCE(MAX(year), 0) FROM albums)
	`).Scan(&st.Catalog.Artists, &st.Catalog.Albums, &st.Catalog.Eras, &st.Labels, &st.YearsFrom, &st.YearsTo)
	if err != nil {
		return st, errors.Wrap(err, "failed to query snapshot stats")
	}

	err = database.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(json_array_length(influences) + json_array_length(influenced_by)), 0)
		FROM artists
	`).Scan(&st.Catalog.Relations)
	if err != nil {
		return st, errors.Wrap(err, "failed to count relations")
	}
	return st, nil
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := databasePath(cmd, cfg)
	if _, err := os.Stat(path); err != nil {
		return errors.WithHint(errors.Wrapf(err, "no snapshot at %s", path), "run 'jazzgraph db import' first")
	}

	database, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return err
	}
	defer database.Close()

	st, err := querySnapshotStats(cmd.Context(), database)
	if err != nil {
		return err
	}
	st.Path = path

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(st)
	}
	pterm.DefaultSection.Println("Catalog snapshot")
	return pterm.DefaultTable.WithData(pterm.TableData{
		{"Database", st.Path},
		{"Schema", st.SchemaVersion},
		{"Artists", fmt.Sprint(st.Catalog.Artists)},
		{"Albums", fmt.Sprint(st.Catalog.Albums)},
		{"Eras", fmt.Sprint(st.Catalog.Eras)},
		{"Relations", fmt.Sprint(st.Catalog.Relations)},
		{"Labels", fmt.Sprint(st.Labels)},
		{"Years", fmt.Sprintf("%d-%d", st.YearsFrom, st.YearsTo)},
	}).Render()
}

func runDbExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := databasePath(cmd, cfg)
	database, err := db.OpenWithMigrations(path, logger.Logger)
	if err != nil {
		return err
	}
	defer database.Close()

	c, err := catalog.LoadSQLite(cmd.Context(), database)
	if err != nil {
		return err
	}
	data, err := catalog.Encode(c, catalog.Format(exportFormat))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
