package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/jazzgraph/am"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/db"
	"github.com/teranos/jazzgraph/explorer"
	jgtest "github.com/teranos/jazzgraph/internal/testing"
	"go.uber.org/zap/zaptest"
)

// testCmd carries the root persistent flags the helpers read
func testCmd(t *testing.T, data, dbPath string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().CountP("verbose", "v", "")
	cmd.Flags().String("data", "", "")
	cmd.Flags().String("db", "", "")
	require.NoError(t, cmd.Flags().Set("data", data))
	require.NoError(t, cmd.Flags().Set("db", dbPath))
	cmd.SetContext(context.Background())
	return cmd
}

func writeSnapshot(t *testing.T, path string, c *catalog.Catalog) {
	t.Helper()
	database, err := db.OpenWithMigrations(path, nil)
	require.NoError(t, err)
	defer database.Close()
	if c != nil {
		require.NoError(t, catalog.SaveSQLite(context.Background(), database, c))
	}
}

func TestLoadCatalogSources(t *testing.T) {
	chain := jgtest.ChainCatalog(t)

	t.Run("embedded by default", func(t *testing.T) {
		c, src, err := loadCatalog(testCmd(t, "", ""), &am.Config{})
		require.NoError(t, err)
		assert.Equal(t, "embedded", src.kind)
		assert.NotEmpty(t, c.Artists)
	})

	t.Run("dataset directory", func(t *testing.T) {
		dir := t.TempDir()
		data, err := catalog.Encode(chain, catalog.FormatJSON)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "artists.json"), data, 0o644))

		c, src, err := loadCatalog(testCmd(t, dir, ""), &am.Config{})
		require.NoError(t, err)
		assert.Equal(t, "directory "+dir, src.String())
		assert.Len(t, c.Artists, 5)
		assert.Empty(t, c.Albums)
	})

	t.Run("config directory when no flag", func(t *testing.T) {
		_, _, err := loadCatalog(testCmd(t, "", ""), &am.Config{Data: am.DataConfig{Dir: filepath.Join(t.TempDir(), "missing")}})
		assert.Error(t, err)
	})

	t.Run("snapshot wins over directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jazz.db")
		writeSnapshot(t, path, chain)

		c, src, err := loadCatalog(testCmd(t, "/does/not/exist", path), &am.Config{})
		require.NoError(t, err)
		assert.Equal(t, "database", src.kind)
		assert.Len(t, c.Artists, 5)
		assert.Len(t, c.Albums, 4)
	})

	t.Run("empty snapshot falls back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.db")
		writeSnapshot(t, path, nil)

		_, src, err := loadCatalog(testCmd(t, "", path), &am.Config{})
		require.NoError(t, err)
		assert.Equal(t, "embedded", src.kind)
	})

	t.Run("missing snapshot file is not created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "none.db")
		_, src, err := loadCatalog(testCmd(t, "", path), &am.Config{})
		require.NoError(t, err)
		assert.Equal(t, "embedded", src.kind)
		assert.NoFileExists(t, path)
	})
}

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, DefaultDatabasePath, databasePath(testCmd(t, "", ""), &am.Config{}))
	assert.Equal(t, "cfg.db", databasePath(testCmd(t, "", ""), &am.Config{Database: am.DatabaseConfig{Path: "cfg.db"}}))
	assert.Equal(t, "flag.db", databasePath(testCmd(t, "", "flag.db"), &am.Config{Database: am.DatabaseConfig{Path: "cfg.db"}}))
}

func TestQuerySnapshotStats(t *testing.T) {
	database := jgtest.CreateTestDB(t)
	require.NoError(t, catalog.SaveSQLite(context.Background(), database, jgtest.ChainCatalog(t)))

	st, err := querySnapshotStats(context.Background(), database)
	require.NoError(t, err)
	assert.Equal(t, "001", st.SchemaVersion)
	assert.Equal(t, 5, st.Catalog.Artists)
	assert.Equal(t, 4, st.Catalog.Albums)
	assert.Equal(t, 8, st.Catalog.Eras)
	assert.Equal(t, jgtest.ChainCatalog(t).Summary().Relations, st.Catalog.Relations)
	assert.Equal(t, 0, st.Labels)
}

func TestQuerySnapshotStatsError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(version\\)").
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("001"))
	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err = querySnapshotStats(context.Background(), conn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query snapshot stats")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func newREPLSession(t *testing.T) *explorer.Explorer {
	t.Helper()
	return explorer.New(jgtest.ChainCatalog(t), explorer.DefaultOptions(), zaptest.NewLogger(t).Sugar())
}

func TestREPLSession(t *testing.T) {
	e := newREPLSession(t)
	input := strings.Join([]string{
		"focus b",
		"path a c",
		"search a",
		"bogus",
		"focus nobody",
		"state",
		"quit",
		"show",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, runREPL(context.Background(), e, strings.NewReader(input), &out, false))

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, "Influence graph"), "show after quit must not run")
	assert.Contains(t, text, "focus=b depth=2")
	assert.Contains(t, text, "2 degree(s) of separation")
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Contains(t, text, "nobody")
	assert.Contains(t, text, "path=a>b>c")

	st := e.State()
	assert.Equal(t, "b", st.Filter.FocusArtistID)
	assert.Equal(t, []string{"a", "b", "c"}, st.Path)
}

func TestREPLFilterAndClear(t *testing.T) {
	e := newREPLSession(t)
	r := &repl{e: e, out: &bytes.Buffer{}}
	ctx := context.Background()

	_, err := r.exec(ctx, `filter focus=c era=`+catalog.EraBebop)
	require.NoError(t, err)
	assert.Equal(t, 2, e.State().Filter.Depth, "focus without depth uses the default")

	_, err = r.exec(ctx, `filter "focus=c" depth=0`)
	require.NoError(t, err)
	assert.Equal(t, 0, e.State().Filter.Depth)

	_, err = r.exec(ctx, `filter focus="unbalanced`)
	assert.Error(t, err)

	_, err = r.exec(ctx, "layout eras")
	require.NoError(t, err)
	_, err = r.exec(ctx, "layout diagonal")
	assert.Error(t, err)

	_, err = r.exec(ctx, "select a")
	require.NoError(t, err)
	_, err = r.exec(ctx, "clear")
	require.NoError(t, err)
	st := e.State()
	assert.False(t, st.Filter.HasFocus())
	assert.Empty(t, st.Selected)
	assert.Equal(t, "eras", st.Layout)
}

func TestREPLJSON(t *testing.T) {
	var out bytes.Buffer
	r := &repl{e: newREPLSession(t), out: &out, json: true}

	_, err := r.exec(context.Background(), "path a d")
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"degrees": 3`)
}

func TestHasKey(t *testing.T) {
	assert.True(t, hasKey([]string{"focus=a", "DEPTH=1"}, "depth"))
	assert.False(t, hasKey([]string{"depth"}, "depth"))
}

func TestIsRemote(t *testing.T) {
	assert.True(t, isRemote("https://example.com/catalog.json"))
	assert.True(t, isRemote("http://example.com/catalog.yaml"))
	assert.False(t, isRemote("catalog.json"))
	assert.False(t, isRemote("file:///tmp/catalog.json"))
}
