package postgres

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../db/migrations"

var varcharColumn = regexp.MustCompile(`(?m)^\s*(\w+)\s+VARCHAR\((\d+)\)`)

// columnWidths maps column name to its VARCHAR width in one up migration.
func columnWidths(t *testing.T, file string) map[string]int {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(migrationsDir, file))
	require.NoError(t, err)
	widths := map[string]int{}
	for _, m := range varcharColumn.FindAllStringSubmatch(string(b), -1) {
		n, err := strconv.Atoi(m[2])
		require.NoError(t, err)
		widths[m[1]] = n
	}
	return widths
}

func TestMigrations_AuthorNameFitsAnyUserName(t *testing.T) {
	users := columnWidths(t, "000001_create_users.up.sql")
	posts := columnWidths(t, "000002_create_posts.up.sql")

	require.Contains(t, users, "name")
	require.Contains(t, posts, "author_name")
	assert.Equal(t, 1000, users["name"])
	assert.GreaterOrEqual(t, posts["author_name"], users["name"])
}

func TestMigrations_PostColumnsMatchFormLimits(t *testing.T) {
	posts := columnWidths(t, "000002_create_posts.up.sql")
	for _, col := range []string{"title", "subtitle", "img_url"} {
		assert.Equal(t, 250, posts[col], col)
	}
	assert.Equal(t, 100, columnWidths(t, "000001_create_users.up.sql")["email"])
}
