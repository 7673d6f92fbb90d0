package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportJSONL(t *testing.T) {
	src := openTestSource(t)
	ctx := context.Background()
	path := writeFile(t, "faces.jsonl", `{"gender":"M","label":"happy","age":20}
{"gender":"F","label":"sad"}
garbage
{"gender":"F","label":"happy","age":31,"verified":true}
`)

	imp, err := src.ImportJSONL(ctx, "faces", path)
	require.NoError(t, err)
	assert.Equal(t, "faces", imp.Table)
	assert.Equal(t, path, imp.Source)
	assert.Equal(t, 3, imp.Rows)
	assert.Equal(t, 1, imp.Skipped)
	assert.NotEmpty(t, imp.ID)

	tbl, err := src.LoadTable(ctx, "faces")
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "label", "age", "verified"}, tbl.Columns())
	assert.Equal(t, 3, tbl.NumRows())

	age, err := tbl.Column("age")
	require.NoError(t, err)
	assert.Equal(t, []string{"20", "", "31"}, age)

	verified, err := tbl.Column("verified")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "true"}, verified)

	log, err := src.Imports(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, imp.ID, log[0].ID)
	assert.Equal(t, imp.Rows, log[0].Rows)
	assert.WithinDuration(t, imp.CreatedAt, log[0].CreatedAt, 0)
}

func TestImportJSONLIsTransactional(t *testing.T) {
	src := openTestSource(t)
	ctx := context.Background()
	path := writeFile(t, "faces.jsonl", `{"gender":"M"}`+"\n")

	_, err := src.ImportJSONL(ctx, "faces", path)
	require.NoError(t, err)

	// a second import into the same table fails and leaves no trace
	_, err = src.ImportJSONL(ctx, "faces", path)
	assert.Error(t, err)

	log, err := src.Imports(ctx)
	require.NoError(t, err)
	assert.Len(t, log, 1)

	tbl, err := src.LoadTable(ctx, "faces")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())
}

func TestImportJSONLErrors(t *testing.T) {
	src := openTestSource(t)
	ctx := context.Background()

	_, err := src.ImportJSONL(ctx, "", writeFile(t, "a.jsonl", `{"a":1}`))
	assert.Error(t, err)

	_, err = src.ImportJSONL(ctx, "empty", writeFile(t, "b.jsonl", "not json\n"))
	assert.Error(t, err)

	names, err := src.Tables(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}
