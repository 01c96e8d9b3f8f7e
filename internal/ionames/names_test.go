package ionames_test

import (
	"context"
	"testing"

	"github.com/amphdata/amprep/internal/ionames"
	"github.com/amphdata/amprep/pkg/config"
	"github.com/amphdata/amprep/pkg/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nameRecords(t *testing.T, rows [][]string) *records.RecordSet {
	t.Helper()
	rs, err := records.New([]string{"Genus", "Species"}, rows)
	require.NoError(t, err)
	return rs
}

func TestCheckNames(t *testing.T) {
	rs := nameRecords(t, [][]string{
		{"Atelopus", "varius"},
		{"Telmatobius", "culeus"},
	})

	checker := ionames.New(config.New())
	issues, err := checker.CheckNames(context.Background(), rs)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheckNames_Issues(t *testing.T) {
	rs := nameRecords(t, [][]string{
		{"Atelopus", "varius"},
		{"", ""},
		{"123", "###"},
	})

	checker := ionames.New(config.New())
	issues, err := checker.CheckNames(context.Background(), rs)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	// empty name: row only, no stable ID to compute
	assert.Equal(t, 1, issues[0].Row)
	assert.Empty(t, issues[0].ID)

	assert.Equal(t, 2, issues[1].Row)
	assert.Equal(t, "123 ###", issues[1].Name)
	assert.NotEmpty(t, issues[1].ID)
}

// TestCheckNames_StableID verifies the issue ID depends only on the
// name string, so reruns report the same IDs.
func TestCheckNames_StableID(t *testing.T) {
	rows := [][]string{{"123", "###"}}
	checker := ionames.New(config.New())

	first, err := checker.CheckNames(context.Background(), nameRecords(t, rows))
	require.NoError(t, err)
	second, err := checker.CheckNames(context.Background(), nameRecords(t, rows))
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestCheckNames_MissingColumn(t *testing.T) {
	rs, err := records.New([]string{"Genus"}, [][]string{{"Atelopus"}})
	require.NoError(t, err)

	checker := ionames.New(config.New())
	_, err = checker.CheckNames(context.Background(), rs)
	assert.Error(t, err)
}

func TestCheckNames_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rs := nameRecords(t, [][]string{{"Atelopus", "varius"}})
	checker := ionames.New(config.New())
	_, err := checker.CheckNames(ctx, rs)
	assert.ErrorIs(t, err, context.Canceled)
}
