package brands

import (
	"testing"

	"github.com/precios-ar/precios-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFlagsList(t *testing.T) {
	flags, err := GetFlagsList()
	require.NoError(t, err)
	require.NotEmpty(t, flags)

	byName := make(map[string]*models.Flag, len(flags))
	for _, flag := range flags {
		byName[flag.Name] = flag
	}

	require.Contains(t, byName, "YPF")
	assert.Equal(t, "https://www.ypf.com", byName["YPF"].Url)
	require.NotNil(t, byName["YPF"].Favicon)

	require.Contains(t, byName, "GULF")
	assert.Nil(t, byName["GULF"].Favicon)
}

func TestGetFlagsMap(t *testing.T) {
	flags, err := GetFlagsMap()
	require.NoError(t, err)
	assert.Len(t, flags, 8)
	assert.Contains(t, flags, "SIN BANDERA")
}

func TestFlagFromCSV(t *testing.T) {

	t.Run("Short record is an error, not a panic", func(t *testing.T) {
		_, err := models.FlagFromCSV([]string{"YPF"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 2 fields")
	})

	t.Run("Empty favicon stays nil", func(t *testing.T) {
		flag, err := models.FlagFromCSV([]string{"PUMA", "https://www.pumaenergy.com", ""}, nil)
		require.NoError(t, err)
		assert.Equal(t, "PUMA", flag.Name)
		assert.Nil(t, flag.Favicon)
	})
}
