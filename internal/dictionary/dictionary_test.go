package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotax/invoice-engine/internal/logging"
)

func TestDefaultTablesPopulated(t *testing.T) {
	dict := Default()

	assert.NotEmpty(t, dict.Vendors)
	assert.NotEmpty(t, dict.Categories)
	assert.NotEmpty(t, dict.Payments)
	assert.NotEmpty(t, dict.QRKeys)

	// Canonical field names every payload vocabulary must cover.
	assert.Equal(t, "total", dict.QRKeys["total"])
	assert.Equal(t, "vendor", dict.QRKeys["vendor"])
	assert.Equal(t, "total", dict.QRKeys["betrag"])
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	dict, err := Load(Files{Vendors: "/nonexistent/vendors.yaml"}, logging.NewNopLogger())
	require.NoError(t, err, "a missing override file is not an error")
	assert.Equal(t, Default().Vendors, dict.Vendors)
}

func TestLoadVendorOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendors.yaml")
	content := `
- name: Testmarkt
  variants:
    - TESTMARKT
    - TESTMARKT GMBH
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	dict, err := Load(Files{Vendors: path}, logging.NewNopLogger())
	require.NoError(t, err)
	require.Len(t, dict.Vendors, 1)
	assert.Equal(t, "Testmarkt", dict.Vendors[0].Name)
	assert.Equal(t, []string{"TESTMARKT", "TESTMARKT GMBH"}, dict.Vendors[0].Variants)

	// Untouched tables keep their defaults.
	assert.Equal(t, Default().Categories, dict.Categories)
}

func TestLoadBrokenYAMLFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t not yaml ["), 0644))

	_, err := Load(Files{Vendors: path}, logging.NewNopLogger())
	assert.Error(t, err)
}
