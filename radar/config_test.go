package radar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	yml := `
db: /tmp/radar.db
listen_addr: ":9090"
debug: true
districts:
  Patan: [Adiya, Melusan]
inputs:
  - glob: exports/adiya/*.txt
    district: Patan
    center: Adiya
    archive_dir: exports/adiya/done
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/radar.db", cfg.DB)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"Adiya", "Melusan"}, cfg.Districts["Patan"])
	require.Len(t, cfg.Inputs, 1)
	assert.Equal(t, "Patan", cfg.Inputs[0].District)
	assert.Equal(t, "exports/adiya/done", cfg.Inputs[0].ArchiveDir)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &FileConfig{}
	cfg.ApplyDefaults()
	assert.Equal(t, "lead-radar.db", cfg.DB)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Contains(t, cfg.Districts, "Patan")
	assert.Contains(t, cfg.DistrictNames(), "Kutch")
}

func TestValidateLocation(t *testing.T) {
	cfg := &FileConfig{}
	cfg.ApplyDefaults()

	assert.NoError(t, cfg.ValidateLocation(Location{District: "Patan", Center: "Adiya"}))
	assert.Error(t, cfg.ValidateLocation(Location{District: "Patan", Center: "Adesar"}))
	assert.Error(t, cfg.ValidateLocation(Location{District: "Nowhere", Center: "Adiya"}))
	assert.Error(t, cfg.ValidateLocation(Location{}))
}
