package radar

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDistricts is the built-in district → centers taxonomy, used when the
// config file does not override it. It is configuration, not data: stored rows
// are never validated against it, only incoming uploads.
var DefaultDistricts = map[string][]string{
	"Patan":       {"Adiya", "Melusan", "Madhutra", "Satnalpur", "Morwada"},
	"Kutch":       {"Adesar", "Balasar", "Fatehgadh"},
	"Arvalli":     {"Bayad", "Lalsar", "Desar"},
	"Banaskatha":  {"Thara", "Tadav", "Sanval", "Bhatwad", "Kotarwada"},
	"Mehsana":     {"Satalasana"},
	"Sabarkantha": {"Ilol", "Deshotar"},
}

// InputFileConfig binds one batch input glob to the location its exports
// belong to.
type InputFileConfig struct {
	Glob       string `yaml:"glob"`
	District   string `yaml:"district"`
	Center     string `yaml:"center"`
	ArchiveDir string `yaml:"archive_dir"`
}

type FileConfig struct {
	// DB is the SQLite database path.
	DB string `yaml:"db"`

	// ListenAddr is the HTTP listen address for the query/ingest API.
	ListenAddr string `yaml:"listen_addr"`

	Debug bool `yaml:"debug"`

	// Districts overrides the built-in district → centers taxonomy.
	Districts map[string][]string `yaml:"districts"`

	// Inputs configure batch file ingestion (one glob per center).
	Inputs []InputFileConfig `yaml:"inputs"`
}

func LoadConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields so callers can use a zero FileConfig.
func (c *FileConfig) ApplyDefaults() {
	if strings.TrimSpace(c.DB) == "" {
		c.DB = "lead-radar.db"
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = ":8080"
	}
	if len(c.Districts) == 0 {
		c.Districts = DefaultDistricts
	}
}

// ValidateLocation checks an upload's (district, center) pair against the
// configured taxonomy, mirroring the constrained selectors operators used to
// pick from.
func (c *FileConfig) ValidateLocation(loc Location) error {
	centers, ok := c.Districts[loc.District]
	if !ok {
		return fmt.Errorf("unknown district %q", loc.District)
	}
	for _, center := range centers {
		if center == loc.Center {
			return nil
		}
	}
	return fmt.Errorf("unknown center %q in district %q", loc.Center, loc.District)
}

// DistrictNames returns the configured districts in stable order.
func (c *FileConfig) DistrictNames() []string {
	names := make([]string, 0, len(c.Districts))
	for name := range c.Districts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
