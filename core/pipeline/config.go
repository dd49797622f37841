package pipeline

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlConfig mirrors Config's fields with yaml tags; hosts that keep
// pipeline settings in a file decode into this shape.
type yamlConfig struct {
	Method           string  `yaml:"method"`
	AddParity        bool    `yaml:"add_parity"`
	FEC              string  `yaml:"fec"`
	FECNsym          int     `yaml:"fec_nsym"`
	GCMin            float64 `yaml:"gc_min"`
	GCMax            float64 `yaml:"gc_max"`
	MaxHomopolymer   int     `yaml:"max_homopolymer"`
	OriginalFilename string  `yaml:"original_filename"`
}

// LoadConfigYAML decodes a YAML document (e.g. loaded from a host-owned
// config file) into a Config. Missing fields keep Go's zero values; callers
// that want spec's documented defaults should start from DefaultConfig and
// override only the fields present in the file.
func LoadConfigYAML(data []byte) (Config, error) {
	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Config{}, fmt.Errorf("pipeline: parsing yaml config: %w", err)
	}
	return Config{
		Method:           y.Method,
		AddParity:        y.AddParity,
		FEC:              y.FEC,
		FECNsym:          y.FECNsym,
		GCMin:            y.GCMin,
		GCMax:            y.GCMax,
		MaxHomopolymer:   y.MaxHomopolymer,
		OriginalFilename: y.OriginalFilename,
	}, nil
}
