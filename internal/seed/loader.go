package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads and maps the seed file at path. Persons without a valid_from
// start on the first day of the year of now.
func Load(path string, now time.Time) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}

	var dto YAMLFile
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}

	return Map(path, dto, now)
}
