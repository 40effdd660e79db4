package params

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads YAML overrides on top of the default parameters.
// KnownFields(true)로 오타/미사용 필드는 즉시 실패한다.
func Load(path string) (Params, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read params file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode params file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid params: %w", err)
	}

	return cfg, nil
}
