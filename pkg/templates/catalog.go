package templates

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadCatalog parses a YAML template catalog and registers every entry.
// Registration order follows file order, so the last-wins rule of
// Registry.Register applies to duplicate keys within the file.
func LoadCatalog(r *Registry, src []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(src, &file); err != nil {
		return errors.Join(ErrInvalidCatalog, err)
	}

	for i, t := range file.Templates {
		if err := r.Register(t); err != nil {
			return fmt.Errorf("%w: entry %d: %w", ErrInvalidCatalog, i, err)
		}
	}
	return nil
}

// LoadDefaultCatalog registers the embedded default catalog covering the
// standard domain event set.
func LoadDefaultCatalog(r *Registry) error {
	return LoadCatalog(r, defaultCatalog)
}
