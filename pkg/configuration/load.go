package configuration

import (
	"fmt"

	"github.com/foldersync/foldersync/pkg/encoding"
)

// loadYAML decodes the YAML document at path over top of an
// already-defaulted Configuration value.
func loadYAML(path string, config *Configuration) error {
	if err := encoding.LoadAndUnmarshalYAML(path, config); err != nil {
		return fmt.Errorf("configuration error: unable to load %q: %w", path, err)
	}
	return nil
}
