package encoding

import (
	"github.com/foldersync/foldersync/pkg/logging"
	"gopkg.in/yaml.v3"
)

// LoadAndUnmarshalYAML loads YAML data from path and decodes it into value.
func LoadAndUnmarshalYAML(path string, value any) error {
	return LoadAndUnmarshal(path, func(data []byte) error {
		return yaml.Unmarshal(data, value)
	})
}

// MarshalAndSaveYAML marshals value as YAML and atomically saves it to path.
func MarshalAndSaveYAML(path string, value any, logger *logging.Logger) error {
	return MarshalAndSave(path, logger, func() ([]byte, error) {
		return yaml.Marshal(value)
	})
}
