// Package encoding provides small load/save helpers, used by the
// configuration loader, mirroring the teacher's pkg/encoding package
// (LoadAndUnmarshal / MarshalAndSave).
package encoding

import (
	"fmt"
	"os"

	"github.com/foldersync/foldersync/pkg/filesystem"
	"github.com/foldersync/foldersync/pkg/logging"
)

// LoadAndUnmarshal reads the data at path and invokes unmarshal on it. A
// missing file is returned as-is (via os.IsNotExist) so callers can
// distinguish "never existed" from "exists but invalid."
func LoadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("unable to load file: %w", err)
	}
	if err := unmarshal(data); err != nil {
		return fmt.Errorf("unable to unmarshal data: %w", err)
	}
	return nil
}

// MarshalAndSave invokes marshal and writes the result atomically to path.
func MarshalAndSave(path string, logger *logging.Logger, marshal func() ([]byte, error)) error {
	data, err := marshal()
	if err != nil {
		return fmt.Errorf("unable to marshal data: %w", err)
	}
	if err := filesystem.WriteFileAtomic(path, data, 0o600, logger); err != nil {
		return fmt.Errorf("unable to write data: %w", err)
	}
	return nil
}
