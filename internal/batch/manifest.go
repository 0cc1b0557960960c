package batch

import (
	"encoding/json"
	"os"
)

// WriteManifest writes manifest.json listing the outcome of every document in
// the batch, so downstream build steps can tell which assets are current.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
