package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"gatewayd/internal/common/fsutil"
	"gatewayd/pkg/types"
)

// AdapterExts are the file extensions recognised as LoRA adapter weights.
var AdapterExts = []string{".gguf", ".safetensors"}

// ScanAdapters scans dir for adapter weight files and builds an unloaded
// seed from them. ID is the full filename; Name is the filename without its
// extension.
func ScanAdapters(dir string) ([]types.Adapter, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	files, err := fsutil.FilesWithExt(abs, AdapterExts...)
	if err != nil {
		return nil, err
	}
	adapters := make([]types.Adapter, 0, len(files))
	for _, name := range files {
		adapters = append(adapters, types.Adapter{
			ID:        name,
			Name:      strings.TrimSuffix(name, filepath.Ext(name)),
			LoadState: types.Unloaded,
		})
	}
	return adapters, nil
}
