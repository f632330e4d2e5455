package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
)

// loaderBackend defines the generic interface for parsing models out of a file system.
// Concrete implementations (e.g., objLoaderBackend) handle format-specific details.
// Referenced files (material libraries, textures) are resolved relative to the model file
// inside the same file system; textures are returned undecoded.
type loaderBackend interface {
	// Load parses the model file at name.
	//
	// Parameters:
	//   - fsys: the file system holding the model and its dependencies
	//   - name: slash-separated path of the model file inside fsys
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if parsing fails
	Load(fsys fs.FS, name string) (*model.ImportedModel, error)
}
