package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ/MTL loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	uploader      renderer.MeshUploader
	decodeWorkers int

	modelCache map[string]model.Model

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching 3D models.
// It abstracts the file format behind a backend, decodes referenced textures on a
// worker pool and uploads the result through a MeshUploader.
type Loader interface {
	// Import parses a model file from disk and decodes its textures without touching the GPU.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - *model.ImportedModel: the imported model with decoded textures
	//   - error: error if the format is unsupported or parsing fails
	Import(path string) (*model.ImportedModel, error)

	// ImportFS parses a model file from a file system and decodes its textures.
	//
	// Parameters:
	//   - fsys: the file system holding the model, material libraries and textures
	//   - name: slash-separated path of the model file inside fsys
	//
	// Returns:
	//   - *model.ImportedModel: the imported model with decoded textures
	//   - error: error if the format is unsupported or parsing fails
	ImportFS(fsys fs.FS, name string) (*model.ImportedModel, error)

	// Load imports a model file, uploads it and caches the result by path.
	// If the model is already cached, the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading or uploading fails
	Load(path string) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model

	// Release frees every cached model and empties the cache.
	Release()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeOBJ)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:            sync.RWMutex{},
		modelCache:    make(map[string]model.Model),
		decodeWorkers: runtime.NumCPU(),
	}

	switch backendType {
	case BackendTypeOBJ:
		l.backend = newOBJLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Import(path string) (*model.ImportedModel, error) {
	return l.ImportFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

func (l *loader) ImportFS(fsys fs.FS, name string) (*model.ImportedModel, error) {
	if err := l.checkFormat(name); err != nil {
		return nil, err
	}

	imported, err := l.backend.Load(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	l.decodeTextures(fsys, imported)
	return imported, nil
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if l.uploader == nil {
		return nil, fmt.Errorf("loader: cannot load %s without an uploader", path)
	}

	imported, err := l.Import(path)
	if err != nil {
		return nil, err
	}

	m, err := model.UploadModel(imported, l.uploader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", path, err)
	}

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	common.LogInfo("model loaded", "path", path, "meshes", len(imported.Meshes), "materials", len(imported.Materials))
	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

func (l *loader) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, m := range l.modelCache {
		m.Release()
		delete(l.modelCache, k)
	}
}

// checkFormat rejects files the configured backend cannot parse, based on the extension.
func (l *loader) checkFormat(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case l.backend == nil:
		return fmt.Errorf("%w: no backend for %s", common.ErrUnsupportedFormat, name)
	case ext == ".obj":
		return nil
	default:
		return fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}
}

// decodeTextures reads and decodes every undecoded diffuse texture of the model in parallel.
// A texture that fails is dropped with a warning so its material falls back to the diffuse colour.
func (l *loader) decodeTextures(fsys fs.FS, imported *model.ImportedModel) {
	var pending []int
	for i, mat := range imported.Materials {
		if mat.DiffuseTexture != nil && mat.DiffuseTexture.Staging == nil {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return
	}

	pool := worker.NewDynamicWorkerPool(min(l.decodeWorkers, len(pending)), len(pending), time.Second)
	defer pool.Stop()

	errs := make([]error, len(pending))
	var wg sync.WaitGroup
	for taskID, matIdx := range pending {
		tex := imported.Materials[matIdx].DiffuseTexture
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				errs[taskID] = decodeTexture(fsys, tex)
				return nil, errs[taskID]
			},
		})
	}
	wg.Wait()

	for taskID, matIdx := range pending {
		if errs[taskID] == nil {
			continue
		}
		mat := &imported.Materials[matIdx]
		common.LogWarn("diffuse texture skipped", "material", mat.Name, "texture", mat.DiffuseTexture.Path, "err", errs[taskID])
		mat.DiffuseTexture = nil
	}
}

func decodeTexture(fsys fs.FS, tex *common.ImportedTexture) error {
	if len(tex.Data) == 0 {
		data, err := fs.ReadFile(fsys, tex.Path)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("texture file %s is empty", tex.Path)
		}
		tex.Data = data
	}
	_, err := tex.Decode()
	// only the decoded pixels are kept
	tex.Data = nil
	return err
}
