package imageprocessor

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"imagemerger/logging"
)

// ImageLoaderRegistry maintains a registry of image loaders keyed by
// extension, plus fallback loaders tried when the primary loader fails
type ImageLoaderRegistry struct {
	loaders   map[string]ImageLoader
	fallbacks []ImageLoader
	mutex     sync.RWMutex
}

// NewImageLoaderRegistry creates a new image loader registry
func NewImageLoaderRegistry() *ImageLoaderRegistry {
	registry := &ImageLoaderRegistry{
		loaders: make(map[string]ImageLoader),
	}

	standardLoader := NewStandardImageLoader()
	for _, ext := range GetSupportedExtensions() {
		registry.RegisterLoader(ext, standardLoader)
	}

	return registry
}

// RegisterLoader registers a new loader for a specific file extension
func (r *ImageLoaderRegistry) RegisterLoader(ext string, loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ext = strings.ToLower(ext)
	r.loaders[ext] = loader
}

// RegisterFallback adds a loader that is tried, in registration order,
// when the primary loader for a file fails
func (r *ImageLoaderRegistry) RegisterFallback(loader ImageLoader) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.fallbacks = append(r.fallbacks, loader)
}

// GetLoader returns the loader registered for the path's extension, or nil
func (r *ImageLoaderRegistry) GetLoader(path string) ImageLoader {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.loaders[strings.ToLower(filepath.Ext(path))]
}

// CanLoadFile checks if any registered loader can handle the given file
func (r *ImageLoaderRegistry) CanLoadFile(path string) bool {
	return r.GetLoader(path) != nil
}

// LoadImage loads an image using the appropriate registered loader, then
// the fallbacks. The primary loader's error is returned when all fail.
func (r *ImageLoaderRegistry) LoadImage(path string) (image.Image, error) {
	loader := r.GetLoader(path)
	if loader == nil {
		return nil, fmt.Errorf("no suitable loader found for: %s", path)
	}

	img, err := loader.LoadImage(path)
	if err == nil {
		return img, nil
	}

	r.mutex.RLock()
	fallbacks := append([]ImageLoader(nil), r.fallbacks...)
	r.mutex.RUnlock()

	for _, fb := range fallbacks {
		if !fb.CanLoad(path) {
			continue
		}
		logging.DebugLog("Primary decoder failed for %s (%v), trying fallback %T", path, err, fb)
		fbImg, fbErr := fb.LoadImage(path)
		if fbErr == nil {
			logging.LogInfo("Loaded %s with fallback decoder %T", path, fb)
			return fbImg, nil
		}
		logging.LogWarning("Fallback %T failed for %s: %v", fb, path, fbErr)
	}

	return nil, err
}
