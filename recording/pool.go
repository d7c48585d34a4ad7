package recording

import (
	"image"

	"github.com/gogpu/framedefer/path"
)

// Face is the minimal font-face interface a pooled text op needs; kept
// abstract so this package doesn't pull in a text-shaping dependency the
// engine's domain never exercises (see DESIGN.md).
type Face interface {
	Name() string
}

// ResourcePool stores the paths, bitmaps, and font faces RecordedOps
// reference by index, adapted from the teacher's own ResourcePool. As in
// the teacher's version, adding a path clones it so the pool's contents
// stay immutable for the lifetime of the RenderNode that owns it.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	paths  []*path.Path
	images []image.Image
	fonts  []Face
}

// NewResourcePool creates an empty resource pool with pre-allocated
// capacity.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:  make([]*path.Path, 0, 16),
		images: make([]image.Image, 0, 8),
		fonts:  make([]Face, 0, 4),
	}
}

// AddPath clones p and returns its reference. A nil path is stored as
// nil and returns a valid reference to it.
func (r *ResourcePool) AddPath(p *path.Path) PathRef {
	if p == nil {
		r.paths = append(r.paths, nil)
		return PathRef(len(r.paths) - 1)
	}
	r.paths = append(r.paths, p.Clone())
	return PathRef(len(r.paths) - 1)
}

// GetPath returns the path for ref, or nil if ref is out of range.
func (r *ResourcePool) GetPath(ref PathRef) *path.Path {
	if int(ref) >= len(r.paths) {
		return nil
	}
	return r.paths[ref]
}

// PathCount returns the number of paths in the pool.
func (r *ResourcePool) PathCount() int { return len(r.paths) }

// AddImage stores img (already immutable) and returns its reference.
func (r *ResourcePool) AddImage(img image.Image) ImageRef {
	r.images = append(r.images, img)
	return ImageRef(len(r.images) - 1)
}

// GetImage returns the image for ref, or nil if ref is out of range.
func (r *ResourcePool) GetImage(ref ImageRef) image.Image {
	if int(ref) >= len(r.images) {
		return nil
	}
	return r.images[ref]
}

// ImageCount returns the number of images in the pool.
func (r *ResourcePool) ImageCount() int { return len(r.images) }

// AddFont stores face and returns its reference.
func (r *ResourcePool) AddFont(face Face) FontRef {
	r.fonts = append(r.fonts, face)
	return FontRef(len(r.fonts) - 1)
}

// GetFont returns the font face for ref, or nil if ref is out of range.
func (r *ResourcePool) GetFont(ref FontRef) Face {
	if int(ref) >= len(r.fonts) {
		return nil
	}
	return r.fonts[ref]
}

// FontCount returns the number of font faces in the pool.
func (r *ResourcePool) FontCount() int { return len(r.fonts) }

// Clear empties the pool without releasing its backing arrays.
func (r *ResourcePool) Clear() {
	r.paths = r.paths[:0]
	r.images = r.images[:0]
	r.fonts = r.fonts[:0]
}

// Clone deep-copies the pool: paths are cloned (mutable), images and
// fonts are copied by reference (already immutable).
func (r *ResourcePool) Clone() *ResourcePool {
	clone := &ResourcePool{
		paths:  make([]*path.Path, len(r.paths)),
		images: make([]image.Image, len(r.images)),
		fonts:  make([]Face, len(r.fonts)),
	}
	for i, p := range r.paths {
		if p != nil {
			clone.paths[i] = p.Clone()
		}
	}
	copy(clone.images, r.images)
	copy(clone.fonts, r.fonts)
	return clone
}
