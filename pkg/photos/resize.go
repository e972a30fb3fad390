package photos

import (
	"bytes"
	"context"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/classdeck/classdeck/pkg/cache"
	"github.com/classdeck/classdeck/pkg/errors"
)

// Resizer produces portrait copies scaled to a fixed height, preserving
// aspect ratio. Results are cached as JPEG keyed by the source filename,
// so repeated runs skip the resize. The cache is never required for
// correctness.
type Resizer struct {
	cache  cache.Cache
	height int
}

// NewResizer creates a resizer targeting the given height in pixels.
// A nil cache disables caching.
func NewResizer(c cache.Cache, height int) *Resizer {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Resizer{cache: c, height: height}
}

// Portrait returns the portrait at path resized to the target height.
//
// Cache stores are idempotent: two concurrent calls for the same source
// resize twice but persist identical bytes, so races cost work, not
// correctness.
func (r *Resizer) Portrait(ctx context.Context, path string) (image.Image, error) {
	key := filepath.Base(path)

	if data, hit, err := r.cache.Get(ctx, key); err == nil && hit {
		if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
			return img, nil
		}
		// Corrupt cache entry: drop it and rebuild from source.
		_ = r.cache.Delete(ctx, key)
	}

	src, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open portrait %s", path)
	}

	resized := imaging.Resize(src, 0, r.height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err == nil {
		_ = r.cache.Set(ctx, key, buf.Bytes())
	}

	return resized, nil
}
