// Package fonts loads TrueType/OpenType fonts and serves sized faces.
//
// A Source wraps one parsed font and caches the faces it hands out, so
// the layout engine can probe many sizes without re-deriving glyph
// tables. If a configured font path does not exist, the loader falls
// back to searching the system font directories for a file of the same
// name before giving up.
package fonts

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/classdeck/classdeck/pkg/errors"
)

// fontDPI keeps one point equal to one pixel, so sizes derived from
// canvas proportions map directly onto face sizes.
const fontDPI = 72

// Source is a parsed font with a face cache. Safe for concurrent use.
type Source struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

// Load reads and parses the font at path. When the path does not exist,
// the system font directories are searched for the same filename.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		found, ferr := findfont.Find(filepath.Base(path))
		if ferr != nil {
			return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "load font %s", path)
		}
		data, err = os.ReadFile(found)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "load font %s", found)
		}
	}
	return Parse(data)
}

// Parse builds a Source from raw TTF/OTF bytes.
func Parse(data []byte) (*Source, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "parse font data")
	}
	return &Source{font: f, faces: make(map[int]font.Face)}, nil
}

// Face returns a face at the given integer point size. Faces are cached
// per size.
func (s *Source) Face(size int) (font.Face, error) {
	if size < 1 {
		return nil, errors.New(errors.ErrCodeInternal, "font size must be positive, got %d", size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if face, ok := s.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create face at size %d", size)
	}

	s.faces[size] = face
	return face, nil
}
