// Package photos reconciles a roster against prioritized portrait
// directories.
//
// Directories are scanned strictly in the configured order: the first
// directory to supply a photo for a student wins, and photos of the
// same student in later directories are silently shadowed. Directory
// entries are processed in sorted name order so results never depend
// on filesystem iteration order.
package photos

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/classdeck/classdeck/pkg/errors"
	"github.com/classdeck/classdeck/pkg/report"
	"github.com/classdeck/classdeck/pkg/roster"
)

// Record is a discovered portrait file.
type Record struct {
	StudentID string // filename stem
	Path      string
	Priority  int // index of the source directory, lower wins
}

// imageExts are the recognized portrait extensions (canonical .jpg).
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Resolve scans dirs in priority order and assigns at most one portrait
// per student, writing the winning path into students in place.
//
// A photo whose stem matches no student is reported as an orphan unless
// the ID belongs to a non-attending student. Students left without a
// photo after all directories are scanned are reported as missing.
func Resolve(students []roster.Student, dirs []string, notAttending map[string]bool, rep *report.Reporter) error {
	// Index by ID once; assignment goes through the index.
	index := make(map[string]int, len(students))
	for i, s := range students {
		index[s.ID] = i
	}

	records, err := Scan(dirs)
	if err != nil {
		return err
	}

	for _, rec := range records {
		i, ok := index[rec.StudentID]
		if !ok {
			if !notAttending[rec.StudentID] {
				rep.Report(report.CodeOrphanPhoto, "the image '%s' cannot be found in the student list", rec.Path)
			}
			continue
		}
		if students[i].PhotoPath == "" {
			students[i].PhotoPath = rec.Path
		}
	}

	for _, s := range students {
		if s.PhotoPath == "" {
			rep.Report(report.CodeMissingPhoto, "missing photo for %s (%s)", s.FullName(), s.ID)
		}
	}

	return nil
}

// Scan lists the portrait files of each directory, highest priority
// first. Within a directory, entries come back in sorted name order.
// A missing or unreadable directory is fatal: a misconfigured source
// would otherwise silently drop every photo it holds.
func Scan(dirs []string) ([]Record, error) {
	var records []Record
	for priority, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read photo directory %s", dir)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if !imageExts[ext] {
				continue
			}
			records = append(records, Record{
				StudentID: strings.TrimSuffix(name, filepath.Ext(name)),
				Path:      filepath.Join(dir, name),
				Priority:  priority,
			})
		}
	}
	return records, nil
}
