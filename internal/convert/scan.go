package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"inlay/internal/catalog"
	"inlay/internal/logging"
)

// imageMIMETypes maps recognized extensions (lowercased) to their MIME type.
var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ImageFile is one candidate image discovered in the source directory.
type ImageFile struct {
	Path string
	Name string
	Stem string
	MIME string
}

// ScanImages lists the image files in dir, matching extensions
// case-insensitively. Names that differ only by case are deduplicated
// keeping the first occurrence, then the result is sorted by lowercased
// name so runs are deterministic across filesystems.
func ScanImages(dir string, logger *slog.Logger) ([]ImageFile, error) {
	logger = logging.NewComponentLogger(logger, "convert")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory %q: %w", dir, err)
	}

	seen := make(map[string]struct{})
	files := make([]ImageFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		mime, ok := imageMIMETypes[strings.ToLower(filepath.Ext(name))]
		if !ok {
			continue
		}
		lower := strings.ToLower(name)
		if _, dup := seen[lower]; dup {
			logger.Warn("duplicate image name differing only by case, keeping first",
				logging.String("file", name))
			continue
		}
		seen[lower] = struct{}{}
		files = append(files, ImageFile{
			Path: filepath.Join(dir, name),
			Name: name,
			Stem: catalog.Stem(name),
			MIME: mime,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})
	return files, nil
}
