// Package importer turns roster files dropped into the import inbox into
// text the attendance parser understands.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Reader converts a roster file into parser input text.
type Reader interface {
	ReadText(r io.Reader) (string, error)
	Extensions() []string
	Format() string
}

// Registry holds named readers and the extensions they claim.
type Registry struct {
	readers map[string]Reader
	byExt   map[string]Reader
}

// FileInfo describes a roster file in the import directory.
type FileInfo struct {
	Name   string
	Path   string
	Size   int64
	Format string
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[string]Reader),
		byExt:   make(map[string]Reader),
	}
}

// Register adds a reader. Panics on duplicate format or extension.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	for _, ext := range rd.Extensions() {
		ext = strings.ToLower(ext)
		if _, ok := r.byExt[ext]; ok {
			panic("duplicate reader extension: " + ext)
		}
		r.byExt[ext] = rd
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// ForFile returns the reader claiming the file's extension, or nil.
func (r *Registry) ForFile(name string) Reader {
	return r.byExt[strings.ToLower(filepath.Ext(name))]
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TextReader{})
	r.Register(&CSVReader{})
	r.Register(&XLSXReader{})
	return r
}

// ReadFile opens path and converts it with the reader for its extension.
func (r *Registry) ReadFile(path string) (string, error) {
	rd := r.ForFile(path)
	if rd == nil {
		return "", fmt.Errorf("unsupported roster file %s", filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	text, err := rd.ReadText(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return text, nil
}

// ProcessedDir is the subdirectory of the import directory that receives
// imported files.
const ProcessedDir = "processed"

// Scan returns supported roster files in dir, sorted by name. A missing
// directory yields no files.
func (r *Registry) Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rd := r.ForFile(e.Name())
		if rd == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dir, e.Name()),
			Size:   info.Size(),
			Format: rd.Format(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from dir to dir/processed/.
func MarkProcessed(dir, fileName string) error {
	src := filepath.Join(dir, fileName)
	dstDir := filepath.Join(dir, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
