package workbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/fsutil"
)

// ErrUnsupportedFormat is returned when no codec handles a file extension.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Codec reads and writes one file format.
type Codec interface {
	// Extensions lists the file extensions handled, including the dot. The
	// first one is used when a file name is generated.
	Extensions() []string
	Encode(w io.Writer, doc *Document) error
	// Decode parses src. name is used in error messages only.
	Decode(name string, src []byte) (*Document, error)
}

// Registry maps file extensions to codecs.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry creates a registry holding codecs. A later codec overrides an
// earlier one for the same extension.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

// Register adds c under each of its extensions.
func (r *Registry) Register(c Codec) {
	for _, ext := range c.Extensions() {
		r.codecs[strings.ToLower(ext)] = c
	}
}

// Extensions lists the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// ForPath picks the codec for path by its extension.
func (r *Registry) ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := r.codecs[ext]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
}

// Save encodes doc into path, replacing the file atomically.
func (r *Registry) Save(ctx context.Context, path string, doc *Document) error {
	c, err := r.ForPath(path)
	if err != nil {
		return err
	}
	if err := write(path, c, doc); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Workbook saved.", "path", path, "cells", len(doc.Cells))
	return nil
}

// Load decodes the file at path.
func (r *Registry) Load(ctx context.Context, path string) (*Document, error) {
	c, err := r.ForPath(path)
	if err != nil {
		return nil, err
	}
	doc, err := read(path, c)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Workbook loaded.", "path", path, "cells", len(doc.Cells))
	return doc, nil
}

func write(path string, c Codec, doc *Document) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf, doc); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

func read(path string, c Codec) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	return c.Decode(path, src)
}
