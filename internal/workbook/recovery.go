package workbook

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridcalc/internal/ctxlog"
	"github.com/specialistvlad/gridcalc/internal/fsutil"
)

// ErrNoRecovery is returned by Latest when the directory holds no recovery file.
var ErrNoRecovery = errors.New("no recovery file found")

// RecoveryStore autosaves one session to <dir>/<session-id><ext>.
type RecoveryStore struct {
	dir     string
	codec   Codec
	session uuid.UUID
}

// NewRecoveryStore creates a store for a fresh session.
func NewRecoveryStore(dir string, codec Codec) *RecoveryStore {
	return &RecoveryStore{dir: dir, codec: codec, session: uuid.New()}
}

// Session returns the id naming this session's recovery file.
func (s *RecoveryStore) Session() uuid.UUID { return s.session }

// Path returns the file this session writes.
func (s *RecoveryStore) Path() string {
	return filepath.Join(s.dir, s.session.String()+s.codec.Extensions()[0])
}

// Save overwrites this session's recovery file with doc.
func (s *RecoveryStore) Save(ctx context.Context, doc *Document) error {
	path := s.Path()
	if err := write(path, s.codec, doc); err != nil {
		return fmt.Errorf("autosave failed: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Recovery file written.", "path", path, "cells", len(doc.Cells))
	return nil
}

// Latest loads the most recently modified recovery file in the directory,
// whichever session wrote it, and returns it with its path. Only files named
// <session-id><ext> directly inside the directory are considered.
func (s *RecoveryStore) Latest(ctx context.Context) (*Document, string, error) {
	var files []string
	for _, ext := range s.codec.Extensions() {
		found, err := fsutil.ListFilesByExtension(s.dir, ext)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan recovery directory: %w", err)
		}
		for _, path := range found {
			if _, err := uuid.Parse(strings.TrimSuffix(filepath.Base(path), ext)); err == nil {
				files = append(files, path)
			}
		}
	}

	path, err := fsutil.Newest(files)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", ErrNoRecovery
	}

	doc, err := read(path, s.codec)
	if err != nil {
		return nil, "", err
	}
	ctxlog.FromContext(ctx).Debug("Recovery file loaded.", "path", path, "cells", len(doc.Cells))
	return doc, path, nil
}
