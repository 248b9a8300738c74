package storage

import (
	"context"
	"fmt"

	"github.com/apkship/apkship/internal/errors"
	"github.com/apkship/apkship/internal/logging"
)

// Resolver resolves nested remote folder paths, creating missing segments.
type Resolver struct {
	api  FolderAPI
	root FolderID
	log  logging.Logger
}

// NewResolver creates a Resolver over the given folder capability. root is
// the folder the first path segment is resolved under; an empty root means
// the first segment is matched without a parent constraint.
func NewResolver(api FolderAPI, root FolderID, log logging.Logger) *Resolver {
	return &Resolver{api: api, root: root, log: log}
}

// ResolveOrCreate walks the path one segment at a time, reusing an existing
// folder when one matches the segment name under the current parent and
// creating the folder otherwise. It returns the ID of the leaf folder.
//
// When several folders share the same name under one parent (e.g. left over
// from a prior partial failure), the earliest-created one wins; FindFolders
// guarantees that ordering.
//
// ResolveOrCreate is not a pure lookup: it may create remote folders. With no
// concurrent mutation it is idempotent, returning the same leaf ID on every
// call for the same path.
func (r *Resolver) ResolveOrCreate(ctx context.Context, path FolderPath) (FolderID, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("cannot resolve empty path: %w", errors.ErrInvalidPath)
	}
	parent := r.root
	for _, name := range path {
		folders, err := r.api.FindFolders(ctx, parent, name)
		if err != nil {
			return "", fmt.Errorf("failed to find folder '%s' in '%s': %w", name, parent, err)
		}
		if len(folders) > 0 {
			if len(folders) > 1 {
				r.log.Warn(ctx, "duplicate folders found, using earliest-created",
					"name", name, "parent", string(parent), "count", len(folders))
			}
			parent = folders[0].ID
			continue
		}
		created, err := r.api.CreateFolder(ctx, parent, name)
		if err != nil {
			return "", fmt.Errorf("failed to create folder '%s' in '%s': %w", name, parent, err)
		}
		r.log.Info(ctx, "created folder", "name", name, "id", string(created.ID))
		parent = created.ID
	}
	return parent, nil
}
