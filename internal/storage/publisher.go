package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apkship/apkship/internal/errors"
	"github.com/apkship/apkship/internal/logging"
)

// Publisher uploads local files into resolved remote folders and makes them
// link-shareable.
type Publisher struct {
	api FileAPI
	log logging.Logger
}

func NewPublisher(api FileAPI, log logging.Logger) *Publisher {
	return &Publisher{api: api, log: log}
}

// Publish uploads the file at localPath into the folder identified by
// folderID, grants public read access, and returns the uploaded artifact
// with its web view link.
func (p *Publisher) Publish(ctx context.Context, folderID FolderID, localPath string) (Artifact, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return Artifact{}, errors.NewIOError("failed to open artifact", err)
	}
	defer f.Close()

	name := filepath.Base(localPath)
	artifact, err := p.api.UploadFile(ctx, folderID, name, f)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to upload '%s' to '%s': %w", name, folderID, err)
	}
	p.log.Info(ctx, "uploaded artifact", "name", artifact.Name, "id", string(artifact.ID), "size", artifact.Size)

	if err := p.api.ShareAnyoneReader(ctx, artifact.ID); err != nil {
		return Artifact{}, fmt.Errorf("failed to share '%s': %w", artifact.ID, err)
	}
	p.log.Info(ctx, "granted public read access", "id", string(artifact.ID), "link", artifact.WebViewLink)

	return artifact, nil
}
