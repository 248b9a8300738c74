// Package pipeline orchestrates the release workflow: build the artifact,
// resolve the dated upload folder, publish the artifact, and announce it.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apkship/apkship/internal/logging"
	"github.com/apkship/apkship/internal/storage"
)

// Builder produces the release artifact.
type Builder interface {
	Run(ctx context.Context) error
}

// Resolver resolves (or creates) the remote folder path for the upload.
type Resolver interface {
	ResolveOrCreate(ctx context.Context, path storage.FolderPath) (storage.FolderID, error)
}

// Publisher uploads the artifact and makes it link-shareable.
type Publisher interface {
	Publish(ctx context.Context, folderID storage.FolderID, localPath string) (storage.Artifact, error)
}

// Notifier announces the release. A failed notification never fails the run.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Options configures a Pipeline. All collaborators and settings are injected
// at construction; the pipeline has no compiled-in endpoints or names.
type Options struct {
	AppName string
	// RootFolder heads the upload path. It may be a single name ("Apk") or
	// a nested slash-separated path ("Releases/Android").
	RootFolder   string
	ArtifactPath string
	SkipBuild    bool

	Builder   Builder
	Resolver  Resolver
	Publisher Publisher
	Notifier  Notifier // optional; nil disables notification
	Logger    logging.Logger

	// Now supplies the date for the upload folder; defaults to time.Now.
	Now func() time.Time
}

// Result reports what a run accomplished.
type Result struct {
	RunID    string
	FolderID storage.FolderID
	Artifact storage.Artifact
	// NotifyErr records a failed notification. The run itself still
	// succeeded: the artifact was uploaded and shared.
	NotifyErr error
}

// Pipeline runs the release steps in order, stopping at the first failure.
type Pipeline struct {
	opts Options
}

func New(opts Options) *Pipeline {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{opts: opts}
}

// Run executes build, resolve, publish, notify. It returns an error when the
// build, resolution, or upload fails; a notification failure is reported in
// the Result only.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	runID := uuid.NewString()
	log := p.opts.Logger.With("run_id", runID)
	result := Result{RunID: runID}

	if p.opts.SkipBuild {
		log.Info(ctx, "skipping build", "artifact", p.opts.ArtifactPath)
	} else {
		if err := p.opts.Builder.Run(ctx); err != nil {
			return result, fmt.Errorf("build step failed: %w", err)
		}
	}

	date := p.opts.Now().Format("2006-01-02")
	root, err := storage.ParseFolderPath("/" + strings.TrimPrefix(p.opts.RootFolder, "/"))
	if err != nil {
		return result, fmt.Errorf("invalid root folder: %w", err)
	}
	path, err := storage.NewFolderPath(append(root, p.opts.AppName, date)...)
	if err != nil {
		return result, fmt.Errorf("invalid upload path: %w", err)
	}

	log.Info(ctx, "resolving upload folder", "path", path.String())
	folderID, err := p.opts.Resolver.ResolveOrCreate(ctx, path)
	if err != nil {
		return result, fmt.Errorf("failed to resolve upload folder: %w", err)
	}
	result.FolderID = folderID

	artifact, err := p.opts.Publisher.Publish(ctx, folderID, p.opts.ArtifactPath)
	if err != nil {
		return result, fmt.Errorf("failed to publish artifact: %w", err)
	}
	result.Artifact = artifact

	if p.opts.Notifier != nil {
		msg := fmt.Sprintf("%s %s release uploaded: %s (run %s)", p.opts.AppName, date, artifact.WebViewLink, runID)
		if err := p.opts.Notifier.Send(ctx, msg); err != nil {
			// The upload already completed; report the failure without
			// failing the run.
			log.Error(ctx, "notification failed", "error", err)
			result.NotifyErr = err
		} else {
			log.Info(ctx, "release announced")
		}
	}

	return result, nil
}
