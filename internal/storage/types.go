package storage

import (
	"context"
	"io"
	"time"
)

// FolderID is an opaque identifier for a remote folder, meaningful only to
// the remote storage service.
type FolderID string

// FileID is an opaque identifier for a remote file.
type FileID string

// Folder describes a remote folder returned by a query.
type Folder struct {
	ID          FolderID
	Name        string
	CreatedTime time.Time
}

// Artifact describes an uploaded file and its shareable link.
type Artifact struct {
	ID          FileID
	Name        string
	Size        int64
	WebViewLink string
}

// FolderAPI is the folder query/create capability the resolver works against.
//
// FindFolders returns all non-trashed folders named name under parentID,
// earliest-created first. An empty parentID means the query is not
// constrained to a parent. CreateFolder creates a folder named name under
// parentID (or at the drive root when parentID is empty).
type FolderAPI interface {
	FindFolders(ctx context.Context, parentID FolderID, name string) ([]Folder, error)
	CreateFolder(ctx context.Context, parentID FolderID, name string) (Folder, error)
}

// FileAPI is the upload/share capability the publisher works against.
//
// UploadFile creates a file named name under parentID with the given
// content. ShareAnyoneReader grants public read access to the file so its
// web view link works for anyone who has it.
type FileAPI interface {
	UploadFile(ctx context.Context, parentID FolderID, name string, content io.Reader) (Artifact, error)
	ShareAnyoneReader(ctx context.Context, fileID FileID) error
}
