package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"

	"github.com/apkship/apkship/internal/errors"
)

const (
	mimeTypeGoogleAppFolder = "application/vnd.google-apps.folder"

	driveFileFields  = "parents,id,name,mimeType,size,createdTime,modifiedTime,webViewLink"
	driveFilesFields = "nextPageToken,files(parents,id,name,mimeType,size,createdTime,modifiedTime,webViewLink)"
)

// DriveStorage implements FolderAPI and FileAPI over the Google Drive v3 API.
type DriveStorage struct {
	service *drive.Service
}

var (
	_ FolderAPI = (*DriveStorage)(nil)
	_ FileAPI   = (*DriveStorage)(nil)
)

// NewDriveStorage creates a DriveStorage with the given drive.Service.
func NewDriveStorage(service *drive.Service) *DriveStorage {
	return &DriveStorage{service: service}
}

// FindFolders returns all non-trashed folders named name under parentID,
// ordered by creation time so the earliest-created folder comes first. An
// empty parentID leaves the query unconstrained by parent.
func (s *DriveStorage) FindFolders(ctx context.Context, parentID FolderID, name string) (folders []Folder, err error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(name), mimeTypeGoogleAppFolder)
	if parentID != "" {
		q += fmt.Sprintf(" and '%s' in parents", escapeQuery(string(parentID)))
	}
	err = s.service.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(q).
		OrderBy("createdTime").
		Fields(driveFilesFields).
		Pages(ctx, func(list *drive.FileList) error {
			for _, f := range list.Files {
				folders = append(folders, newFolder(f))
			}
			return nil
		})
	if err != nil {
		return nil, errors.NewQueryError("failed to query folders", err)
	}
	return folders, nil
}

// CreateFolder creates a folder named name under parentID. An empty parentID
// creates the folder at the drive root.
func (s *DriveStorage) CreateFolder(ctx context.Context, parentID FolderID, name string) (Folder, error) {
	meta := &drive.File{
		Name:     name,
		MimeType: mimeTypeGoogleAppFolder,
	}
	if parentID != "" {
		meta.Parents = []string{string(parentID)}
	}
	f, err := s.service.Files.Create(meta).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Context(ctx).
		Do()
	if err != nil {
		return Folder{}, errors.NewCreateError("failed to create folder", err)
	}
	return newFolder(f), nil
}

// UploadFile creates a file named name under parentID with the given content.
func (s *DriveStorage) UploadFile(ctx context.Context, parentID FolderID, name string, content io.Reader) (Artifact, error) {
	f, err := s.service.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{string(parentID)},
	}).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Media(content).
		Context(ctx).
		Do()
	if err != nil {
		return Artifact{}, errors.NewCreateError("failed to upload file", err)
	}
	return Artifact{
		ID:          FileID(f.Id),
		Name:        f.Name,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
	}, nil
}

// ShareAnyoneReader grants read access to anyone with the link. The file
// stays out of search results (no file discovery).
func (s *DriveStorage) ShareAnyoneReader(ctx context.Context, fileID FileID) error {
	_, err := s.service.Permissions.Create(string(fileID), &drive.Permission{
		Type:               "anyone",
		Role:               "reader",
		AllowFileDiscovery: false,
	}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return errors.NewCreateError("failed to set permission", err)
	}
	return nil
}

func newFolder(f *drive.File) Folder {
	createdTime, _ := time.Parse(time.RFC3339, f.CreatedTime)
	return Folder{
		ID:          FolderID(f.Id),
		Name:        f.Name,
		CreatedTime: createdTime,
	}
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}
