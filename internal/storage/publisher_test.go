package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/apkship/apkship/internal/errors"
)

// fakeFileStore is an in-memory FileAPI.
type fakeFileStore struct {
	uploaded  map[FileID][]byte
	parents   map[FileID]FolderID
	shared    map[FileID]bool
	uploadErr error
	shareErr  error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{
		uploaded: map[FileID][]byte{},
		parents:  map[FileID]FolderID{},
		shared:   map[FileID]bool{},
	}
}

func (s *fakeFileStore) UploadFile(_ context.Context, parentID FolderID, name string, content io.Reader) (Artifact, error) {
	if s.uploadErr != nil {
		return Artifact{}, apperrors.NewCreateError("failed to upload file", s.uploadErr)
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return Artifact{}, apperrors.NewIOError("failed to read content", err)
	}
	id := FileID("file-" + name)
	s.uploaded[id] = data
	s.parents[id] = parentID
	return Artifact{
		ID:          id,
		Name:        name,
		Size:        int64(len(data)),
		WebViewLink: "https://drive.example.com/view/" + string(id),
	}, nil
}

func (s *fakeFileStore) ShareAnyoneReader(_ context.Context, fileID FileID) error {
	if s.shareErr != nil {
		return apperrors.NewCreateError("failed to set permission", s.shareErr)
	}
	s.shared[fileID] = true
	return nil
}

func writeTempArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app-release.apk")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing temp artifact: %v", err)
	}
	return path
}

func TestPublish_UploadsAndShares(t *testing.T) {
	store := newFakeFileStore()
	p := NewPublisher(store, testLogger())
	path := writeTempArtifact(t, "apk bytes")

	artifact, err := p.Publish(context.Background(), "release-folder", path)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if artifact.Name != "app-release.apk" {
		t.Errorf("artifact.Name = %q, want app-release.apk", artifact.Name)
	}
	if artifact.WebViewLink == "" {
		t.Error("artifact.WebViewLink is empty")
	}
	if got := string(store.uploaded[artifact.ID]); got != "apk bytes" {
		t.Errorf("uploaded content = %q, want %q", got, "apk bytes")
	}
	if store.parents[artifact.ID] != "release-folder" {
		t.Errorf("uploaded into %q, want release-folder", store.parents[artifact.ID])
	}
	if !store.shared[artifact.ID] {
		t.Error("artifact was not shared")
	}
}

func TestPublish_MissingLocalFile(t *testing.T) {
	p := NewPublisher(newFakeFileStore(), testLogger())

	_, err := p.Publish(context.Background(), "folder", filepath.Join(t.TempDir(), "nope.apk"))
	if !errors.Is(err, apperrors.ErrIOError) {
		t.Errorf("errors.Is(err, ErrIOError) = false, got %v", err)
	}
}

func TestPublish_UploadFailure(t *testing.T) {
	store := newFakeFileStore()
	store.uploadErr = errors.New("network down")
	p := NewPublisher(store, testLogger())
	path := writeTempArtifact(t, "apk bytes")

	_, err := p.Publish(context.Background(), "folder", path)
	if !errors.Is(err, apperrors.ErrRemoteCreate) {
		t.Errorf("errors.Is(err, ErrRemoteCreate) = false, got %v", err)
	}
}

func TestPublish_ShareFailure(t *testing.T) {
	store := newFakeFileStore()
	store.shareErr = errors.New("permission api down")
	p := NewPublisher(store, testLogger())
	path := writeTempArtifact(t, "apk bytes")

	_, err := p.Publish(context.Background(), "folder", path)
	if !errors.Is(err, apperrors.ErrRemoteCreate) {
		t.Errorf("errors.Is(err, ErrRemoteCreate) = false, got %v", err)
	}
	// The upload itself still happened.
	if len(store.uploaded) != 1 {
		t.Errorf("uploaded %d files, want 1", len(store.uploaded))
	}
}
