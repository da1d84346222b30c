package storage

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
)

// DropboxStore backs blobs with a Dropbox app folder, the deployment target
// of the original storage layout.
type DropboxStore struct {
	client files.Client
}

// OpenDropbox creates a store authenticated with the given access token.
func OpenDropbox(token string) *DropboxStore {
	cfg := dropbox.Config{Token: token}
	return &DropboxStore{client: files.New(cfg)}
}

func (s *DropboxStore) Get(ctx context.Context, key string) ([]byte, error) {
	_, content, err := s.client.Download(files.NewDownloadArg(key))
	if err != nil {
		if isPathNotFound(err) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	defer content.Close()
	return io.ReadAll(content)
}

func (s *DropboxStore) Put(ctx context.Context, key string, data []byte) error {
	arg := files.NewUploadArg(key)
	arg.Mode = &files.WriteMode{Tagged: dropbox.Tagged{Tag: files.WriteModeOverwrite}}
	_, err := s.client.Upload(arg, bytes.NewReader(data))
	return err
}

func (s *DropboxStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteV2(files.NewDeleteArg(key))
	if err != nil && isPathNotFound(err) {
		return ErrNotExist
	}
	return err
}

func (s *DropboxStore) List(ctx context.Context, prefix string) ([]string, error) {
	arg := files.NewListFolderArg(strings.TrimSuffix(prefix, "/"))
	res, err := s.client.ListFolder(arg)
	if err != nil {
		// A story without assets has no folder yet.
		if isPathNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(res.Entries))
	for {
		for _, entry := range res.Entries {
			if f, ok := entry.(*files.FileMetadata); ok {
				names = append(names, f.Name)
			}
		}
		if !res.HasMore {
			break
		}
		res, err = s.client.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, err
		}
	}
	return names, nil
}

func (s *DropboxStore) Close() error {
	return nil
}

// isPathNotFound matches the path lookup failures the Dropbox API reports
// for missing files and folders.
func isPathNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not_found")
}
