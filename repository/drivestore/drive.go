package drivestore

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Jumpaku/go-genericfile/errors"
	"github.com/Jumpaku/go-genericfile/repository"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const (
	mimeTypeGoogleAppFolder = "application/vnd.google-apps.folder"
	mimeTypePrefixGoogleApp = "application/vnd.google-apps."

	driveFileFields  = "parents,id,name,description,mimeType,createdTime,modifiedTime,capabilities(canAddChildren,canDelete,canDownload,canEdit,canShare)"
	driveFilesFields = "nextPageToken,files(" + driveFileFields + ")"
)

func isFolder(f *drive.File) bool {
	return f.MimeType == mimeTypeGoogleAppFolder
}

func isAppFile(f *drive.File) bool {
	return !isFolder(f) && strings.HasPrefix(f.MimeType, mimeTypePrefixGoogleApp)
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}

// mimeTypeClause restricts a listing to the kinds a filter lets through.
func mimeTypeClause(filter repository.NameFilter) string {
	switch {
	case filter.Folders() && !filter.Files():
		return fmt.Sprintf(" and mimeType = '%s'", mimeTypeGoogleAppFolder)
	case filter.Files() && !filter.Folders():
		return fmt.Sprintf(" and mimeType != '%s'", mimeTypeGoogleAppFolder)
	default:
		return ""
	}
}

func queryFiles(s *drive.Service, query string) (results []*drive.File, err error) {
	err = s.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(query).
		Fields(driveFilesFields).
		Pages(context.Background(), func(list *drive.FileList) error {
			results = append(results, list.Files...)
			return nil
		})
	if err != nil {
		return nil, newDriveError("failed to query files", err)
	}
	return results, nil
}

func findAllByNameIn(s *drive.Service, parentID string, name string) (files []*drive.File, err error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", escapeQuery(name), escapeQuery(parentID))
	return queryFiles(s, q)
}

func findAllIn(s *drive.Service, parentID string, clause string) (files []*drive.File, err error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(parentID)) + clause
	return queryFiles(s, q)
}

func findByID(s *drive.Service, fileID string) (file *drive.File, found bool, err error) {
	file, err = s.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Do()
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, newDriveError("failed to get file", err)
	}
	return file, true, nil
}

func createDirIn(s *drive.Service, parentID, name string) (file *drive.File, err error) {
	file, err = s.Files.Create(&drive.File{
		Name:     name,
		MimeType: mimeTypeGoogleAppFolder,
		Parents:  []string{parentID},
	}).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Do()
	if err != nil {
		return nil, newDriveError("failed to create directory", err)
	}
	return file, nil
}

func download(s *drive.Service, fileID string) (resp *http.Response, err error) {
	resp, err = s.Files.Get(fileID).
		SupportsAllDrives(true).
		Download()
	if err != nil {
		return nil, newDriveError("failed to download file", err)
	}
	return resp, nil
}

func statusCode(err error) int {
	var gErr *googleapi.Error
	if stderrors.As(err, &gErr) {
		return gErr.Code
	}
	return 0
}

// newDriveError wraps a failed Drive API call as a store error.
// Forbidden and missing resources are tagged with ErrAccessDenied and ErrFileMissing.
func newDriveError(msg string, cause error) error {
	switch statusCode(cause) {
	case http.StatusForbidden:
		cause = fmt.Errorf("%w: %w", errors.ErrAccessDenied, cause)
	case http.StatusNotFound:
		cause = fmt.Errorf("%w: %w", errors.ErrFileMissing, cause)
	}
	return errors.NewStoreError(msg, cause)
}
