package drivestore_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

var (
	parentClause   = regexp.MustCompile(`'((?:[^'\\]|\\.)*)' in parents`)
	nameClause     = regexp.MustCompile(`name = '((?:[^'\\]|\\.)*)'`)
	mimeTypeClause = regexp.MustCompile(`mimeType (=|!=) '([^']*)'`)
	unescape       = strings.NewReplacer(`\'`, `'`, `\\`, `\`)
)

// fakeDrive serves the subset of the Drive v3 REST API used by the store.
type fakeDrive struct {
	mu        sync.Mutex
	files     map[string]*drive.File
	content   map[string]string
	nextID    int
	forbidden bool
	queries   []string
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{files: map[string]*drive.File{}, content: map[string]string{}}
}

func (d *fakeDrive) add(id, parentID, name, mimeType string) *drive.File {
	f := &drive.File{
		Id:           id,
		Name:         name,
		MimeType:     mimeType,
		CreatedTime:  "2024-01-02T03:04:05Z",
		ModifiedTime: "2024-02-03T04:05:06Z",
		Capabilities: &drive.FileCapabilities{CanDownload: true, CanEdit: true, CanDelete: true},
	}
	if parentID != "" {
		f.Parents = []string{parentID}
	}
	d.files[id] = f
	return f
}

func (d *fakeDrive) service(t *testing.T) *drive.Service {
	t.Helper()
	srv := httptest.NewServer(d)
	t.Cleanup(srv.Close)
	service, err := drive.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return service
}

func (d *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := strings.TrimPrefix(r.URL.Path, "/files")
	id = strings.TrimPrefix(id, "/")
	switch {
	case r.Method == http.MethodGet && id == "":
		d.list(w, r)
	case r.Method == http.MethodGet:
		d.get(w, r, id)
	case r.Method == http.MethodPost && id == "":
		d.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "unsupported")
	}
}

func (d *fakeDrive) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	d.queries = append(d.queries, q)

	parent := parentClause.FindStringSubmatch(q)
	name := nameClause.FindStringSubmatch(q)
	mimeType := mimeTypeClause.FindStringSubmatch(q)

	files := []*drive.File{}
	for _, id := range d.sortedIDs() {
		f := d.files[id]
		if parent != nil && !slices.Contains(f.Parents, unescape.Replace(parent[1])) {
			continue
		}
		if name != nil && f.Name != unescape.Replace(name[1]) {
			continue
		}
		if mimeType != nil && (f.MimeType == mimeType[2]) != (mimeType[1] == "=") {
			continue
		}
		files = append(files, f)
	}
	writeJSON(w, &drive.FileList{Files: files})
}

func (d *fakeDrive) get(w http.ResponseWriter, r *http.Request, id string) {
	f, ok := d.files[id]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("File not found: %s.", id))
		return
	}
	if r.URL.Query().Get("alt") == "media" {
		_, _ = io.WriteString(w, d.content[id])
		return
	}
	writeJSON(w, f)
}

func (d *fakeDrive) create(w http.ResponseWriter, r *http.Request) {
	if d.forbidden {
		writeError(w, http.StatusForbidden, "The user does not have sufficient permissions for this file.")
		return
	}
	var f drive.File
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d.nextID++
	parentID := ""
	if len(f.Parents) > 0 {
		parentID = f.Parents[0]
	}
	writeJSON(w, d.add(fmt.Sprintf("new-%d", d.nextID), parentID, f.Name, f.MimeType))
}

func (d *fakeDrive) sortedIDs() []string {
	ids := make([]string, 0, len(d.files))
	for id := range d.files {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}
