package repository

import (
	"fmt"
	"strings"

	genericfile "github.com/Jumpaku/go-genericfile"
	"github.com/Jumpaku/go-genericfile/errors"
	"github.com/gobwas/glob"
)

// Filter tokens understood by stores. A token is a name pattern optionally followed by
// "|FILES" or "|FOLDERS".
const (
	FilterTokenAll     = "*"
	FilterTokenFolders = "*|FOLDERS"
	FilterTokenFiles   = "*|FILES"
)

// Filter returns the filter token corresponding to a tree filter.
func Filter(treeFilter genericfile.TreeFilter) string {
	switch treeFilter {
	case genericfile.FilterFolders:
		return FilterTokenFolders
	case genericfile.FilterFiles:
		return FilterTokenFiles
	default:
		return FilterTokenAll
	}
}

// NameFilter is a decoded filter token.
type NameFilter struct {
	pattern glob.Glob
	files   bool
	folders bool
}

// ParseFilter decodes a filter token. An empty token matches everything.
func ParseFilter(token string) (filter NameFilter, err error) {
	pattern, kind, _ := strings.Cut(token, "|")
	if pattern == "" {
		pattern = "*"
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return NameFilter{}, errors.NewStoreError(fmt.Sprintf("invalid filter pattern %q", pattern), err)
	}
	filter = NameFilter{pattern: g, files: true, folders: true}
	switch kind {
	case "":
	case "FILES":
		filter.folders = false
	case "FOLDERS":
		filter.files = false
	default:
		return NameFilter{}, errors.NewStoreError(fmt.Sprintf("invalid filter type %q", kind), nil)
	}
	return filter, nil
}

// Match reports whether a child entry passes the filter.
func (f NameFilter) Match(name string, folder bool) bool {
	if folder && !f.folders {
		return false
	}
	if !folder && !f.files {
		return false
	}
	return f.pattern.Match(name)
}

// Folders reports whether the filter lets folders through.
func (f NameFilter) Folders() bool {
	return f.folders
}

// Files reports whether the filter lets files through.
func (f NameFilter) Files() bool {
	return f.files
}
