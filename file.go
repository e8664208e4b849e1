package genericfile

import "time"

// Kind distinguishes files from folders.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// File is the normalized, provider-independent description of a file or folder.
// Capability flags are computed by the provider when the file is read and are not kept up to date.
// They describe permitted UI actions and are not authoritative for access control; use
// Provider.HasAccess for that.
type File struct {
	Kind     Kind   `json:"type"`
	Provider string `json:"provider"`
	Path     string `json:"path"`
	Name     string `json:"name"`
	// ParentPath is the path of the enclosing folder, or "" when there is none.
	ParentPath   string    `json:"parentPath,omitempty"`
	Hidden       bool      `json:"hidden"`
	ModifiedDate time.Time `json:"modifiedDate"`
	ObjectID     string    `json:"objectId,omitempty"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`

	CanEdit        bool `json:"canEdit"`
	CanDelete      bool `json:"canDelete"`
	CanAddChildren bool `json:"canAddChildren"`
	CanView        bool `json:"canView"`
	CanManageACL   bool `json:"canManageAcl"`
}

// IsFolder reports whether f is a folder.
func (f *File) IsFolder() bool {
	return f.Kind == KindFolder
}
