package genericfile

// TreeFilter restricts the kind of entries returned in a tree.
type TreeFilter int

const (
	FilterAll TreeFilter = iota
	FilterFiles
	FilterFolders
)

func (f TreeFilter) String() string {
	switch f {
	case FilterFiles:
		return "FILES"
	case FilterFolders:
		return "FOLDERS"
	default:
		return "ALL"
	}
}

// DepthUnbounded requests a tree without a depth bound.
const DepthUnbounded = -1

// TreeOptions describes a tree request.
type TreeOptions struct {
	// BasePath is the root of the requested tree. Nil means the provider root.
	BasePath *Path
	// MaxDepth bounds the tree below BasePath. 0 returns the base node only; a negative value
	// (see DepthUnbounded) returns the whole tree.
	MaxDepth   int
	Filter     TreeFilter
	ShowHidden bool
}

// NewTreeOptions returns options for an unbounded, unfiltered tree of the provider root.
func NewTreeOptions() TreeOptions {
	return TreeOptions{MaxDepth: DepthUnbounded}
}

// WithBasePath returns a copy of o rooted at path.
func (o TreeOptions) WithBasePath(path Path) TreeOptions {
	o.BasePath = &path
	return o
}
