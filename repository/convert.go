package repository

import (
	genericfile "github.com/Jumpaku/go-genericfile"
)

// Convert converts a native file into a generic file whose parent is parentPath.
// The modified date falls back to the creation date when the last-modified date is unknown.
// CanEdit is always set; folders can additionally have children added.
func Convert(nativeFile *File, parentPath string) *genericfile.File {
	modified := nativeFile.LastModified
	if modified.IsZero() {
		modified = nativeFile.Created
	}
	file := &genericfile.File{
		Kind:         genericfile.KindFile,
		Provider:     Type,
		Path:         nativeFile.Path,
		Name:         nativeFile.Name,
		ParentPath:   parentPath,
		Hidden:       nativeFile.Hidden,
		ModifiedDate: modified,
		ObjectID:     nativeFile.ID,
		Title:        nativeFile.Title,
		Description:  nativeFile.Description,
		CanEdit:      true,
	}
	if nativeFile.Folder {
		file.Kind = genericfile.KindFolder
		file.CanAddChildren = true
	}
	return file
}

// ConvertTree converts a native tree, giving each child the path of its converted parent.
// An expanded native node without children stays expanded.
func ConvertTree(nativeTree *Tree, parentPath string) *genericfile.Tree {
	tree := genericfile.NewTree(Convert(nativeTree.File, parentPath))
	if nativeTree.Children != nil {
		tree.SetExpanded()
		for _, nativeChild := range nativeTree.Children {
			tree.AddChild(ConvertTree(nativeChild, tree.File.Path))
		}
	}
	return tree
}
