package repository

import (
	"slices"

	genericfile "github.com/Jumpaku/go-genericfile"
)

// Permission is a native repository permission.
type Permission int

const (
	PermissionRead Permission = iota + 1
	PermissionWrite
	PermissionDelete
	PermissionAll
	PermissionACLManagement
)

func (p Permission) String() string {
	switch p {
	case PermissionRead:
		return "read"
	case PermissionWrite:
		return "write"
	case PermissionDelete:
		return "delete"
	case PermissionAll:
		return "all"
	case PermissionACLManagement:
		return "acl_management"
	default:
		return "unknown"
	}
}

// Permissions translates provider-neutral permissions into native ones, one for one.
// Unrecognized permissions are ignored.
func Permissions(permissions genericfile.PermissionSet) []Permission {
	native := []Permission{}
	for _, p := range permissions {
		var n Permission
		switch p {
		case genericfile.PermissionRead:
			n = PermissionRead
		case genericfile.PermissionWrite:
			n = PermissionWrite
		case genericfile.PermissionDelete:
			n = PermissionDelete
		case genericfile.PermissionAll:
			n = PermissionAll
		case genericfile.PermissionACLManagement:
			n = PermissionACLManagement
		default:
			continue
		}
		if !slices.Contains(native, n) {
			native = append(native, n)
		}
	}
	return native
}
