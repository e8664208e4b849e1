package genericfile

import "slices"

// Permission is a provider-neutral access permission.
type Permission string

const (
	PermissionRead          Permission = "READ"
	PermissionWrite         Permission = "WRITE"
	PermissionDelete        Permission = "DELETE"
	PermissionAll           Permission = "ALL"
	PermissionACLManagement Permission = "ACL_MANAGEMENT"
)

// PermissionSet is a set of provider-neutral permissions.
type PermissionSet []Permission

// Permissions creates a PermissionSet from the given permissions, dropping duplicates.
func Permissions(permissions ...Permission) PermissionSet {
	set := PermissionSet{}
	for _, p := range permissions {
		if !slices.Contains(set, p) {
			set = append(set, p)
		}
	}
	return set
}

// Has reports whether the set contains p.
func (s PermissionSet) Has(p Permission) bool {
	return slices.Contains(s, p)
}
