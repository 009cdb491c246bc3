package model

// Permission is a bit flag controlling access to a class of operations.
// Flags combine with bitwise OR; a role's permission set is the union of
// its flags.
type Permission int

const (
	PermissionView   Permission = 1
	PermissionCreate Permission = 2
	PermissionEdit   Permission = 4
	PermissionDelete Permission = 8
	PermissionAdmin  Permission = 16
)

// CombinePermissions ORs the given flags into a single bitmask.
func CombinePermissions(flags ...Permission) Permission {
	var mask Permission
	for _, f := range flags {
		mask |= f
	}
	return mask
}

// Has reports whether the bitmask intersects the given flag.
func (p Permission) Has(flag Permission) bool {
	return p&flag != 0
}
