package access

// Intersects reports whether a user holding userRoles may open a door that
// permits doorRoles: true iff the two role sets share at least one member.
// Either set being empty means no access; in particular a door with no
// assigned roles is closed to everyone.
func Intersects(userRoles, doorRoles []int64) bool {
	if len(userRoles) == 0 || len(doorRoles) == 0 {
		return false
	}

	held := make(map[int64]struct{}, len(userRoles))
	for _, r := range userRoles {
		held[r] = struct{}{}
	}
	for _, r := range doorRoles {
		if _, ok := held[r]; ok {
			return true
		}
	}
	return false
}
