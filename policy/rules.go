package policy

// CanViewUserCount gates the "System Users" stat card.
func CanViewUserCount(role Role) bool {
	return ParseRole(string(role)) == Admin
}

// CanTransitionAccidentStatus gates the respond and resolve actions, and
// ambulance assignment on an emergency.
func CanTransitionAccidentStatus(role Role) bool {
	return dispatch.Has(role)
}

// CanManageAmbulances gates creating ambulances and changing their status.
func CanManageAmbulances(role Role) bool {
	return dispatch.Has(role)
}

// CanDeleteMedicalID reports whether p may delete a medical ID created by
// ownerID. Admins may delete any record; everyone else only their own.
func CanDeleteMedicalID(p Principal, ownerID string) bool {
	if ParseRole(string(p.Role)) == Admin {
		return true
	}
	return p.ID != "" && p.ID == ownerID
}
