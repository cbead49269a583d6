package models

// Ownable is implemented by entities that belong to a single user account.
// Permission guards check OwnerID instead of probing for author/user fields.
type Ownable interface {
	OwnerID() uint
}
