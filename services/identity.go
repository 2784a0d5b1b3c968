package services

import "pos-backend/entity"

// Identity is the authenticated caller, resolved once per request and passed explicitly.
type Identity struct {
	UserID   uint
	Username string
	Role     entity.Role
	TokenID  string
}

func (i Identity) IsAdmin() bool {
	return i.Role == entity.RoleAdmin
}
