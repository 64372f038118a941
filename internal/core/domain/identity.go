package domain

// Identity is the caller resolved from a verified token. It lives only for
// the duration of one request.
type Identity struct {
	UserID string
	Role   Role
}

// Require returns ErrForbidden unless the identity holds role.
func (i Identity) Require(role Role) error {
	if i.Role != role {
		return ErrForbidden
	}
	return nil
}
