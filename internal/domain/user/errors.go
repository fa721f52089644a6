package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrInvalidRole             = errors.New("invalid role")
	ErrEmployeeProfileRequired = errors.New("no employee profile is linked to this user")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrAccessDenied            = errors.New("access denied")
)
