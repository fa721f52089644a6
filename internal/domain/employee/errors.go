package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrEmployeeCodeExists      = errors.New("employee code already exists")
	ErrEmailExists             = errors.New("email already registered")
	ErrManagerNotFound         = errors.New("manager not found")
	ErrCannotManageSelf        = errors.New("employee cannot be their own manager")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
)
