package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrPhoneNumberExists = errors.New("phone number already registered")
)
