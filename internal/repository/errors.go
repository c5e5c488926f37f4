package repository

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid id format")

	ErrDuplicateName        = errors.New("name already exists")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicateCourierType = errors.New("courier type already exists")
	ErrDuplicateNumber      = errors.New("number already exists")
)

// IsDuplicate reports whether err is one of the uniqueness sentinels.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicateCourierType) ||
		errors.Is(err, ErrDuplicateNumber)
}
