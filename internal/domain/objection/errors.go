package objection

import "errors"

var (
	ErrMessageRequired      = errors.New("objection message is required")
	ErrResponseRequired     = errors.New("resolution requires a response message")
	ErrForbidden            = errors.New("actor may not act on this objection")
	ErrObjectionNotFound    = errors.New("objection not found")
	ErrObjectionResolved    = errors.New("objection is already resolved")
	ErrEmployeeLinkNotFound = errors.New("no employee record linked to this user")
)
