package service

import (
	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
)

// ErrNotFoundOrUnauthorized deliberately merges "no such todo" and
// "todo belongs to someone else" so a caller cannot probe for the
// existence of other users' data.
var ErrNotFoundOrUnauthorized = commonerrors.NewDomainError(
	"NOT_FOUND_OR_UNAUTHORIZED",
	commonerrors.CategoryNotFound,
	404,
	"todo not found or unauthorized",
)
