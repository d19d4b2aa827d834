package service

import (
	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		401,
		"invalid email or password",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		409,
		"email already registered",
	)

	ErrInvalidInput = commonerrors.NewDomainError(
		"INVALID_INPUT",
		commonerrors.CategoryValidation,
		400,
		"invalid input",
	)
)
