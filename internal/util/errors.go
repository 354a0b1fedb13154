package util

import "errors"

var (
	ErrSessionExpired = errors.New("session expired, please log in again")
	ErrStoreDisabled  = errors.New("session store unavailable")
)
