package store

import "errors"

var (
	ErrCacheDir  = errors.New("paca: cache directory unavailable")
	ErrIntegrity = errors.New("paca: integrity check failed")
)
