package domain

import "errors"

var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrTransformFailed = errors.New("image transform failed")
)
