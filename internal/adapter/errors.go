package adapter

import "errors"

var (
	ErrUploadFailed        = errors.New("image upload failed")
	ErrDeleteFailed        = errors.New("image delete failed")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("image host rejected credentials")
	ErrNotFound            = errors.New("image not found on host")
	ErrInternalServerError = errors.New("image host internal error")
)
