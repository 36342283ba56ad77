package service

import "errors"

// 错误分类，由 Route 层统一映射为 HTTP 状态码。
var (
	ErrUnauthorized = errors.New("unauthorized request")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("duplicate record")
)
