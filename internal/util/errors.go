package util

import (
	"errors"
	"fmt"
)

// 错误分类
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence error")
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrQuestionNotFound   = fmt.Errorf("question %w", ErrNotFound)
	ErrEmailRegistered    = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrDuplicateAccount   = fmt.Errorf("%w: username or email already taken", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrValidation)
	ErrNoResume           = fmt.Errorf("%w: no resume to delete", ErrValidation)
)

// Validationf 构造一个可被 errors.Is(err, ErrValidation) 识别的错误
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// WrapPersistence 将底层存储错误包装为 ErrPersistence，nil 原样返回
func WrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
