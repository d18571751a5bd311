package service

import "errors"

var (
	// ErrUserNotFound 目标用户不存在
	ErrUserNotFound = errors.New("用户不存在")
	// ErrRequestNotFound 变更请求不存在
	ErrRequestNotFound = errors.New("变更请求不存在")
	// ErrRequestResolved 变更请求已进入终态，不可重复处理
	ErrRequestResolved = errors.New("变更请求已处理")
	// ErrInvalidDecision 审批决定不合法
	ErrInvalidDecision = errors.New("无效的审批决定")
)

// FieldError 字段级校验错误，Field 用于前端定位到表单项
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// NewFieldError 创建字段校验错误
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// AsFieldError 判断 err 是否为字段校验错误
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
