package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyUpload 上传文件为空
var ErrEmptyUpload = errors.New("uploaded file is empty")

// InvalidFormatError 不支持的文件格式
type InvalidFormatError struct {
	Filename string
}

// Error 实现 error 接口
func (e *InvalidFormatError) Error() string {
	return "Invalid file format"
}

// NewInvalidFormat 创建文件格式错误
func NewInvalidFormat(filename string) *InvalidFormatError {
	return &InvalidFormatError{Filename: filename}
}

// DataError 数据错误（缺列、无法解析等），按请求上报，不影响进程
type DataError struct {
	Reason string
	Cause  error
}

// Error 实现 error 接口
func (e *DataError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Cause)
	}
	return e.Reason
}

// Unwrap 返回底层错误
func (e *DataError) Unwrap() error {
	return e.Cause
}

// NewDataError 创建数据错误
func NewDataError(reason string, cause error) *DataError {
	return &DataError{Reason: reason, Cause: cause}
}

// HTTPStatus 将错误映射为 HTTP 状态码
func HTTPStatus(err error) int {
	var formatErr *InvalidFormatError
	var dataErr *DataError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &formatErr), errors.As(err, &dataErr), errors.Is(err, ErrEmptyUpload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
