package core

import "fmt"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Matrix 错误：未知的 entity / item（NOT_FOUND）
//   - Similarity 错误：未知的度量名称（INVALID_INPUT）
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "matrix", "recall", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 让 errors.Is 按 Module + Code 比较，而不是按指针。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Module == e.Module && t.Code == e.Code
}

// GetDomainError 获取 DomainError（支持 wrap 链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	for err != nil {
		if domainErr, ok := err.(*DomainError); ok {
			return domainErr
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound     = "NOT_FOUND"     // 资源不存在
	ErrorCodeNotSupported = "NOT_SUPPORTED" // 操作不支持
	ErrorCodeInvalidInput = "INVALID_INPUT" // 输入无效
)

// 模块名称常量
const (
	ModuleMatrix     = "matrix"     // 评分矩阵
	ModuleSimilarity = "similarity" // 相似度度量
	ModuleRecall     = "recall"     // 推荐聚合 / 相似表
	ModuleStore      = "store"      // 存储模块
)

// ErrEntityNotFound 返回未知 entity 的 NOT_FOUND 错误。
func ErrEntityNotFound(entity string) *DomainError {
	return NewDomainError(ModuleMatrix, ErrorCodeNotFound, fmt.Sprintf("matrix: entity %q not found", entity))
}

// ErrItemNotFound 返回相似表中缺少 item 的 NOT_FOUND 错误。
func ErrItemNotFound(item string) *DomainError {
	return NewDomainError(ModuleRecall, ErrorCodeNotFound, fmt.Sprintf("recall: item %q not found in similarity table", item))
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}
