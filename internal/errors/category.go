package errors

// ErrorCategory groups related application errors for unified handling.
type ErrorCategory string

const (
	ErrCategorySystem     ErrorCategory = "SYSTEM"
	ErrCategoryConfig     ErrorCategory = "CONFIG"
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategoryDependency ErrorCategory = "DEPENDENCY"
	ErrCategoryResource   ErrorCategory = "RESOURCE"
	ErrCategoryCleanup    ErrorCategory = "CLEANUP"
	ErrCategoryDatabase   ErrorCategory = "DATABASE"
	ErrCategoryTest       ErrorCategory = "TEST"
)
