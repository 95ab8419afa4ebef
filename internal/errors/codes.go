package errors

// Generic error code definitions used as sensible defaults across modules.
const (
	CodeSystemGeneric     = "SYS-000"
	CodeConfigGeneric     = "CFG-000"
	CodeValidationGeneric = "VAL-000"
	CodeDependencyGeneric = "DEP-000"
	CodeResourceGeneric   = "RES-000"
	CodeCleanupGeneric    = "CLN-000"
	CodeDatabaseGeneric   = "DB-000"
	CodeTestGeneric       = "TST-000"
)
