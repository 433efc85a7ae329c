package errors

// Convenience functions for common error patterns

// Input errors

func InputNotDirectory(path string, cause error) *IconCacheError {
	return Wrap(cause, CategoryValidation, SeverityFatal, "input arg must be a directory").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *IconCacheError {
	return New(CategoryValidation, SeverityFatal, "validation failed: "+field+": "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Indexing errors

func DiscoveryError(root string, cause error) *IconCacheError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "icon discovery failed").
		WithContext("path", root)
}

func IconReadError(cause error) *IconCacheError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to read dmi file")
}

func IconDecodeError(cause error) *IconCacheError {
	return Wrap(cause, CategoryDecode, SeverityFatal, "failed to load dmi")
}

func OutputError(path string, cause error) *IconCacheError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to write icon cache").
		WithContext("path", path)
}

func MetricsError(path string, cause error) *IconCacheError {
	return Wrap(cause, CategoryRuntime, SeverityError, "failed to write metrics").
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *IconCacheError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
