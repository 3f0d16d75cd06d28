package logging

// Field names for structured log entries.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldPaths    = "paths"
	FieldFiles    = "files"
	FieldConfig   = "config"
	FieldJobs     = "jobs"
	FieldMode     = "mode"
	FieldDuration = "duration"

	// Formatting fields.
	FieldChanged     = "changed"
	FieldCached      = "cached"
	FieldRewrites    = "rewrites"
	FieldAmbiguities = "ambiguities"
	FieldGroups      = "groups"
	FieldNode        = "node"
	FieldQualifier   = "qualifier"
	FieldType        = "type"
	FieldName        = "name"
	FieldComment     = "comment"

	// Statistics fields.
	FieldFilesProcessed = "files_processed"
	FieldFilesChanged   = "files_changed"
	FieldFilesFailed    = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
)
