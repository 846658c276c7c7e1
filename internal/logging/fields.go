// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Structured field names. Keep keys snake_case so logfmt output stays
// greppable across commands.
const (
	FieldError    = "error"
	FieldDuration = "duration"

	// Inputs.
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Configuration.
	FieldConfig = "config"
	FieldLayer  = "layer"
	FieldPack   = "pack"
	FieldJobs   = "jobs"

	// Result cache.
	FieldCache  = "cache"
	FieldCached = "cached"
	FieldKey    = "key"

	// Check results.
	FieldRule             = "rule"
	FieldDiagnostics      = "diagnostics"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesProcessed   = "files_processed"

	// Build information.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldPlatform = "platform"
)
