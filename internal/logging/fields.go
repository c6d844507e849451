package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldRoot       = "root"
	FieldWorkingDir = "working_dir"

	// Page fields.
	FieldPage   = "page"
	FieldTitle  = "title"
	FieldFrom   = "from"
	FieldTo     = "to"
	FieldTarget = "target"

	// Configuration fields.
	FieldConfig = "config"
	FieldDryRun = "dry_run"

	// Statistics fields.
	FieldPagesScanned   = "pages_scanned"
	FieldPagesConverted = "pages_converted"
	FieldPagesRenamed   = "pages_renamed"
	FieldLinksRewritten = "links_rewritten"
	FieldDanglingLinks  = "dangling_links"
	FieldPagesFailed    = "pages_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
