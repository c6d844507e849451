package config

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full spells out every option with its default value.
	// If false, generates a minimal commented template.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	if opts.Full {
		return []byte(fullTemplate)
	}
	return []byte(minimalTemplate)
}

const minimalTemplate = `# zim2obsidian configuration
# See: https://github.com/yaklabco/zim2obsidian

# Page file extensions to convert
# extensions:
#   - .md

# Glob patterns to skip
# exclude:
#   - "**/.trash/**"

# Pages already use fenced code blocks instead of tab-indented verbatim
# backticks: false

# Convert Markdown links between pages to [[wikilinks]]
# wikilinks: true

# Keep @words instead of converting them to #tags
# preserve-at: false

# Guess a language tag for fences created from verbatim paragraphs
# detect-language: false

# Rename page files after their first heading
# rename: true

# Remove the first heading from page bodies
# strip-title: true

# Write .z2o.bak sidecar copies before overwriting
# backup: false
`

const fullTemplate = `# zim2obsidian configuration - Full Template
# See: https://github.com/yaklabco/zim2obsidian
#
# This template spells out every option with its default value.
# Adjust as needed.

# Page file extensions to convert
extensions:
  - .md

# Glob patterns to skip
exclude: []

# Pages already use fenced code blocks instead of tab-indented verbatim
backticks: false

# Convert Markdown links between pages to [[wikilinks]]
wikilinks: true

# Keep @words instead of converting them to #tags
preserve-at: false

# Guess a language tag for fences created from verbatim paragraphs
detect-language: false

# Rename page files after their first heading
rename: true

# Remove the first heading from page bodies
strip-title: true

# Write .z2o.bak sidecar copies before overwriting
backup: false

# Descend into symlinked directories during discovery
follow-symlinks: false

# Debug logging
debug: false

# Styled output: auto, always, or never
color: auto
`
