package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/zim2obsidian/pkg/config"
)

// envVarPrefix is the prefix for all zim2obsidian environment variables.
const envVarPrefix = "ZIM2OBSIDIAN_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	// envTypeTriState is a *bool field; the variable can set false
	// explicitly, unlike plain bool fields.
	envTypeTriState
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice},
	"EXCLUDE":         {field: "exclude", typ: envTypeSlice},
	"BACKTICKS":       {field: "backticks", typ: envTypeBool},
	"WIKILINKS":       {field: "wikilinks", typ: envTypeTriState},
	"PRESERVE_AT":     {field: "preserve-at", typ: envTypeBool},
	"DETECT_LANGUAGE": {field: "detect-language", typ: envTypeBool},
	"RENAME":          {field: "rename", typ: envTypeTriState},
	"STRIP_TITLE":     {field: "strip-title", typ: envTypeTriState},
	"BACKUP":          {field: "backup", typ: envTypeBool},
	"FOLLOW_SYMLINKS": {field: "follow-symlinks", typ: envTypeBool},
	"DEBUG":           {field: "debug", typ: envTypeBool},
	"COLOR":           {field: "color", typ: envTypeString},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with ZIM2OBSIDIAN_ (e.g. ZIM2OBSIDIAN_BACKTICKS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool, envTypeTriState:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		if mapping.typ == envTypeTriState {
			return setTriStateField(cfg, mapping.field, b)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field name.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "color":
		cfg.Color = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field name.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "backticks":
		cfg.Backticks = value
	case "preserve-at":
		cfg.PreserveAt = value
	case "detect-language":
		cfg.DetectLanguage = value
	case "backup":
		cfg.Backup = value
	case "follow-symlinks":
		cfg.FollowSymlinks = value
	case "debug":
		cfg.Debug = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setTriStateField sets a *bool field on the config by field name.
func setTriStateField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "wikilinks":
		cfg.Wikilinks = config.BoolPtr(value)
	case "rename":
		cfg.Rename = config.BoolPtr(value)
	case "strip-title":
		cfg.StripTitle = config.BoolPtr(value)
	default:
		return fmt.Errorf("unknown tri-state field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field name.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "exclude":
		cfg.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns the supported environment variables with descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"ZIM2OBSIDIAN_EXTENSIONS":      "Comma-separated page extensions (default: .md)",
		"ZIM2OBSIDIAN_EXCLUDE":         "Comma-separated glob patterns to skip",
		"ZIM2OBSIDIAN_BACKTICKS":       "Preserve existing backtick markup: true or false",
		"ZIM2OBSIDIAN_WIKILINKS":       "Convert links to [[wikilinks]]: true or false",
		"ZIM2OBSIDIAN_PRESERVE_AT":     "Keep @words instead of #tags: true or false",
		"ZIM2OBSIDIAN_DETECT_LANGUAGE": "Guess fence language tags: true or false",
		"ZIM2OBSIDIAN_RENAME":          "Rename pages after their first heading: true or false",
		"ZIM2OBSIDIAN_STRIP_TITLE":     "Remove the first heading from bodies: true or false",
		"ZIM2OBSIDIAN_BACKUP":          "Write sidecar backups before overwriting: true or false",
		"ZIM2OBSIDIAN_FOLLOW_SYMLINKS": "Descend into symlinked directories: true or false",
		"ZIM2OBSIDIAN_DEBUG":           "Debug logging: true or false",
		"ZIM2OBSIDIAN_COLOR":           "Styled output: auto, always, or never",
	}
}
