package configloader

import (
	"maps"

	"github.com/yaklabco/yamllex/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	if override.Markdown.Enabled != nil {
		result.Markdown.Enabled = override.Markdown.Enabled
	}
	if override.Markdown.DetectUntagged != nil {
		result.Markdown.DetectUntagged = override.Markdown.DetectUntagged
	}
	if override.Gutter != nil {
		result.Gutter = override.Gutter
	}

	result.Theme = mergeTheme(base.Theme, override.Theme)

	if override.Keywords != nil {
		result.Keywords = override.Keywords
	}
	if override.ExtraKeywords != nil {
		result.ExtraKeywords = override.ExtraKeywords
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// mergeTheme returns a new map holding base's entries overlaid with
// override's.
func mergeTheme(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
