package configloader

import (
	"slices"

	"github.com/yaklabco/wordfreq/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalars: override wins if non-zero
//   - Pointers: override wins if non-nil, so a later layer can set a zero value
//   - Slices: override replaces base entirely if non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Pattern != nil {
		result.Pattern = config.String(*override.Pattern)
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.MaxBufferBytes != 0 {
		result.MaxBufferBytes = override.MaxBufferBytes
	}

	if override.Sort != nil {
		result.Sort = config.Bool(*override.Sort)
	}
	if override.FollowSymlinks != nil {
		result.FollowSymlinks = config.Bool(*override.FollowSymlinks)
	}

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	if override.Summary != config.SummaryNone {
		result.Summary = override.Summary
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
