package lint

// Options holds lint-specific settings from the lints.<id>.options table.
type Options map[string]any

// Option returns a lint-specific option value, or the default if not set.
func (o Options) Option(key string, defaultValue any) any {
	if o == nil {
		return defaultValue
	}
	if v, ok := o[key]; ok {
		return v
	}
	return defaultValue
}

// StringSlice returns a string slice option, or the default.
func (o Options) StringSlice(key string, defaultValue []string) []string {
	v := o.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// YAML and TOML decode lists as []any.
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
