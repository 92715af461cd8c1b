package terminal

// extractToolSummary extracts the most relevant field from the tool input.
func extractToolSummary(name string, input map[string]any) string {
	if input == nil {
		return ""
	}

	switch name {
	case "bash":
		return stringField(input, "command")
	case "read":
		return stringField(input, "file_path")
	case "write":
		return stringField(input, "file_path")
	case "edit":
		return stringField(input, "file_path")
	case "glob":
		return stringField(input, "pattern")
	case "grep":
		return stringField(input, "pattern")
	default:
		for _, key := range []string{"command", "file_path", "path", "pattern", "query", "url"} {
			if v := stringField(input, key); v != "" {
				return v
			}
		}
		return ""
	}
}

// stringField safely extracts a string value from a map.
func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
