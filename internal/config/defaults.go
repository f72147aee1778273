package config

// GetDefaults returns the default configuration values.
// The naming defaults match the layout submitters are asked to follow:
// data_<name>.csv, readme_<name>.txt and a single .xlsx index.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"data_marker":        "data",
		"data_ext":           ".csv",
		"data_prefix":        "data_",
		"readme_marker":      "readme",
		"readme_ext":         ".txt",
		"readme_prefix":      "readme_",
		"index_ext":          ".xlsx",
		"index_sheet":        "",
		"success_report":     "Confirmation_Message.txt",
		"error_report":       "Error_Message.txt",
		"preview_rows":       8,
		"skip_confirmations": false,
		"show_progress":      true,
		"state_dir":          "~/.openmotor/state",
		"max_history":        200,
		"watch_debounce_ms":  300,
	}
}
