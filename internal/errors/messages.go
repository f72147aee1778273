package errors

import "fmt"

// FolderNotFound reports a submission folder that does not exist.
func FolderNotFound(path string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("submission folder not found: %s", path),
		"openmotor check <folder>",
		"Check the folder path for typos",
		"Pass the folder that contains the data, readme and spreadsheet files",
	)
}

// NotADirectory reports a submission path that is a regular file.
func NotADirectory(path string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("not a directory: %s", path),
		"openmotor check <folder>",
		"Pass the folder, not one of the files inside it",
	)
}

// ConfigParseError reports a config file that could not be loaded.
func ConfigParseError(path string, err error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load config %s: %v", path, err),
		Err:      err,
		Remediation: []string{
			"Check the file is valid JSON",
			"Run 'openmotor config show' to see the effective configuration",
		},
	}
}

// ReportNotWritable reports a failure writing the report file.
func ReportNotWritable(path string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("cannot write report %s: %v", path, err),
		Err:      err,
		Remediation: []string{
			"Check that the submission folder is writable",
			"Re-run with --no-report to skip writing the report",
		},
	}
}

// HistoryNotWritable reports a failure changing the history file under stateDir.
func HistoryNotWritable(stateDir string, err error) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("cannot update history in %s: %v", stateDir, err),
		Err:      err,
		Remediation: []string{
			"Check that " + stateDir + " is writable",
			"Set state_dir in the config to another directory",
		},
	}
}
