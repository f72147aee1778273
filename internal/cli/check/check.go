package check

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/openmotor-dataset/openmotor/internal/cli/shared"
	"github.com/openmotor-dataset/openmotor/internal/config"
	apperrors "github.com/openmotor-dataset/openmotor/internal/errors"
	"github.com/openmotor-dataset/openmotor/internal/history"
	"github.com/openmotor-dataset/openmotor/internal/progress"
	"github.com/openmotor-dataset/openmotor/internal/report"
	"github.com/openmotor-dataset/openmotor/internal/submission"
	"github.com/openmotor-dataset/openmotor/internal/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	confirmQuestion = "Does the information look correct?"
	declinedMessage = "Please review your data and make the necessary changes before proceeding."
)

var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <folder>",
		Short: "Check a dataset submission folder",
		Long: `Check a dataset submission folder for consistency.

The folder must contain one data file (data_<name>.csv) and one readme file
(readme_<name>.txt) per dataset, and a spreadsheet (.xlsx) listing every
dataset with its number of subjects and minimum/maximum trials per subject.

The check stops at the first problem found and writes Error_Message.txt into
the folder. When every check passes, a summary is shown and, once confirmed,
Confirmation_Message.txt is written. Attach that file to your submission.`,
		Example: `  # Check a folder
  openmotor check ./my_submission

  # Skip the confirmation prompt
  openmotor check ./my_submission --yes

  # Re-check on every change until interrupted
  openmotor check ./my_submission --watch`,
		Args:         shared.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runCheck,
	}
	cmd.GroupID = shared.GroupChecking
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().Bool("no-report", false, "Do not write a report file into the folder")
	cmd.Flags().Int("preview-rows", 0, "Rows of each data file to preview (0 disables, default from config)")
	cmd.Flags().BoolP("watch", "w", false, "Re-run the check whenever the folder changes")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return apperrors.ConfigParseError(configPath, err)
	}
	applyFlags(cmd, cfg)

	folder, err := filepath.Abs(args[0])
	if err != nil {
		return apperrors.Wrap(err, apperrors.Argument)
	}
	fs, err := submission.Open(folder)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			return apperrors.FolderNotFound(args[0])
		case errors.Is(err, submission.ErrNotADirectory):
			return apperrors.NotADirectory(args[0])
		}
		return apperrors.Wrap(err, apperrors.Argument)
	}

	noReport, _ := cmd.Flags().GetBool("no-report")
	verbose, _ := cmd.Flags().GetBool("verbose")
	c := newChecker(cmd, cfg, fs, folder)
	c.noReport = noReport
	c.verbose = verbose

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return c.watch(cmd.Context())
	}
	_, err = c.run()
	return err
}

// applyFlags lets explicit flags override the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Configuration) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		cfg.SkipConfirmations = true
	}
	if cmd.Flags().Changed("preview-rows") {
		rows, _ := cmd.Flags().GetInt("preview-rows")
		cfg.PreviewRows = max(rows, 0)
	}
}

// checker runs the check for one folder and reports the outcome.
type checker struct {
	cmd      *cobra.Command
	cfg      *config.Configuration
	fs       billy.Filesystem
	folder   string
	log      *zap.Logger
	reports  *report.Writer
	history  *history.Writer
	caps     progress.TerminalCapabilities
	noReport bool
	verbose  bool
	// watching disables the confirmation prompt; stdin is not read while
	// waiting for filesystem events.
	watching bool
}

func newChecker(cmd *cobra.Command, cfg *config.Configuration, fs billy.Filesystem, folder string) *checker {
	log := shared.Logger().With(zap.String("folder", folder))
	return &checker{
		cmd:     cmd,
		cfg:     cfg,
		fs:      fs,
		folder:  folder,
		log:     log,
		reports: report.NewWriter(fs, cfg.SuccessReport, cfg.ErrorReport),
		history: history.NewWriter(cfg.StateDir, cfg.MaxHistory, log),
		caps:    progress.DetectTerminalCapabilities(cmd.OutOrStdout()),
	}
}

func (c *checker) options() validation.Options {
	return validation.Options{
		Naming: submission.Naming{
			DataMarker:   c.cfg.DataMarker,
			DataExt:      c.cfg.DataExt,
			DataPrefix:   c.cfg.DataPrefix,
			ReadmeMarker: c.cfg.ReadmeMarker,
			ReadmeExt:    c.cfg.ReadmeExt,
			ReadmePrefix: c.cfg.ReadmePrefix,
			IndexExt:     c.cfg.IndexExt,
		},
		IndexSheet: c.cfg.IndexSheet,
		Logger:     c.log,
	}
}

// run performs one check and returns its verdict. The error carries the
// exit code for a failed check.
func (c *checker) run() (*validation.Verdict, error) {
	out := c.cmd.OutOrStdout()
	started := time.Now()

	fmt.Fprintf(out, "Checking submission folder %s\n\n", c.folder)

	opts := c.options()
	var display *progress.Display
	if c.cfg.ShowProgress {
		display = progress.NewDisplay(c.caps, out)
		display.PreviewRows = c.cfg.PreviewRows
		opts.Observer = display
	}
	verdict := validation.Run(c.fs, opts)
	if display != nil {
		display.StopSpinner()
	}
	fmt.Fprintln(out)

	if !verdict.Passed() {
		return verdict, c.failed(verdict, started)
	}
	return verdict, c.passed(verdict, started)
}

func (c *checker) failed(v *validation.Verdict, started time.Time) error {
	out := c.cmd.OutOrStdout()
	colors := shared.NewColors()

	fmt.Fprint(out, colors.Red(report.Build(v)))

	path, err := c.writeReport(v)
	c.history.LogEntry(history.NewEntry(c.folder, v, false, path, started))
	if err != nil {
		return err
	}
	c.log.Info("check failed",
		zap.String("kind", string(v.Failure.Kind)),
		zap.String("stage", string(v.Failure.Stage)))
	return shared.NewExitError(shared.CategoryExitCode(v.Failure.Category()))
}

func (c *checker) passed(v *validation.Verdict, started time.Time) error {
	out := c.cmd.OutOrStdout()
	colors := shared.NewColors()

	fmt.Fprint(out, colors.Green(report.Build(v)))
	if c.verbose {
		printDatasetStats(out, v.Summary)
	}
	fmt.Fprintln(out)

	if c.watching && !c.cfg.SkipConfirmations {
		fmt.Fprintln(out, "Confirmation is not requested in watch mode; run without --watch to confirm.")
		c.history.LogEntry(history.NewEntry(c.folder, v, false, "", started))
		return nil
	}
	if !c.cfg.SkipConfirmations && !shared.PromptYesNo(c.cmd, confirmQuestion) {
		fmt.Fprintln(out, declinedMessage)
		c.history.LogEntry(history.NewEntry(c.folder, v, true, "", started))
		return nil
	}

	path, err := c.writeReport(v)
	c.history.LogEntry(history.NewEntry(c.folder, v, false, path, started))
	return err
}

// writeReport writes the report unless disabled and returns its path.
func (c *checker) writeReport(v *validation.Verdict) (string, error) {
	if c.noReport {
		return "", nil
	}
	path, err := c.reports.Write(v)
	if err != nil {
		return "", apperrors.ReportNotWritable(c.reports.FileName(v), err)
	}
	fmt.Fprintf(c.cmd.OutOrStdout(), "Report written to %s\n", path)
	c.log.Debug("report written", zap.String("path", path))
	return path, nil
}

func printDatasetStats(out io.Writer, s *validation.Summary) {
	fmt.Fprintln(out, "\nPer-dataset numbers:")
	for _, ds := range s.Datasets {
		fmt.Fprintf(out, "- %s: %d rows, %d subjects, %d-%d trials per subject\n",
			ds.ID, ds.Stats.Rows, ds.Stats.Subjects, ds.Stats.MinTrials, ds.Stats.MaxTrials)
	}
}
