package validation

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/openmotor-dataset/openmotor/internal/submission"
	"go.uber.org/zap"
)

// run carries the state threaded through the stages of one Run call.
type run struct {
	fs   billy.Filesystem
	opts Options
	log  *zap.Logger

	files    *submission.Files
	index    *submission.Index
	pairings []Pairing
	datasets []Dataset
	tables   []*submission.Table
	stats    []Stats
}

// stageFunc performs one stage and returns a progress message or a failure.
type stageFunc func(r *run) (string, *Failure)

// Run validates the submission on fs and returns its verdict.
// Run is a pure function of the folder contents: calling it twice on an
// unchanged folder yields equal verdicts.
func Run(fs billy.Filesystem, opts Options) *Verdict {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Required == nil {
		opts.Required = submission.RequiredColumns
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	r := &run{fs: fs, opts: opts, log: opts.Logger.With(zap.String("root", fs.Root()))}
	steps := []struct {
		stage Stage
		fn    stageFunc
	}{
		{StageDiscover, (*run).discover},
		{StageIndex, (*run).readIndex},
		{StageCardinality, (*run).checkCounts},
		{StageIdentity, (*run).checkIdentities},
		{StageLoad, (*run).loadTables},
		{StageSchema, (*run).checkSchema},
		{StageSubjects, (*run).checkSubjects},
		{StageTrials, (*run).checkTrials},
	}

	for _, step := range steps {
		opts.Observer.StageStarted(step.stage)
		msg, failure := step.fn(r)
		if failure != nil {
			failure.Stage = step.stage
			r.log.Debug("stage failed",
				zap.String("stage", string(step.stage)),
				zap.String("kind", string(failure.Kind)),
				zap.String("detail", failure.Detail))
			opts.Observer.StageFailed(step.stage, failure)
			return &Verdict{Root: fs.Root(), Failure: failure}
		}
		r.log.Debug("stage completed", zap.String("stage", string(step.stage)))
		opts.Observer.StageCompleted(step.stage, msg)
	}

	return &Verdict{Root: fs.Root(), Summary: r.summary()}
}

func (r *run) discover() (string, *Failure) {
	files, err := submission.Discover(r.fs, r.opts.Naming)
	if err != nil {
		return "", unreadable(err)
	}
	if family, missing := files.Missing(); missing {
		return "", &Failure{
			Kind:   KindMissingFileFamily,
			Detail: missingFamilyDetail(family, r.opts.Naming),
		}
	}
	if len(files.Index) > 1 {
		r.log.Warn("several spreadsheets found, using the first",
			zap.String("using", files.Index[0]),
			zap.Strings("ignored", files.Index[1:]))
	}
	r.files = files
	return fmt.Sprintf("%d data files, %d readme files, %d spreadsheet files",
		len(files.Data), len(files.Readme), len(files.Index)), nil
}

func missingFamilyDetail(family submission.Family, n submission.Naming) string {
	switch family {
	case submission.FamilyIndex:
		return fmt.Sprintf("No spreadsheet (%s) file found in the folder.", n.IndexExt)
	case submission.FamilyData:
		return fmt.Sprintf(`No data files found in the folder (looking for %s files with "%s" in the name).`, n.DataExt, n.DataMarker)
	default:
		return fmt.Sprintf(`No readme files found in the folder (looking for %s files with "%s" in the name).`, n.ReadmeExt, n.ReadmeMarker)
	}
}

func (r *run) readIndex() (string, *Failure) {
	index, err := submission.ReadIndex(r.fs, r.files.Index[0], r.opts.IndexSheet)
	if err != nil {
		if errors.Is(err, submission.ErrMalformedIndex) {
			return "", &Failure{Kind: KindMalformedIndex, Detail: err.Error(), Err: err}
		}
		return "", unreadable(err)
	}
	r.index = index
	return fmt.Sprintf("%d entries in spreadsheet %s", len(index.Entries), r.files.Index[0]), nil
}

func (r *run) checkCounts() (string, *Failure) {
	if f := CheckCounts(r.files, r.index); f != nil {
		return "", f
	}
	r.pairings = Match(r.files, r.index.Entries, r.opts.Naming)
	return "Number of files matches.", nil
}

func (r *run) checkIdentities() (string, *Failure) {
	datasets, f := CheckIdentities(r.pairings)
	if f != nil {
		return "", f
	}
	r.datasets = datasets
	return "Names are consistent between the files and the spreadsheet.", nil
}

func (r *run) loadTables() (string, *Failure) {
	r.tables = make([]*submission.Table, len(r.datasets))
	for i, ds := range r.datasets {
		table, err := submission.LoadTable(r.fs, ds.DataFile)
		if err != nil {
			f := unreadable(err)
			f.Dataset = ds.ID
			return "", f
		}
		r.log.Debug("loaded table",
			zap.String("dataset", ds.ID),
			zap.Int("rows", table.Len()),
			zap.Int("columns", len(table.Header)))
		r.tables[i] = table
		r.opts.Observer.TableLoaded(ds, table)
	}
	if f := CheckNotEmpty(r.datasets, r.tables); f != nil {
		return "", f
	}
	return fmt.Sprintf("%d data tables loaded", len(r.tables)), nil
}

func (r *run) checkSchema() (string, *Failure) {
	if f := CheckSchema(r.datasets, r.tables, r.opts.Required); f != nil {
		return "", f
	}
	return fmt.Sprintf("All %d required fields present.", len(r.opts.Required)), nil
}

func (r *run) checkSubjects() (string, *Failure) {
	r.stats = make([]Stats, len(r.tables))
	for i, t := range r.tables {
		r.stats[i] = ComputeStats(t)
	}
	if f := CheckSubjectCounts(r.datasets, r.stats); f != nil {
		return "", f
	}
	return "Reported number of subjects is correct.", nil
}

func (r *run) checkTrials() (string, *Failure) {
	if f := CheckTrialRanges(r.datasets, r.stats); f != nil {
		return "", f
	}
	return "Reported number of trials per subject is correct.", nil
}

func (r *run) summary() *Summary {
	s := &Summary{
		DatasetCount:     len(r.datasets),
		ReadmeCount:      len(r.files.Readme),
		SpreadsheetCount: len(r.files.Index),
		Names:            make([]string, len(r.datasets)),
		Datasets:         make([]DatasetSummary, len(r.datasets)),
	}
	for i, ds := range r.datasets {
		s.Names[i] = ds.ID
		s.TotalSubjects += r.stats[i].Subjects
		s.Datasets[i] = DatasetSummary{ID: ds.ID, Stats: r.stats[i]}
	}
	return s
}

func unreadable(err error) *Failure {
	return &Failure{Kind: KindUnreadableFile, Detail: err.Error(), Err: err}
}

type nopObserver struct{}

func (nopObserver) StageStarted(Stage)                     {}
func (nopObserver) StageCompleted(Stage, string)           {}
func (nopObserver) StageFailed(Stage, *Failure)            {}
func (nopObserver) TableLoaded(Dataset, *submission.Table) {}
