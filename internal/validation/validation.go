// openmotor - Motor Learning Dataset submission checker

// Package validation checks a dataset submission for cross-file consistency.
//
// A run is a fixed sequence of stages. Each stage either produces the input
// of the next one or a *Failure, and the first failure ends the run: later
// stages never execute and nothing computed so far is reported. Files are
// read once; the schema and statistics stages share the tables loaded by the
// load stage.
package validation

import (
	"github.com/openmotor-dataset/openmotor/internal/submission"
	"go.uber.org/zap"
)

// Stage identifies one step of a validation run.
type Stage string

const (
	StageDiscover    Stage = "discover"
	StageIndex       Stage = "index"
	StageCardinality Stage = "cardinality"
	StageIdentity    Stage = "identity"
	StageLoad        Stage = "load"
	StageSchema      Stage = "schema"
	StageSubjects    Stage = "subjects"
	StageTrials      Stage = "trials"
)

// Stages lists every stage in execution order.
var Stages = []Stage{
	StageDiscover, StageIndex, StageCardinality, StageIdentity,
	StageLoad, StageSchema, StageSubjects, StageTrials,
}

// Observer is notified as a run progresses. All methods are called from the
// goroutine running Run.
type Observer interface {
	StageStarted(stage Stage)
	StageCompleted(stage Stage, message string)
	StageFailed(stage Stage, failure *Failure)
	// TableLoaded is called once per dataset after its table is read.
	TableLoaded(ds Dataset, table *submission.Table)
}

// Options configures a run.
type Options struct {
	Naming     submission.Naming
	IndexSheet string
	Required   []string // defaults to submission.RequiredColumns
	Logger     *zap.Logger
	Observer   Observer
}

// DatasetSummary holds the numbers computed for one dataset.
type DatasetSummary struct {
	ID    string
	Stats Stats
}

// Summary describes a submission that passed every check.
type Summary struct {
	DatasetCount     int
	ReadmeCount      int
	SpreadsheetCount int
	TotalSubjects    int
	Names            []string
	Datasets         []DatasetSummary
}

// Verdict is the single outcome of a run: exactly one of Summary and Failure is set.
type Verdict struct {
	Root    string
	Summary *Summary
	Failure *Failure
}

// Passed reports whether the submission passed.
func (v *Verdict) Passed() bool {
	return v.Failure == nil
}
