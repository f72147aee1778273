package validation

import (
	"fmt"

	"github.com/openmotor-dataset/openmotor/internal/submission"
)

// CheckSchema requires every table to carry every column in required.
// Datasets are checked in order and columns in list order, so the failure
// names the first missing column of the first incomplete table even when
// more columns are missing.
func CheckSchema(datasets []Dataset, tables []*submission.Table, required []string) *Failure {
	for i, ds := range datasets {
		for _, column := range required {
			if tables[i].HasColumn(column) {
				continue
			}
			return &Failure{
				Kind:    KindMissingField,
				Stage:   StageSchema,
				Dataset: ds.ID,
				Field:   column,
				Detail: fmt.Sprintf(`No field "%s" exists in dataset %s. A field "%s" MUST be present in the dataset.`,
					column, ds.ID, column),
			}
		}
	}
	return nil
}
