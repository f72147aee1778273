// Package submission discovers and loads the files that make up a dataset
// submission: one data table and one readme per dataset, plus a single index
// spreadsheet declaring the expected metadata for every dataset.
//
// The package only reads. Deciding whether what it read is consistent is the
// job of the validation package.
package submission

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Family identifies one of the three kinds of file in a submission.
type Family string

const (
	// FamilyIndex is the master index spreadsheet.
	FamilyIndex Family = "spreadsheet"
	// FamilyData is the per-dataset trial table.
	FamilyData Family = "data"
	// FamilyReadme is the per-dataset description file.
	FamilyReadme Family = "readme"
)

// Naming holds the filename conventions used to classify files.
type Naming struct {
	DataMarker   string // substring every data table name contains
	DataExt      string
	DataPrefix   string // stripped from data basenames to get the identifier
	ReadmeMarker string
	ReadmeExt    string
	ReadmePrefix string
	IndexExt     string
}

// DefaultNaming returns the conventions submitters are asked to follow.
func DefaultNaming() Naming {
	return Naming{
		DataMarker:   "data",
		DataExt:      ".csv",
		DataPrefix:   "data_",
		ReadmeMarker: "readme",
		ReadmeExt:    ".txt",
		ReadmePrefix: "readme_",
		IndexExt:     ".xlsx",
	}
}

// ErrNotADirectory is returned by Open for a path that is not a folder.
var ErrNotADirectory = errors.New("not a directory")

// Open returns a filesystem rooted at the submission folder.
// It fails if dir does not exist or is not a directory.
func Open(dir string) (billy.Filesystem, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening submission folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening submission folder %s: %w", dir, ErrNotADirectory)
	}
	return osfs.New(dir), nil
}
