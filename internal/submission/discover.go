package submission

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Files is the result of classifying a submission folder.
// Each list holds names relative to the submission root, sorted lexicographically.
type Files struct {
	Root   string
	Data   []string
	Readme []string
	Index  []string
}

// Missing returns the first family with no files, checked in the order
// spreadsheet, data, readme. ok is false when every family is present.
func (f *Files) Missing() (family Family, ok bool) {
	switch {
	case len(f.Index) == 0:
		return FamilyIndex, true
	case len(f.Data) == 0:
		return FamilyData, true
	case len(f.Readme) == 0:
		return FamilyReadme, true
	}
	return "", false
}

// Count returns the number of files found for a family.
func (f *Files) Count(family Family) int {
	switch family {
	case FamilyIndex:
		return len(f.Index)
	case FamilyData:
		return len(f.Data)
	case FamilyReadme:
		return len(f.Readme)
	}
	return 0
}

// Discover lists the top level of fs and sorts its files into the three families.
// Subdirectories and hidden files are not scanned. A name that satisfies two
// patterns is listed in both families; the count check catches it.
func Discover(fs billy.Filesystem, naming Naming) (*Files, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("listing submission folder: %w", err)
	}

	files := &Files{Root: fs.Root()}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if isDataTable(name, naming) {
			files.Data = append(files.Data, name)
		}
		if isReadme(name, naming) {
			files.Readme = append(files.Readme, name)
		}
		if isIndex(name, naming) {
			files.Index = append(files.Index, name)
		}
	}

	sort.Strings(files.Data)
	sort.Strings(files.Readme)
	sort.Strings(files.Index)
	return files, nil
}

func isDataTable(name string, n Naming) bool {
	return strings.Contains(name, n.DataMarker) && strings.HasSuffix(name, n.DataExt)
}

func isReadme(name string, n Naming) bool {
	return strings.Contains(name, n.ReadmeMarker) && strings.HasSuffix(name, n.ReadmeExt)
}

func isIndex(name string, n Naming) bool {
	// "~$name.xlsx" is the lock file Excel leaves next to an open workbook.
	return strings.HasSuffix(name, n.IndexExt) && !strings.HasPrefix(name, "~$")
}
