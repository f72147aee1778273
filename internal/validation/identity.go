package validation

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/openmotor-dataset/openmotor/internal/submission"
)

// Dataset is one matched dataset: an index row plus the data table and
// readme whose names carry the same identifier.
type Dataset struct {
	ID         string
	DataFile   string
	ReadmeFile string
	Declared   submission.IndexEntry
}

// Pairing is the positional pairing of the three sorted identifier lists,
// before the identifiers have been compared.
type Pairing struct {
	Position   int
	Entry      submission.IndexEntry
	DataFile   string
	DataID     string
	ReadmeFile string
	ReadmeID   string
}

// Identifier derives a dataset identifier from a file name: the part of the
// basename before the first '.', with the first len(prefix) bytes removed.
// Only the prefix length matters: with prefix "data_", "data_name.csv"
// yields "name" while "dataX_name.csv" yields "_name".
func Identifier(name, prefix string) string {
	stem := path.Base(name)
	if i := strings.IndexByte(stem, '.'); i >= 0 {
		stem = stem[:i]
	}
	if len(stem) <= len(prefix) {
		return ""
	}
	return stem[len(prefix):]
}

type namedFile struct {
	id   string
	name string
}

func sortedByIdentifier(names []string, prefix string) []namedFile {
	out := make([]namedFile, len(names))
	for i, n := range names {
		out[i] = namedFile{id: Identifier(n, prefix), name: n}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Match pairs index entries, data tables and readmes by position after
// sorting each family by identifier independently. The index entries keep
// their declared statistics while being sorted. Match returns nil unless all
// three lists have the same length; CheckCounts reports that case.
func Match(files *submission.Files, entries []submission.IndexEntry, naming submission.Naming) []Pairing {
	if len(entries) != len(files.Data) || len(entries) != len(files.Readme) {
		return nil
	}

	sortedEntries := make([]submission.IndexEntry, len(entries))
	copy(sortedEntries, entries)
	sort.SliceStable(sortedEntries, func(i, j int) bool { return sortedEntries[i].Name < sortedEntries[j].Name })

	data := sortedByIdentifier(files.Data, naming.DataPrefix)
	readmes := sortedByIdentifier(files.Readme, naming.ReadmePrefix)

	pairings := make([]Pairing, len(sortedEntries))
	for i := range sortedEntries {
		pairings[i] = Pairing{
			Position:   i,
			Entry:      sortedEntries[i],
			DataFile:   data[i].name,
			DataID:     data[i].id,
			ReadmeFile: readmes[i].name,
			ReadmeID:   readmes[i].id,
		}
	}
	return pairings
}

// CheckCounts requires the index, data and readme families to have the same size.
func CheckCounts(files *submission.Files, index *submission.Index) *Failure {
	nIndex, nData, nReadme := len(index.Entries), len(files.Data), len(files.Readme)
	if nIndex == nData && nIndex == nReadme {
		return nil
	}
	return &Failure{
		Kind:  KindCountMismatch,
		Stage: StageCardinality,
		Detail: fmt.Sprintf(
			"Number of files doesn't match: %d entries in spreadsheet, %d data files, %d readme files",
			nIndex, nData, nReadme),
		Counts: map[string]int{
			string(submission.FamilyIndex):  nIndex,
			string(submission.FamilyData):   nData,
			string(submission.FamilyReadme): nReadme,
		},
	}
}

// CheckIdentities requires the three identifiers at every position to be equal
// and the index not to declare the same identifier twice. The first
// offending position is reported.
func CheckIdentities(pairings []Pairing) ([]Dataset, *Failure) {
	datasets := make([]Dataset, 0, len(pairings))
	for _, p := range pairings {
		if p.Entry.Name != p.DataID || p.Entry.Name != p.ReadmeID {
			return nil, &Failure{
				Kind:     KindIdentityMismatch,
				Stage:    StageIdentity,
				Dataset:  p.Entry.Name,
				Position: p.Position,
				Detail: fmt.Sprintf(
					"Name doesn't match for dataset %s (position %d): spreadsheet %q, data file %q, readme file %q",
					p.Entry.Name, p.Position+1, p.Entry.Name, p.DataID, p.ReadmeID),
				Expected: p.Entry.Name,
				Actual:   p.DataID + "," + p.ReadmeID,
			}
		}
		if i := p.Position; i > 0 && pairings[i-1].Entry.Name == p.Entry.Name {
			return nil, &Failure{
				Kind:     KindIdentityMismatch,
				Stage:    StageIdentity,
				Dataset:  p.Entry.Name,
				Position: p.Position,
				Detail: fmt.Sprintf("duplicate identifier %s in spreadsheet rows %s",
					p.Entry.Name, joinRows(pairings[i-1].Entry.Row, p.Entry.Row)),
			}
		}
		datasets = append(datasets, Dataset{
			ID:         p.Entry.Name,
			DataFile:   p.DataFile,
			ReadmeFile: p.ReadmeFile,
			Declared:   p.Entry,
		})
	}
	return datasets, nil
}

func joinRows(rows ...int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, " and ")
}
