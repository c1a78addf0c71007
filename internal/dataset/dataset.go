// Package dataset loads the external JSON fixtures spec.md §6 defines
// the format of: the movie corpus and the labelled evaluation cases (the
// stop-word list is read by textpipeline.LoadStopWords). Acquiring these
// files is out of scope; this package only parses them.
package dataset

import (
	"encoding/json"
	"os"

	"github.com/movieidx/movieidx/internal/corpus"
	"github.com/movieidx/movieidx/internal/errs"
	"github.com/movieidx/movieidx/internal/evaluate"
)

type movieRecord struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type moviesFile struct {
	Movies []movieRecord `json:"movies"`
}

// LoadMovies parses a movies.json file of the form
// {"movies": [{"id":u64,"title":string,"description":string}, ...]}.
func LoadMovies(path string) ([]corpus.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ExternalFailure, "read movies file "+path, err)
	}
	var parsed moviesFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, errs.Wrap(errs.ExternalFailure, "parse movies file "+path, err)
	}

	documents := make([]corpus.Document, len(parsed.Movies))
	for i, m := range parsed.Movies {
		documents[i] = corpus.Document{ID: m.ID, Title: m.Title, Description: m.Description}
	}
	return documents, nil
}

type testCaseRecord struct {
	Query        string   `json:"query"`
	RelevantDocs []string `json:"relevant_docs"`
}

type goldenDatasetFile struct {
	TestCases []testCaseRecord `json:"test_cases"`
}

// LoadGoldenDataset parses a golden_dataset.json file of the form
// {"test_cases": [{"query":string,"relevant_docs":[title,...]}, ...]}.
func LoadGoldenDataset(path string) ([]evaluate.Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ExternalFailure, "read golden dataset "+path, err)
	}
	var parsed goldenDatasetFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, errs.Wrap(errs.ExternalFailure, "parse golden dataset "+path, err)
	}

	cases := make([]evaluate.Case, len(parsed.TestCases))
	for i, c := range parsed.TestCases {
		cases[i] = evaluate.Case{Query: c.Query, RelevantDocs: c.RelevantDocs}
	}
	return cases, nil
}
