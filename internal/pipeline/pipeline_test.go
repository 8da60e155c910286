package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mlab-site/labpubs/internal/listing"
	"github.com/mlab-site/labpubs/internal/normalize"
	"github.com/mlab-site/labpubs/internal/publication"
	"github.com/mlab-site/labpubs/internal/researchmap"
	"github.com/mlab-site/labpubs/internal/snapshot"
)

type fakeSource struct {
	records []researchmap.RawRecord
	err     error
}

func (f fakeSource) PublishedPapers(ctx context.Context, authorID string) ([]researchmap.RawRecord, error) {
	return f.records, f.err
}

func records() []researchmap.RawRecord {
	return []researchmap.RawRecord{
		{ID: "old", Type: researchmap.TypeSymposium, PublicationDate: "2021-03", Languages: []string{"jpn"}},
		{ID: "new", Type: researchmap.TypeScientificJournal, PublicationDate: "2025-08-15"},
	}
}

func newPipeline(src fakeSource) *Pipeline {
	return New(src, normalize.New(normalize.Config{}))
}

func TestRun_WritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "publications.json")

	rep, err := newPipeline(fakeSource{records: records()}).Run(context.Background(), Options{AuthorID: "a", SnapshotPath: path})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Status != StatusWritten || rep.Fetched != 2 || rep.Written != 2 {
		t.Errorf("report = %+v", rep)
	}

	got, err := snapshot.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, rep.Publications) {
		t.Errorf("snapshot differs from normalized publications:\n%+v\n%+v", got, rep.Publications)
	}
	if got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("snapshot should be sorted newest first, got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestRun_FetchFailureKeepsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.json")
	if err := snapshot.Write(path, []publication.Publication{{ID: "kept", Category: publication.International, SubCategory: publication.Other}}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	src := fakeSource{err: &researchmap.APIError{StatusCode: 500, AuthorID: "a"}}
	rep, err := newPipeline(src).Run(context.Background(), Options{AuthorID: "a", SnapshotPath: path})
	if err != nil {
		t.Fatalf("Run() should not fail on fetch errors, got %v", err)
	}
	if rep.Status != StatusSkipped || rep.FetchError == "" {
		t.Errorf("report = %+v", rep)
	}

	got, err := snapshot.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "kept" {
		t.Errorf("previous snapshot should be untouched, got %+v", got)
	}
}

func TestRun_EmptyFetchWritesEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.json")

	rep, err := newPipeline(fakeSource{records: []researchmap.RawRecord{}}).Run(context.Background(), Options{AuthorID: "a", SnapshotPath: path})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Status != StatusWritten || rep.Written != 0 {
		t.Errorf("report = %+v", rep)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("snapshot = %q, want []", data)
	}

	pubs, err := snapshot.NewReader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if v := listing.Build(pubs, ""); v.State != listing.StateNoData {
		t.Errorf("view state = %s, want %s", v.State, listing.StateNoData)
	}
}

func TestRun_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.json")

	rep, err := newPipeline(fakeSource{records: records()}).Run(context.Background(), Options{AuthorID: "a", SnapshotPath: path, DryRun: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Status != StatusDryRun || len(rep.Publications) != 2 {
		t.Errorf("report = %+v", rep)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("dry run should not write a snapshot")
	}
}

func TestRun_DropsRecordsWithoutUsableID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publications.json")
	recs := []researchmap.RawRecord{
		{ID: "x", PublicationDate: "2024", Title: researchmap.LangText{En: "first"}},
		{ID: "", PublicationDate: "2025", Title: researchmap.LangText{En: "no id"}},
		{ID: "x", PublicationDate: "2023", Title: researchmap.LangText{En: "repeat"}},
		{ID: "y", PublicationDate: "2022"},
	}

	rep, err := newPipeline(fakeSource{records: recs}).Run(context.Background(), Options{AuthorID: "a", SnapshotPath: path})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Status != StatusWritten || rep.Fetched != 4 || rep.Written != 2 || rep.Dropped != 2 {
		t.Errorf("report = %+v", rep)
	}

	got, err := snapshot.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "x" || got[0].Title != "first" || got[1].ID != "y" {
		t.Errorf("snapshot = %+v", got)
	}
	if err := publication.Validate(got); err != nil {
		t.Errorf("written snapshot should validate: %v", err)
	}
}

func TestRun_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "publications.json")
	if err := os.MkdirAll(filepath.Join(target, "occupied"), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	_, err := newPipeline(fakeSource{records: records()}).Run(context.Background(), Options{AuthorID: "a", SnapshotPath: target})
	if err == nil {
		t.Fatal("Run() should return write failures")
	}
}
