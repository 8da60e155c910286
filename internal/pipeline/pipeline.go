// Package pipeline runs the batch refresh: fetch the author's records,
// normalize and sort them, and replace the snapshot.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mlab-site/labpubs/internal/normalize"
	"github.com/mlab-site/labpubs/internal/publication"
	"github.com/mlab-site/labpubs/internal/researchmap"
	"github.com/mlab-site/labpubs/internal/snapshot"
)

// Status is the outcome of a run.
type Status string

const (
	// StatusWritten means the snapshot was replaced.
	StatusWritten Status = "written"
	// StatusSkipped means the fetch failed and the previous snapshot was kept.
	StatusSkipped Status = "skipped"
	// StatusDryRun means nothing was written on request.
	StatusDryRun Status = "dry_run"
)

// Options configures a run.
type Options struct {
	AuthorID     string
	SnapshotPath string
	DryRun       bool
}

// Report summarizes a run.
type Report struct {
	Status       Status `json:"status"`
	AuthorID     string `json:"author_id"`
	Fetched      int    `json:"fetched"`
	Written      int    `json:"written"`
	Dropped      int    `json:"dropped,omitempty"`
	SnapshotPath string `json:"snapshot"`
	FetchError   string `json:"fetch_error,omitempty"`

	Publications []publication.Publication `json:"-"`
}

// Pipeline wires a record source to a normalizer.
type Pipeline struct {
	source     researchmap.Lister
	normalizer *normalize.Normalizer
}

// New creates a Pipeline.
func New(source researchmap.Lister, n *normalize.Normalizer) *Pipeline {
	return &Pipeline{source: source, normalizer: n}
}

// Run executes one refresh. A failed fetch is not an error: it is logged, the
// previous snapshot is left in place and the report says StatusSkipped.
// Records without an id, and repeated ids, are dropped with a warning. An
// invalid collection or a failed write is returned as an error.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Report, error) {
	rep := Report{AuthorID: opts.AuthorID, SnapshotPath: opts.SnapshotPath}

	res := researchmap.Fetch(ctx, p.source, opts.AuthorID)
	if res.Failed() {
		rep.Status = StatusSkipped
		rep.FetchError = res.Err.Error()
		rep.Publications = []publication.Publication{}
		slog.Warn("keeping previous snapshot", "snapshot", opts.SnapshotPath)
		return rep, nil
	}
	rep.Fetched = len(res.Records)

	pubs, dropped := dropUnidentified(p.normalizer.NormalizeAll(res.Records))
	rep.Dropped = dropped
	rep.Publications = pubs
	if err := publication.Validate(pubs); err != nil {
		return rep, fmt.Errorf("validating publications: %w", err)
	}

	if opts.DryRun {
		rep.Status = StatusDryRun
		return rep, nil
	}

	if err := snapshot.Write(opts.SnapshotPath, pubs); err != nil {
		return rep, fmt.Errorf("writing snapshot: %w", err)
	}
	rep.Status = StatusWritten
	rep.Written = len(pubs)
	slog.Info("saved publications", "count", len(pubs), "snapshot", opts.SnapshotPath)
	return rep, nil
}

// dropUnidentified removes records without an id and repeats of an id
// already seen, keeping the first occurrence. Each dropped record is logged.
func dropUnidentified(pubs []publication.Publication) ([]publication.Publication, int) {
	kept := pubs[:0:0]
	seen := make(map[string]bool, len(pubs))
	for i, pub := range pubs {
		switch {
		case pub.ID == "":
			slog.Warn("dropping record without id", "index", i, "title", pub.Title)
		case seen[pub.ID]:
			slog.Warn("dropping duplicate record", "id", pub.ID, "title", pub.Title)
		default:
			seen[pub.ID] = true
			kept = append(kept, pub)
		}
	}
	return kept, len(pubs) - len(kept)
}
