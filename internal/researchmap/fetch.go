package researchmap

import (
	"context"
	"log/slog"
)

// Lister is the part of Client used by Fetch.
type Lister interface {
	PublishedPapers(ctx context.Context, authorID string) ([]RawRecord, error)
}

// Result is the outcome of a fail-soft fetch.
type Result struct {
	Records []RawRecord
	Err     error // non-nil when the fetch failed; Records is then empty
}

// Failed reports whether the fetch failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Fetch retrieves the author's records and never returns an error to the
// caller: failures are logged and produce an empty record set.
func Fetch(ctx context.Context, l Lister, authorID string) Result {
	slog.Info("fetching publications", "author", authorID)
	records, err := l.PublishedPapers(ctx, authorID)
	if err != nil {
		slog.Error("fetching publications failed", "author", authorID, "error", err)
		return Result{Records: []RawRecord{}, Err: err}
	}
	slog.Info("fetched publications", "author", authorID, "count", len(records))
	return Result{Records: records}
}
