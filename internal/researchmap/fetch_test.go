package researchmap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLister struct {
	records []RawRecord
	err     error
	calls   int
}

func (s *stubLister) PublishedPapers(ctx context.Context, authorID string) ([]RawRecord, error) {
	s.calls++
	return s.records, s.err
}

func TestFetch_Success(t *testing.T) {
	l := &stubLister{records: []RawRecord{{ID: "1"}, {ID: "2"}}}
	res := Fetch(context.Background(), l, "a")

	assert.False(t, res.Failed())
	assert.Len(t, res.Records, 2)
	assert.Equal(t, 1, l.calls)
}

func TestFetch_FailureDegradesToEmpty(t *testing.T) {
	l := &stubLister{err: &APIError{StatusCode: 503, AuthorID: "a"}}
	res := Fetch(context.Background(), l, "a")

	assert.True(t, res.Failed())
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
	assert.Equal(t, 1, l.calls, "no retry")
}

func TestFetch_EmptyIsNotFailure(t *testing.T) {
	res := Fetch(context.Background(), &stubLister{records: []RawRecord{}}, "a")
	assert.False(t, res.Failed())
	assert.Empty(t, res.Records)
	assert.False(t, errors.Is(res.Err, ErrNetworkError))
}
