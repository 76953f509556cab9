package store

import (
	"errors"
	"testing"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// stubDocs replays a scripted sequence of iterator results.
type stubDocs struct {
	errs []error
}

func (d *stubDocs) Next() (*firestore.DocumentSnapshot, error) {
	if len(d.errs) == 0 {
		return nil, iterator.Done
	}
	err := d.errs[0]
	d.errs = d.errs[1:]
	return nil, err
}

func TestDecodeOrdersEmptyResult(t *testing.T) {
	s := New(nil)
	orders, err := s.decodeOrders(&stubDocs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty result, got %d orders", len(orders))
	}
}

func TestDecodeOrdersSurfacesIterationFailure(t *testing.T) {
	boom := errors.New("permission denied")
	s := New(nil)

	// A broken read must come back as an error, not as a silently
	// truncated list.
	_, err := s.decodeOrders(&stubDocs{errs: []error{boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected iteration error to surface, got %v", err)
	}
}
