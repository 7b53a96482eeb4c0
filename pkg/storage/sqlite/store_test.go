package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-unilabel/pkg/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestGetAccordionNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetAccordion(context.Background(), 42)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get accordion error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestInsertGetUpdateAccordion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)

	id, err := store.InsertAccordion(ctx, storage.Accordion{UnilabelID: 7})
	if err != nil {
		t.Fatalf("insert accordion: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero accordion id")
	}

	if err := store.UpdateAccordion(ctx, storage.Accordion{ID: id, UnilabelID: 7, ShowIntro: true}); err != nil {
		t.Fatalf("update accordion: %v", err)
	}

	got, err := store.GetAccordion(ctx, 7)
	if err != nil {
		t.Fatalf("get accordion: %v", err)
	}
	want := storage.Accordion{ID: id, UnilabelID: 7, ShowIntro: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("accordion mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertAccordionRejectsDuplicateLabel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)
	if _, err := store.InsertAccordion(ctx, storage.Accordion{UnilabelID: 3}); err != nil {
		t.Fatalf("insert accordion: %v", err)
	}
	_, err := store.InsertAccordion(ctx, storage.Accordion{UnilabelID: 3})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate insert error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestUpdateAccordionMissingRow(t *testing.T) {
	t.Parallel()

	err := openTempStore(t).UpdateAccordion(context.Background(), storage.Accordion{ID: 99, UnilabelID: 1})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestSegmentsListInIDOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)
	accordionID, err := store.InsertAccordion(ctx, storage.Accordion{UnilabelID: 1})
	if err != nil {
		t.Fatalf("insert accordion: %v", err)
	}

	inputs := []storage.Segment{
		{AccordionID: accordionID, Heading: "one", Content: "first"},
		{AccordionID: accordionID, Heading: "", Content: ""},
		{AccordionID: accordionID, Heading: "three", Content: "third"},
	}
	for i := range inputs {
		id, err := store.InsertSegment(ctx, inputs[i])
		if err != nil {
			t.Fatalf("insert segment %d: %v", i, err)
		}
		inputs[i].ID = id
	}

	got, err := store.ListSegments(ctx, accordionID)
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if diff := cmp.Diff(inputs, got); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteAccordionCascadesSegments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)
	accordionID, err := store.InsertAccordion(ctx, storage.Accordion{UnilabelID: 5})
	if err != nil {
		t.Fatalf("insert accordion: %v", err)
	}
	if _, err := store.InsertSegment(ctx, storage.Segment{AccordionID: accordionID, Heading: "h", Content: "c"}); err != nil {
		t.Fatalf("insert segment: %v", err)
	}

	if err := store.DeleteAccordion(ctx, 5); err != nil {
		t.Fatalf("delete accordion: %v", err)
	}
	segments, err := store.ListSegments(ctx, accordionID)
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if len(segments) != 0 {
		t.Fatalf("segments after delete = %d, want 0", len(segments))
	}
	if err := store.DeleteAccordion(ctx, 5); err != nil {
		t.Fatalf("delete missing accordion: %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)
	accordionID, err := store.InsertAccordion(ctx, storage.Accordion{UnilabelID: 9})
	if err != nil {
		t.Fatalf("insert accordion: %v", err)
	}
	if _, err := store.InsertSegment(ctx, storage.Segment{AccordionID: accordionID, Heading: "keep", Content: "me"}); err != nil {
		t.Fatalf("insert segment: %v", err)
	}

	boom := errors.New("boom")
	err = store.WithTx(ctx, func(tx storage.Store) error {
		if err := tx.DeleteSegments(ctx, accordionID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("with tx error = %v, want %v", err, boom)
	}

	segments, err := store.ListSegments(ctx, accordionID)
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if len(segments) != 1 || segments[0].Heading != "keep" {
		t.Fatalf("segments after rollback = %+v, want the original segment", segments)
	}
}

func TestWithTxCommits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)

	var accordionID int64
	err := store.WithTx(ctx, func(tx storage.Store) error {
		id, err := tx.InsertAccordion(ctx, storage.Accordion{UnilabelID: 11})
		if err != nil {
			return err
		}
		accordionID = id
		_, err = tx.InsertSegment(ctx, storage.Segment{AccordionID: id, Heading: "h", Content: "c"})
		return err
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}

	segments, err := store.ListSegments(ctx, accordionID)
	if err != nil {
		t.Fatalf("list segments: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("segments after commit = %d, want 1", len(segments))
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "accordion.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
