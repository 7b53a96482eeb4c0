package accordion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-unilabel/pkg/storage"
)

// loadedState is the accordion of one label as last read or written.
type loadedState struct {
	labelID  int64
	record   *storage.Accordion
	segments []storage.Segment
}

func (s *loadedState) snapshot() loadedState {
	out := loadedState{labelID: s.labelID}
	if s.record != nil {
		record := *s.record
		out.record = &record
	}
	out.segments = append([]storage.Segment(nil), s.segments...)
	return out
}

// Load reads the accordion of a label and its segments in id order. The
// result is kept for the instance: repeated calls for the same label do not
// touch the store. A label without an accordion yields ok == false and no
// error.
func (c *ContentType) Load(ctx context.Context, labelID int64) (storage.Accordion, bool, error) {
	state, err := c.load(ctx, labelID)
	if err != nil {
		return storage.Accordion{}, false, err
	}
	if state.record == nil {
		return storage.Accordion{}, false, nil
	}
	return *state.record, true, nil
}

// Segments returns the loaded segments of a label in id order, including
// segments that are never rendered.
func (c *ContentType) Segments(ctx context.Context, labelID int64) ([]storage.Segment, error) {
	state, err := c.load(ctx, labelID)
	if err != nil {
		return nil, err
	}
	return state.segments, nil
}

func (c *ContentType) load(ctx context.Context, labelID int64) (loadedState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded != nil && c.loaded.labelID == labelID {
		return c.loaded.snapshot(), nil
	}

	record, err := c.store.GetAccordion(ctx, labelID)
	if errors.Is(err, storage.ErrNotFound) {
		c.loaded = &loadedState{labelID: labelID}
		c.labelLogger(labelID).Debug("no accordion stored")
		return c.loaded.snapshot(), nil
	}
	if err != nil {
		return loadedState{}, fmt.Errorf("accordion: load label %d: %w", labelID, err)
	}

	segments, err := c.store.ListSegments(ctx, record.ID)
	if err != nil {
		return loadedState{}, fmt.Errorf("accordion: load segments of label %d: %w", labelID, err)
	}

	c.loaded = &loadedState{labelID: labelID, record: &record, segments: segments}
	c.labelLogger(labelID).Debug("accordion loaded",
		zap.Int64("accordion_id", record.ID),
		zap.Int("segments", len(segments)),
	)
	return c.loaded.snapshot(), nil
}

func (c *ContentType) remember(state loadedState) {
	c.mu.Lock()
	c.loaded = &state
	c.mu.Unlock()
}

func (c *ContentType) forget(labelID int64) {
	c.mu.Lock()
	if c.loaded != nil && c.loaded.labelID == labelID {
		c.loaded = nil
	}
	c.mu.Unlock()
}
