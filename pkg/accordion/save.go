package accordion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/form"
	"github.com/goliatone/go-unilabel/pkg/storage"
)

// SaveContent stores a settings submission for the label. In one
// transaction it creates the accordion row if needed, updates show-intro and
// replaces every segment with the submitted slots. Any failure leaves the
// stored accordion untouched. Submissions over MaxSegments slots are
// rejected before the store is touched. It reports whether the accordion row
// exists.
func (c *ContentType) SaveContent(ctx context.Context, data form.Values, label contenttype.Label) (bool, error) {
	settings := SettingsFromValues(data)
	if err := settings.Validate(); err != nil {
		return false, fmt.Errorf("accordion: save label %d: %w", label.ID, err)
	}

	var (
		saved    storage.Accordion
		segments []storage.Segment
	)
	err := c.store.WithTx(ctx, func(tx storage.Store) error {
		record, err := tx.GetAccordion(ctx, label.ID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			record = storage.Accordion{UnilabelID: label.ID}
			id, err := tx.InsertAccordion(ctx, record)
			if err != nil {
				return fmt.Errorf("insert accordion: %w", err)
			}
			record.ID = id
		case err != nil:
			return fmt.Errorf("get accordion: %w", err)
		}

		record.ShowIntro = settings.ShowIntro
		if err := tx.UpdateAccordion(ctx, record); err != nil {
			return fmt.Errorf("update accordion: %w", err)
		}
		if err := tx.DeleteSegments(ctx, record.ID); err != nil {
			return fmt.Errorf("delete segments: %w", err)
		}

		segments = make([]storage.Segment, 0, len(settings.Segments))
		for _, input := range settings.Segments {
			segment := storage.Segment{
				AccordionID: record.ID,
				Heading:     input.Heading.Text,
				Content:     input.Content.Text,
			}
			id, err := tx.InsertSegment(ctx, segment)
			if err != nil {
				return fmt.Errorf("insert segment %d: %w", input.Index, err)
			}
			segment.ID = id
			segments = append(segments, segment)
		}
		saved = record
		return nil
	})
	if err != nil {
		c.labelLogger(label.ID).Warn("accordion save rolled back", zap.Error(err))
		return false, fmt.Errorf("accordion: save label %d: %w", label.ID, err)
	}

	c.remember(loadedState{labelID: label.ID, record: &saved, segments: segments})
	c.labelLogger(label.ID).Info("accordion saved",
		zap.Int64("accordion_id", saved.ID),
		zap.Int("segments", len(segments)),
	)
	return saved.ID != 0, nil
}
