package accordion

import (
	"context"
	"fmt"

	"github.com/goliatone/go-unilabel/pkg/storage"
)

// DeleteContent removes the accordion of a label and its segments. Labels
// without an accordion are left as they are.
func (c *ContentType) DeleteContent(ctx context.Context, labelID int64) error {
	state, err := c.load(ctx, labelID)
	if err != nil {
		return err
	}

	err = c.store.WithTx(ctx, func(tx storage.Store) error {
		if state.record != nil {
			if err := tx.DeleteSegments(ctx, state.record.ID); err != nil {
				return fmt.Errorf("delete segments: %w", err)
			}
		}
		if err := tx.DeleteAccordion(ctx, labelID); err != nil {
			return fmt.Errorf("delete accordion: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("accordion: delete label %d: %w", labelID, err)
	}

	c.forget(labelID)
	if state.record != nil {
		c.labelLogger(labelID).Info("accordion deleted")
	}
	return nil
}
