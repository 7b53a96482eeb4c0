// Package storage defines the persistence contract for accordion content. The
// layout is the two-table relational schema owned by the content type: one
// accordion row per label and its ordered segment rows.
package storage

import (
	"context"
	"errors"
)

const (
	// AccordionTable stores one accordion row per label.
	AccordionTable = "unilabeltype_accordion"
	// SegmentTable stores the heading/content rows of an accordion.
	SegmentTable = "unilabeltype_accordion_seg"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Accordion is the accordion row owned by one label.
type Accordion struct {
	ID         int64 `json:"id"`
	UnilabelID int64 `json:"unilabelid"`
	ShowIntro  bool  `json:"showintro"`
}

// Segment is one heading/content pair. Segments are replaced wholesale on
// every save, so IDs are not stable across saves.
type Segment struct {
	ID          int64  `json:"id"`
	AccordionID int64  `json:"accordionid"`
	Heading     string `json:"heading"`
	Content     string `json:"content"`
}

// Renderable reports whether both heading and content are set. Segments with
// either side blank are kept in storage but never shown.
func (s Segment) Renderable() bool {
	return s.Heading != "" && s.Content != ""
}

// Store persists accordion and segment rows.
type Store interface {
	// GetAccordion returns the accordion for a label or ErrNotFound.
	GetAccordion(ctx context.Context, unilabelID int64) (Accordion, error)
	// ListSegments returns the accordion's segments ordered by id.
	ListSegments(ctx context.Context, accordionID int64) ([]Segment, error)
	InsertAccordion(ctx context.Context, record Accordion) (int64, error)
	UpdateAccordion(ctx context.Context, record Accordion) error
	// DeleteAccordion removes the accordion of a label. Missing rows are not
	// an error.
	DeleteAccordion(ctx context.Context, unilabelID int64) error
	InsertSegment(ctx context.Context, segment Segment) (int64, error)
	// DeleteSegments removes every segment of an accordion.
	DeleteSegments(ctx context.Context, accordionID int64) error
	// WithTx runs fn against a transactional view of the store. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
