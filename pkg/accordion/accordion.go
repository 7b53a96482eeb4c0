// Package accordion implements the accordion unilabel content type: a label
// body made of collapsible heading/content segments.
//
// The content type keeps the accordion row and segments of one label loaded
// per instance. Loading another label replaces that state; saving refreshes
// it and deleting forgets it.
package accordion

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-unilabel/internal/i18n"
	"github.com/goliatone/go-unilabel/pkg/config"
	"github.com/goliatone/go-unilabel/pkg/contenttype"
	"github.com/goliatone/go-unilabel/pkg/render"
	"github.com/goliatone/go-unilabel/pkg/storage"
)

// Namespace is the component name of the accordion content type.
const Namespace = "unilabeltype_accordion"

// TemplateName is the view template rendered by Content.
const TemplateName = Namespace + "/accordion"

// Settings form field names.
const (
	FieldShowIntro     = Namespace + "_showintro"
	FieldHeader        = Namespace + "_hdr"
	FieldSegmentHeader = Namespace + "_segment-header"
	FieldHeading       = Namespace + "_heading"
	FieldContent       = Namespace + "_content"
	FieldCount         = Namespace + "_chosen_segments_count"
	FieldAddMore       = Namespace + "_add_more_segments_btn"
)

var errStoreRequired = errors.New("accordion: store is required")

// Option configures a ContentType.
type Option func(*ContentType)

// WithStore sets the accordion store. Required.
func WithStore(store storage.Store) Option {
	return func(c *ContentType) {
		c.store = store
	}
}

// WithConfig reads the plugin settings from provider at construction.
func WithConfig(provider config.Provider) Option {
	return func(c *ContentType) {
		c.provider = provider
	}
}

// WithTranslator overrides the embedded message catalog.
func WithTranslator(t render.Translator) Option {
	return func(c *ContentType) {
		c.translator = t
	}
}

// WithLocale selects the locale of rendered strings.
func WithLocale(locale string) Option {
	return func(c *ContentType) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			c.locale = trimmed
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *ContentType) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSanitizer overrides the markup sanitiser applied to view output.
func WithSanitizer(s Sanitizer) Option {
	return func(c *ContentType) {
		if s != nil {
			c.sanitizer = s
		}
	}
}

// ContentType is the accordion content type.
type ContentType struct {
	store      storage.Store
	provider   config.Provider
	plugin     config.PluginConfig
	translator render.Translator
	locale     string
	logger     *zap.Logger
	sanitizer  Sanitizer

	mu     sync.Mutex
	loaded *loadedState
}

var _ contenttype.ContentType = (*ContentType)(nil)

// New constructs the accordion content type.
func New(options ...Option) (*ContentType, error) {
	c := &ContentType{
		locale: i18n.BaseLocale,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.store == nil {
		return nil, errStoreRequired
	}
	if c.provider != nil {
		c.plugin = c.provider.Plugin(Namespace)
	}
	if c.translator == nil {
		bundle, err := i18n.Load(LocalesFS())
		if err != nil {
			return nil, fmt.Errorf("accordion: load messages: %w", err)
		}
		c.translator = bundle
	}
	if c.sanitizer == nil {
		c.sanitizer = NewSanitizer()
	}
	c.logger = c.logger.With(zap.String("content_type", Namespace))
	return c, nil
}

// Namespace implements contenttype.ContentType.
func (c *ContentType) Namespace() string {
	return Namespace
}

// IsActive reports the plugin "active" setting.
func (c *ContentType) IsActive() bool {
	return c.plugin.Active
}

// Reset forgets the loaded label so the next call reads the store again.
func (c *ContentType) Reset() {
	c.mu.Lock()
	c.loaded = nil
	c.mu.Unlock()
}

// RepeatCount returns the number of segment slots the settings form shows
// for n stored segments.
func RepeatCount(n int) int {
	count := (n % DefaultRepeatCount) * DefaultRepeatCount
	if count < DefaultRepeatCount {
		return DefaultRepeatCount
	}
	return count
}

// DefaultRepeatCount is the minimum slot count and the "add more" step.
const DefaultRepeatCount = 3

// MaxSegments is the most segment slots a form offers and a save accepts.
const MaxSegments = 100

func (c *ContentType) str(identifier string) string {
	return render.String(c.translator, c.locale, Namespace, identifier)
}

func (c *ContentType) labelLogger(labelID int64) *zap.Logger {
	return c.logger.With(zap.Int64("unilabel_id", labelID))
}
