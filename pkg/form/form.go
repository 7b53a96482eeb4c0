package form

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	errElementNameMissing = errors.New("form: element name is required")
	errRepeatEmpty        = errors.New("form: repeat group requires elements")
	errCountFieldMissing  = errors.New("form: repeat group requires a count field")
)

// ErrTooManySlots is reported by SubmissionErr when a submission asks a
// repeat group for more than its MaxCount slots.
var ErrTooManySlots = errors.New("form: too many repeat slots")

// DefaultMaxCount is the slot limit of repeat groups without a MaxCount.
const DefaultMaxCount = 100

// Submission exposes raw submitted parameters to the builder so repeat groups
// can honour a previously chosen count and a pressed "add more" button.
type Submission interface {
	Lookup(name string) (string, bool)
}

// URLSubmission adapts url.Values (for example r.PostForm) to Submission.
type URLSubmission url.Values

// Lookup returns the first value submitted for name.
func (u URLSubmission) Lookup(name string) (string, bool) {
	values, ok := url.Values(u)[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Option configures a Form.
type Option func(*Form)

// WithSubmission attaches submitted parameters to the form.
func WithSubmission(sub Submission) Option {
	return func(f *Form) {
		f.submission = sub
	}
}

// WithAction sets the form action URL.
func WithAction(action string) Option {
	return func(f *Form) {
		f.Action = strings.TrimSpace(action)
	}
}

// Form is an ordered set of elements and repeat groups.
type Form struct {
	ID     string `json:"id"`
	Action string `json:"action,omitempty"`
	Items  []Item `json:"items"`

	submission Submission
	rejected   []error
}

// New constructs an empty form.
func New(id string, options ...Option) *Form {
	f := &Form{ID: strings.TrimSpace(id)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// AddElement appends a single element.
func (f *Form) AddElement(el Element) error {
	if strings.TrimSpace(el.Name) == "" {
		return errElementNameMissing
	}
	if _, exists := f.lookup(el.Name); exists {
		return fmt.Errorf("form: element %q already defined", el.Name)
	}
	el.Attributes = cloneAttributes(el.Attributes)
	f.Items = append(f.Items, Item{Element: &el})
	return nil
}

// AddHelpButton attaches a help string to an existing element.
func (f *Form) AddHelpButton(name, identifier, component string) error {
	el, ok := f.lookup(name)
	if !ok {
		return fmt.Errorf("form: element %q not found", name)
	}
	el.Help = &HelpButton{Identifier: identifier, Component: component}
	return nil
}

// Repeat appends a repeat group with an initial slot count. When the form
// carries a submission, a submitted count replaces the initial count and a
// pressed "add more" button adds AddMoreStep slots, up to MaxCount. A
// submitted count above MaxCount is ignored and recorded for SubmissionErr.
// The hidden count field is added to the form. It returns the effective count.
func (f *Form) Repeat(group Repeat, options map[string]ElementOptions) (int, error) {
	if len(group.Elements) == 0 {
		return 0, errRepeatEmpty
	}
	if strings.TrimSpace(group.CountField) == "" {
		return 0, errCountFieldMissing
	}
	if group.AddMoreStep <= 0 {
		group.AddMoreStep = 1
	}

	elements := make([]Element, len(group.Elements))
	for i, el := range group.Elements {
		if strings.TrimSpace(el.Name) == "" {
			return 0, errElementNameMissing
		}
		el.Attributes = cloneAttributes(el.Attributes)
		if opt, ok := options[el.Name]; ok {
			if opt.ParamType != "" {
				el.ParamType = opt.ParamType
			}
			if opt.Help != nil {
				help := *opt.Help
				el.Help = &help
			}
		}
		elements[i] = el
	}
	group.Elements = elements

	if group.Count < 0 {
		group.Count = 0
	}
	if group.MaxCount <= 0 {
		group.MaxCount = DefaultMaxCount
	}
	group.MaxCount = max(group.MaxCount, group.Count)

	count := group.Count
	if f.submission != nil {
		if raw, ok := f.submission.Lookup(group.CountField); ok {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			switch {
			case err != nil || n < 0:
			case n > group.MaxCount:
				f.rejected = append(f.rejected, fmt.Errorf("%w: %s=%d, limit %d",
					ErrTooManySlots, group.CountField, n, group.MaxCount))
			default:
				count = n
			}
		}
		if group.AddMoreField != "" {
			if _, pressed := f.submission.Lookup(group.AddMoreField); pressed {
				count = min(count+group.AddMoreStep, group.MaxCount)
			}
		}
	}
	group.Count = count

	f.Items = append(f.Items, Item{Repeat: &group})
	if err := f.AddElement(Element{
		Type:      ElementHidden,
		Name:      group.CountField,
		ParamType: ParamInt,
	}); err != nil {
		return 0, err
	}
	return count, nil
}

// SubmissionErr reports the submitted values the form refused while it was
// built, or nil. Hosts answer such submissions with a client error.
func (f *Form) SubmissionErr() error {
	if f == nil {
		return nil
	}
	return errors.Join(f.rejected...)
}

// Element returns a copy of the named single element.
func (f *Form) Element(name string) (Element, bool) {
	el, ok := f.lookup(name)
	if !ok {
		return Element{}, false
	}
	return *el, true
}

// Repeats returns the repeat groups in declaration order.
func (f *Form) Repeats() []*Repeat {
	var out []*Repeat
	for _, item := range f.Items {
		if item.Repeat != nil {
			out = append(out, item.Repeat)
		}
	}
	return out
}

// AddMorePressed reports whether the submission pressed any "add more"
// button. Hosts re-display the form instead of saving in that case.
func (f *Form) AddMorePressed() bool {
	if f == nil || f.submission == nil {
		return false
	}
	for _, group := range f.Repeats() {
		if group.AddMoreField == "" {
			continue
		}
		if _, pressed := f.submission.Lookup(group.AddMoreField); pressed {
			return true
		}
	}
	return false
}

// LabelFor returns the label of a repeated element for the zero-based slot.
func (r *Repeat) LabelFor(el Element, slot int) string {
	return strings.ReplaceAll(el.Label, RepeatPlaceholder, strconv.Itoa(slot+1))
}

func (f *Form) lookup(name string) (*Element, bool) {
	if f == nil {
		return nil, false
	}
	for _, item := range f.Items {
		if item.Element != nil && item.Element.Name == name {
			return item.Element, true
		}
	}
	return nil, false
}

func cloneAttributes(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
