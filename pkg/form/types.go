package form

// ElementType enumerates the element kinds a fragment can add.
type ElementType string

const (
	ElementCheckbox ElementType = "checkbox"
	ElementHeader   ElementType = "header"
	ElementEditor   ElementType = "editor"
	ElementText     ElementType = "text"
	ElementHidden   ElementType = "hidden"
	ElementSubmit   ElementType = "submit"
)

// ParamType describes how submitted values are cleaned before use.
type ParamType string

const (
	ParamRaw  ParamType = "raw"
	ParamText ParamType = "text"
	ParamInt  ParamType = "int"
	ParamBool ParamType = "bool"
)

// TextFormat marks how rich text values are stored and formatted.
type TextFormat int

const (
	FormatMoodle   TextFormat = 0
	FormatHTML     TextFormat = 1
	FormatPlain    TextFormat = 2
	FormatMarkdown TextFormat = 4
)

// RepeatPlaceholder is replaced by the 1-based slot number in the labels of
// repeated elements.
const RepeatPlaceholder = "{no}"

// HelpButton points an element at a help string.
type HelpButton struct {
	Identifier string `json:"identifier"`
	Component  string `json:"component"`
}

// Element is a single form control.
type Element struct {
	Type       ElementType       `json:"type"`
	Name       string            `json:"name"`
	Label      string            `json:"label,omitempty"`
	ParamType  ParamType         `json:"paramType,omitempty"`
	Help       *HelpButton       `json:"help,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// ElementOptions carries per-element metadata applied to repeated elements.
type ElementOptions struct {
	ParamType ParamType
	Help      *HelpButton
}

// Repeat is a group of elements shown Count times.
type Repeat struct {
	Elements []Element `json:"elements"`
	// Count is the effective number of slots after submission handling.
	Count int `json:"count"`
	// MaxCount caps the slots a submission may ask for. Zero means
	// DefaultMaxCount; a larger initial Count raises it.
	MaxCount int `json:"maxCount,omitempty"`
	// CountField names the hidden element that carries Count between
	// submissions.
	CountField string `json:"countField"`
	// AddMoreField names the submit button that grows the group.
	AddMoreField string `json:"addMoreField"`
	// AddMoreStep is the number of slots one "add more" press adds.
	AddMoreStep     int    `json:"addMoreStep"`
	AddMoreLabel    string `json:"addMoreLabel,omitempty"`
	AddButtonInside bool   `json:"addButtonInside,omitempty"`
}

// Item is either a single element or a repeat group, in declaration order.
type Item struct {
	Element *Element `json:"element,omitempty"`
	Repeat  *Repeat  `json:"repeat,omitempty"`
}
