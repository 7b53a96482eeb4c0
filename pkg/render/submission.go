package render

import (
	"slices"
	"strconv"
	"strings"
)

// Hidden input names the host form carries next to the content type fragment.
const (
	HiddenSessionKey   = "sesskey"
	HiddenLabelID      = "id"
	HiddenCourseModule = "cmid"
	HiddenContentType  = "unilabeltype"
)

// HostFields are the values a settings form posts back so the host can find
// the label and content type the fragment belongs to.
type HostFields struct {
	SessionKey     string
	LabelID        int64
	CourseModuleID int64
	ContentType    string
}

// Map returns the hidden inputs for h. Zero values are left out.
func (h HostFields) Map() map[string]string {
	out := map[string]string{}
	if h.SessionKey != "" {
		out[HiddenSessionKey] = h.SessionKey
	}
	if h.LabelID != 0 {
		out[HiddenLabelID] = strconv.FormatInt(h.LabelID, 10)
	}
	if h.CourseModuleID != 0 {
		out[HiddenCourseModule] = strconv.FormatInt(h.CourseModuleID, 10)
	}
	if ns := strings.TrimSpace(h.ContentType); ns != "" {
		out[HiddenContentType] = ns
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HiddenField is one hidden input as a renderer emits it.
type HiddenField struct {
	Name  string
	Value string
}

// SortedHiddenFields orders hidden inputs by name. Blank names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	var out []HiddenField
	for name, value := range fields {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, HiddenField{Name: name, Value: value})
		}
	}
	slices.SortFunc(out, func(a, b HiddenField) int { return strings.Compare(a.Name, b.Name) })
	return out
}
