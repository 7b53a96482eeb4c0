package form

import (
	"net/url"
	"strconv"
	"strings"
)

// FieldName returns the wire name of an element. Repeated elements are
// addressed as name[index].
func FieldName(name string, index int) string {
	if index < 0 {
		return name
	}
	return name + "[" + strconv.Itoa(index) + "]"
}

// EncodeURL flattens values into the wire form used by HTML submissions.
// Editors encode as name[text]/name[format]; checkboxes as "1"/"0"; hidden
// and text elements as their text or number.
func EncodeURL(f *Form, values Values) url.Values {
	out := url.Values{}
	if f == nil {
		return out
	}
	for _, item := range f.Items {
		switch {
		case item.Element != nil:
			value, ok := values.Get(item.Element.Name)
			if !ok {
				continue
			}
			encodeValue(out, *item.Element, FieldName(item.Element.Name, -1), value)
		case item.Repeat != nil:
			for slot := 0; slot < item.Repeat.Count; slot++ {
				for _, el := range item.Repeat.Elements {
					value, ok := values.At(el.Name, slot)
					if !ok {
						continue
					}
					encodeValue(out, el, FieldName(el.Name, slot), value)
				}
			}
		}
	}
	return out
}

// ParseURL reads submitted parameters for every element of the form. Repeat
// groups are read for their effective count; missing slots stay absent.
func ParseURL(f *Form, in url.Values) Values {
	out := NewValues()
	if f == nil {
		return out
	}
	for _, item := range f.Items {
		switch {
		case item.Element != nil:
			if value, ok := decodeValue(in, *item.Element, FieldName(item.Element.Name, -1)); ok {
				out.Set(item.Element.Name, value)
			}
		case item.Repeat != nil:
			for slot := 0; slot < item.Repeat.Count; slot++ {
				for _, el := range item.Repeat.Elements {
					if value, ok := decodeValue(in, el, FieldName(el.Name, slot)); ok {
						out.SetAt(el.Name, slot, value)
					}
				}
			}
		}
	}
	return out
}

func encodeValue(out url.Values, el Element, key string, value Value) {
	switch el.Type {
	case ElementEditor:
		out.Set(key+"[text]", value.Text)
		out.Set(key+"[format]", strconv.Itoa(int(value.Format)))
	case ElementCheckbox:
		if value.Checked {
			out.Set(key, "1")
		} else {
			out.Set(key, "0")
		}
	case ElementHidden:
		if el.ParamType == ParamInt {
			out.Set(key, strconv.Itoa(value.Number))
			return
		}
		out.Set(key, value.Text)
	case ElementText:
		out.Set(key, value.Text)
	}
}

func decodeValue(in url.Values, el Element, key string) (Value, bool) {
	switch el.Type {
	case ElementEditor:
		text, ok := first(in, key+"[text]")
		if !ok {
			return Value{}, false
		}
		format := FormatHTML
		if raw, ok := first(in, key+"[format]"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				format = TextFormat(n)
			}
		}
		return Editor(clean(text, el.ParamType), format), true
	case ElementCheckbox:
		raw, ok := last(in, key)
		if !ok {
			return Checkbox(false), true
		}
		return Checkbox(truthy(raw)), true
	case ElementHidden, ElementText:
		raw, ok := first(in, key)
		if !ok {
			return Value{}, false
		}
		if el.ParamType == ParamInt {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return Value{}, false
			}
			return Number(n), true
		}
		return Value{Text: clean(raw, el.ParamType)}, true
	default:
		return Value{}, false
	}
}

func clean(raw string, param ParamType) string {
	switch param {
	case ParamText:
		return strings.TrimSpace(raw)
	default:
		return raw
	}
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func first(in url.Values, key string) (string, bool) {
	values, ok := in[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// last honours the hidden "0" + checkbox "1" pair browsers submit for
// advanced checkboxes.
func last(in url.Values, key string) (string, bool) {
	values, ok := in[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}
