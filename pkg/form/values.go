package form

import "sort"

// Value is the default or submitted value of one element.
type Value struct {
	Checked bool       `json:"checked,omitempty"`
	Text    string     `json:"text,omitempty"`
	Format  TextFormat `json:"format,omitempty"`
	Number  int        `json:"number,omitempty"`
}

// Checkbox builds a checkbox value.
func Checkbox(checked bool) Value {
	return Value{Checked: checked}
}

// Editor builds a rich text value.
func Editor(text string, format TextFormat) Value {
	return Value{Text: text, Format: format}
}

// Number builds an integer value, used for hidden count fields.
func Number(n int) Value {
	return Value{Number: n}
}

// Values holds single and indexed element values.
type Values struct {
	single  map[string]Value
	indexed map[string]map[int]Value
}

// NewValues returns an empty value set.
func NewValues() Values {
	return Values{
		single:  make(map[string]Value),
		indexed: make(map[string]map[int]Value),
	}
}

// Set stores the value of a single element.
func (v *Values) Set(name string, value Value) {
	v.ensure()
	v.single[name] = value
}

// Get returns the value of a single element.
func (v Values) Get(name string) (Value, bool) {
	value, ok := v.single[name]
	return value, ok
}

// SetAt stores the value of a repeated element at a zero-based slot.
func (v *Values) SetAt(name string, index int, value Value) {
	if index < 0 {
		return
	}
	v.ensure()
	slots, ok := v.indexed[name]
	if !ok {
		slots = make(map[int]Value)
		v.indexed[name] = slots
	}
	slots[index] = value
}

// At returns the value of a repeated element at a zero-based slot.
func (v Values) At(name string, index int) (Value, bool) {
	value, ok := v.indexed[name][index]
	return value, ok
}

// Indexes returns the populated slots of a repeated element in order.
func (v Values) Indexes(name string) []int {
	slots := v.indexed[name]
	if len(slots) == 0 {
		return nil
	}
	out := make([]int, 0, len(slots))
	for idx := range slots {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Clone returns a deep copy.
func (v Values) Clone() Values {
	out := NewValues()
	for name, value := range v.single {
		out.single[name] = value
	}
	for name, slots := range v.indexed {
		copied := make(map[int]Value, len(slots))
		for idx, value := range slots {
			copied[idx] = value
		}
		out.indexed[name] = copied
	}
	return out
}

// Names returns the names of populated single elements, sorted.
func (v Values) Names() []string {
	out := make([]string, 0, len(v.single))
	for name := range v.single {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (v *Values) ensure() {
	if v.single == nil {
		v.single = make(map[string]Value)
	}
	if v.indexed == nil {
		v.indexed = make(map[string]map[int]Value)
	}
}
