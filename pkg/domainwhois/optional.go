package domainwhois

import (
	"encoding/json"
)

// Optional is a text field that can be absent, present but empty (registry withheld it) or
// present with a value. The zero value is absent.
type Optional struct {
	value   string
	present bool
}

func Absent() Optional {
	return Optional{}
}

func Present(value string) Optional {
	return Optional{value: value, present: true}
}

func (o Optional) IsPresent() bool {
	return o.present
}

// present with an empty value
func (o Optional) IsEmpty() bool {
	return o.present && o.value == ""
}

func (o Optional) Value() (string, bool) {
	return o.value, o.present
}

// empty string for both absent and present-empty
func (o Optional) String() string {
	return o.value
}

// absent is null, present-empty is ""
func (o Optional) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}

	return json.Marshal(o.value)
}

func (o *Optional) UnmarshalJSON(input []byte) error {
	if string(input) == "null" {
		*o = Absent()
		return nil
	}

	var value string
	if err := json.Unmarshal(input, &value); err != nil {
		return err
	}

	*o = Present(value)
	return nil
}
