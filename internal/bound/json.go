// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package bound

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes b the way a ".sly" project file represents a bound:
// "+inf" / "-inf" for the infinite bounds, {"<=":n} for a Large bound and
// {"<":n} for a Strict one. Built by hand rather than through
// encoding/json's map marshaling, so the bytes this method returns carry the
// operator keys unescaped. A caller going through json.Marshal still gets
// "<" rewritten as a Unicode escape (the same JSON string) unless it encodes with a
// json.Encoder set to SetEscapeHTML(false).
func (b Bound) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case KindPlusInf:
		return []byte(`"+inf"`), nil
	case KindMinusInf:
		return []byte(`"-inf"`), nil
	case KindStrict:
		return []byte(fmt.Sprintf(`{"<":%d}`, b.Value)), nil
	default:
		return []byte(fmt.Sprintf(`{"<=":%d}`, b.Value)), nil
	}
}

// UnmarshalJSON decodes the inverse of MarshalJSON.
func (b *Bound) UnmarshalJSON(data []byte) error {
	var lit string
	if err := json.Unmarshal(data, &lit); err == nil {
		switch lit {
		case "+inf":
			*b = PlusInf
			return nil
		case "-inf":
			*b = MinusInf
			return nil
		default:
			return fmt.Errorf("bound: invalid bound literal %q", lit)
		}
	}
	var obj map[string]int
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("bound: invalid bound JSON %s: %w", data, err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("bound: invalid bound object %s", data)
	}
	if v, ok := obj["<="]; ok {
		*b = Large(v)
		return nil
	}
	if v, ok := obj["<"]; ok {
		*b = Strict(v)
		return nil
	}
	return fmt.Errorf("bound: invalid bound object %s", data)
}

// MarshalJSON encodes i as the two-element array [lower, upper], built from
// the two bounds' own MarshalJSON output.
func (i Interval) MarshalJSON() ([]byte, error) {
	lo, err := i.Lower.MarshalJSON()
	if err != nil {
		return nil, err
	}
	up, err := i.Upper.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return []byte("[" + string(lo) + "," + string(up) + "]"), nil
}

// UnmarshalJSON decodes the inverse of MarshalJSON, normalizing an empty
// result to Empty() the same way New does.
func (i *Interval) UnmarshalJSON(data []byte) error {
	var arr [2]Bound
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("bound: invalid interval JSON %s: %w", data, err)
	}
	*i = New(arr[0], arr[1])
	return nil
}
