// Copyright 2025. Silvano DAL ZILIO. All rights reserved.
// Use of this source code is governed by the AGPL license
// that can be found in the LICENSE file.

package bound

import (
	"encoding/json"
	"testing"
)

func TestBoundJSONRoundTrip(t *testing.T) {
	tables := []struct {
		b    Bound
		want string
	}{
		{Large(5), `{"<=":5}`},
		{Strict(5), `{"<":5}`},
		{PlusInf, `"+inf"`},
		{MinusInf, `"-inf"`},
	}
	for _, tt := range tables {
		got, err := tt.b.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %v: %v", tt.b, err)
		}
		if string(got) != tt.want {
			t.Errorf("marshal %v: expected %s, got %s", tt.b, tt.want, got)
		}
		var b Bound
		if err := json.Unmarshal(got, &b); err != nil {
			t.Fatalf("unmarshal %s: %v", got, err)
		}
		if b != tt.b {
			t.Errorf("round-trip %s: expected %v, got %v", got, tt.b, b)
		}
	}
}

func TestBoundUnmarshalRejectsMalformed(t *testing.T) {
	for _, lit := range []string{`"nope"`, `{}`, `{"<=":1,"<":2}`, `{">=":1}`, `42`} {
		var b Bound
		if err := json.Unmarshal([]byte(lit), &b); err == nil {
			t.Errorf("expected an error unmarshaling %s", lit)
		}
	}
}

func TestIntervalJSONRoundTrip(t *testing.T) {
	iv := New(Large(0), Strict(5))
	got, err := iv.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"<=":0},{"<":5}]`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	var out Interval
	if err := json.Unmarshal(got, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != iv {
		t.Errorf("round-trip: expected %v, got %v", iv, out)
	}
}

func TestIntervalJSONWithInfiniteBounds(t *testing.T) {
	iv := Invariant(PlusInf)
	var out Interval
	data, err := json.Marshal(iv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if out != iv {
		t.Errorf("round-trip: expected %v, got %v", iv, out)
	}
}
