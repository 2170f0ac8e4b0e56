package bridge

import "testing"

func TestValue_Boxing(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
		any  any
	}{
		{"absent", Absent, KindAbsent, nil},
		{"number", Number(3.5), KindNumber, 3.5},
		{"bool", Bool(true), KindBool, true},
		{"string", String("pause"), KindString, "pause"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.v.Kind(), tt.kind)
			}
			if got := tt.v.Any(); got != tt.any {
				t.Errorf("Any = %v, want %v", got, tt.any)
			}
		})
	}
}

func TestValue_ZeroIsAbsent(t *testing.T) {
	var v Value
	if !v.IsAbsent() {
		t.Error("zero Value must be Absent")
	}
	if Number(0).IsAbsent() {
		t.Error("Number(0) is a value, not Absent")
	}
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		in   any
		kind Kind
	}{
		{nil, KindAbsent},
		{true, KindBool},
		{"x", KindString},
		{1.5, KindNumber},
		{float32(2), KindNumber},
		{int(3), KindNumber},
		{int64(4), KindNumber},
		{uint32(5), KindNumber},
		{struct{}{}, KindAbsent},
		{[]string{"a"}, KindAbsent},
	}

	for _, tt := range tests {
		if got := FromAny(tt.in).Kind(); got != tt.kind {
			t.Errorf("FromAny(%#v).Kind() = %v, want %v", tt.in, got, tt.kind)
		}
	}
}
