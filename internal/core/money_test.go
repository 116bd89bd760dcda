package core

import "testing"

func TestNew(t *testing.T) {
	cases := []struct {
		units, cents int64
		want         int64
		ok           bool
	}{
		{5, 25, 525, true},
		{-5, 25, -525, true}, // cent part subtracted for negative units
		{0, 0, 0, true},
		{0, 99, 99, true},
		{-1, 0, -100, true},
		{1, 100, 0, false},
		{1, -1, 0, false},
		{-3, 100, 0, false},
	}
	for _, tc := range cases {
		got, err := New(tc.units, tc.cents)
		if tc.ok {
			if err != nil || got.Cents != tc.want {
				t.Fatalf("New(%d, %d) = %d, %v; want %d", tc.units, tc.cents, got.Cents, err, tc.want)
			}
		} else {
			if err == nil {
				t.Fatalf("New(%d, %d) expected error", tc.units, tc.cents)
			}
		}
	}
}

func TestDecomposition(t *testing.T) {
	cases := []struct {
		cents    int64
		units    int64
		subunits int64
	}{
		{525, 5, 25},
		{-525, -5, 25}, // units keep the sign, subunits never do
		{-45, 0, 45},
		{99, 0, 99},
		{0, 0, 0},
		{-120000, -1200, 0},
	}
	for _, tc := range cases {
		m := FromCents(tc.cents)
		if m.Units() != tc.units || m.Subunits() != tc.subunits {
			t.Fatalf("FromCents(%d): Units=%d Subunits=%d, want %d and %d",
				tc.cents, m.Units(), m.Subunits(), tc.units, tc.subunits)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := FromCents(250)
	b := FromCents(-530)

	if got := a.Add(b); got.Cents != -280 {
		t.Errorf("Add: got %d, want -280", got.Cents)
	}
	if got := a.Sub(b); got.Cents != 780 {
		t.Errorf("Sub: got %d, want 780", got.Cents)
	}
	if got := b.Mul(3); got.Cents != -1590 {
		t.Errorf("Mul: got %d, want -1590", got.Cents)
	}

	// Associativity on cents
	c := FromCents(17)
	left := a.Add(b).Add(c)
	right := a.Add(b.Add(c))
	if !left.Equal(right) {
		t.Errorf("addition not associative: %d vs %d", left.Cents, right.Cents)
	}
}

func TestDiv(t *testing.T) {
	cases := []struct {
		cents int64
		by    int64
		want  int64
	}{
		{10000, 4, 2500},
		{10000, 3, 3333}, // remainder discarded, no rounding
		{-10000, 3, -3333},
		{-1, 2, 0}, // truncation toward zero
		{1, -2, 0},
	}
	for _, tc := range cases {
		got, err := FromCents(tc.cents).Div(tc.by)
		if err != nil || got.Cents != tc.want {
			t.Fatalf("FromCents(%d).Div(%d) = %d, %v; want %d", tc.cents, tc.by, got.Cents, err, tc.want)
		}
	}

	if _, err := FromCents(100).Div(0); err != ErrDivisionByZero {
		t.Fatalf("Div(0) = %v, want ErrDivisionByZero", err)
	}
}

func TestComparisons(t *testing.T) {
	lo := FromCents(-525)
	hi := FromCents(100)

	if !lo.Less(hi) || lo.Greater(hi) {
		t.Error("-5.25 should be less than 1.00")
	}
	if !lo.LessOrEqual(lo) || !lo.GreaterOrEqual(lo) || !lo.Equal(lo) {
		t.Error("a value should compare equal to itself")
	}
	if lo.Cmp(hi) != -1 || hi.Cmp(lo) != 1 || lo.Cmp(lo) != 0 {
		t.Error("Cmp inconsistent with Less/Greater")
	}
	if !lo.IsNegative() || hi.IsNegative() {
		t.Error("IsNegative wrong")
	}
	if !FromCents(0).IsZero() {
		t.Error("IsZero wrong")
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{525, "5.25"},
		{-525, "-5.25"},
		{0, "0.00"},
		{-5, "-0.05"},
		{100, "1.00"},
		{-120000, "-1200.00"},
		{9, "0.09"},
	}
	for _, tc := range cases {
		if got := FromCents(tc.cents).String(); got != tc.want {
			t.Errorf("FromCents(%d).String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-55.30", -5530, true},
		{"-1200", -120000, true},
		{"+3000", 300000, true},
		{"0", 0, true},
		{"-0.00", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}
