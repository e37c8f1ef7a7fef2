package zbigint

import "testing"

func TestFromInt64RoundTripsThroughString(t *testing.T) {
	cases := []int64{0, 1, -1, 123456789, -123456789, 1000000000, -1000000000}
	for _, v := range cases {
		got := FromInt64(v).String()
		want := int64ToString(v)
		if got != want {
			t.Errorf("FromInt64(%d).String() = %q, want %q", v, got, want)
		}
	}
}

func int64ToString(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	u := v
	if neg {
		u = -v
	}
	s := ""
	for u > 0 {
		s = string(rune('0'+u%10)) + s
		u /= 10
	}
	if neg {
		s = "-" + s
	}
	return s
}

func TestAddAcrossLimbBoundary(t *testing.T) {
	a := FromInt64(999999999)
	b := FromInt64(1)
	got := Add(a, b).String()
	if got != "1000000000" {
		t.Fatalf("expected 999999999+1 = 1000000000, got %s", got)
	}
}

func TestAddMixedSigns(t *testing.T) {
	cases := []struct {
		a, b int64
		want string
	}{
		{5, -3, "2"}, {-5, 3, "-2"}, {-5, 5, "0"}, {3, -5, "-2"},
	}
	for _, c := range cases {
		got := Add(FromInt64(c.a), FromInt64(c.b)).String()
		if got != c.want {
			t.Errorf("Add(%d, %d) = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestSub(t *testing.T) {
	got := Sub(FromInt64(100), FromInt64(300)).String()
	if got != "-200" {
		t.Fatalf("expected 100-300 = -200, got %s", got)
	}
}

func TestMul(t *testing.T) {
	got := Mul(FromInt64(123), FromInt64(456)).String()
	if got != "56088" {
		t.Fatalf("expected 123*456 = 56088, got %s", got)
	}
}

func TestMulByZero(t *testing.T) {
	got := Mul(FromInt64(123456789), FromInt64(0)).String()
	if got != "0" {
		t.Fatalf("expected anything times zero to be 0, got %s", got)
	}
}

func TestMulLargeMagnitude(t *testing.T) {
	a := FromInt64(1000000000)
	b := FromInt64(1000000000)
	got := Mul(a, b).String()
	if got != "1000000000000000000" {
		t.Fatalf("expected 1e9 * 1e9 = 1e18, got %s", got)
	}
}

func TestCmp(t *testing.T) {
	cases := []struct {
		a, b int64
		want int
	}{
		{1, 2, -1}, {2, 1, 1}, {1, 1, 0}, {-1, 1, -1}, {1, -1, 1}, {-5, -3, -1}, {0, 0, 0}, {0, -1, 1},
	}
	for _, c := range cases {
		got := Cmp(FromInt64(c.a), FromInt64(c.b))
		if got != c.want {
			t.Errorf("Cmp(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestZeroStringHasNoSign(t *testing.T) {
	if got := FromInt64(0).String(); got != "0" {
		t.Fatalf("expected zero to render without a sign, got %q", got)
	}
	if got := Sub(FromInt64(5), FromInt64(5)).String(); got != "0" {
		t.Fatalf("expected 5-5 to normalize away any negative zero, got %q", got)
	}
}
