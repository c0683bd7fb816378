package boundary

import "testing"

func TestIndexPeriodicWraps(t *testing.T) {
	cases := []struct {
		i, n, want int
	}{
		{0, 8, 0},
		{7, 8, 7},
		{8, 8, 0},
		{-1, 8, 7},
		{-8, 8, 0},
		{-9, 8, 7},
		{16, 8, 0},
	}
	for _, c := range cases {
		got, ok := Index(c.i, c.n, Periodic)
		if !ok {
			t.Fatalf("Index(%d,%d,Periodic) reported a miss, want a hit", c.i, c.n)
		}
		if got != c.want {
			t.Errorf("Index(%d,%d,Periodic) = %d, want %d", c.i, c.n, got, c.want)
		}
	}
}

func TestIndexZeroPaddingMissesOutOfRange(t *testing.T) {
	cases := []struct {
		i, n   int
		wantI  int
		wantOK bool
	}{
		{0, 8, 0, true},
		{7, 8, 7, true},
		{8, 8, 0, false},
		{-1, 8, 0, false},
	}
	for _, c := range cases {
		got, ok := Index(c.i, c.n, ZeroPadding)
		if ok != c.wantOK {
			t.Fatalf("Index(%d,%d,ZeroPadding) ok = %v, want %v", c.i, c.n, ok, c.wantOK)
		}
		if ok && got != c.wantI {
			t.Errorf("Index(%d,%d,ZeroPadding) = %d, want %d", c.i, c.n, got, c.wantI)
		}
	}
}

func TestIndexEmptySignal(t *testing.T) {
	if _, ok := Index(0, 0, Periodic); ok {
		t.Error("Index against n=0 should always miss")
	}
}

func TestModeString(t *testing.T) {
	if Periodic.String() != "PERIODIC" {
		t.Errorf("Periodic.String() = %q", Periodic.String())
	}
	if ZeroPadding.String() != "ZERO_PADDING" {
		t.Errorf("ZeroPadding.String() = %q", ZeroPadding.String())
	}
}
