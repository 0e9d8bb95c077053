package camera

import "testing"

func TestFlashMode_NextRing(t *testing.T) {
	want := map[FlashMode]FlashMode{
		FlashOff:   FlashOn,
		FlashOn:    FlashAuto,
		FlashAuto:  FlashTorch,
		FlashTorch: FlashOff,
	}
	for from, to := range want {
		if got := from.Next(); got != to {
			t.Fatalf("%v.Next() = %v, want %v", from, got, to)
		}
	}
}

func TestFlashMode_FourCyclesReturnToStart(t *testing.T) {
	for _, start := range []FlashMode{FlashOff, FlashOn, FlashAuto, FlashTorch} {
		m := start
		for i := 1; i <= 4; i++ {
			m = m.Next()
			if i < 4 && m == start {
				t.Fatalf("mode %v repeated after %d steps", start, i)
			}
		}
		if m != start {
			t.Fatalf("expected %v after four steps, got %v", start, m)
		}
	}
}

func TestCameraType_Toggled(t *testing.T) {
	if TypeBack.Toggled() != TypeFront || TypeFront.Toggled() != TypeBack {
		t.Fatalf("toggle is not a binary flip")
	}
}

func TestParseRoundTripNames(t *testing.T) {
	for _, m := range []FlashMode{FlashOff, FlashOn, FlashAuto, FlashTorch} {
		got, ok := ParseFlashMode(m.String())
		if !ok || got != m {
			t.Fatalf("ParseFlashMode(%q) = %v,%v", m.String(), got, ok)
		}
	}
	if _, ok := ParseFlashMode("strobe"); ok {
		t.Fatalf("unexpected parse of unknown flash mode")
	}
	if ct, ok := ParseCameraType("front"); !ok || ct != TypeFront {
		t.Fatalf("ParseCameraType(front) = %v,%v", ct, ok)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Type != TypeBack || s.FlashMode != FlashOff || !s.ShowGrid {
		t.Fatalf("unexpected defaults %+v", s)
	}
}
