package state

import "testing"

func TestClampCursor(t *testing.T) {
	cases := []struct {
		cursor, size, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{-1, 3, 0},
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 2},
		{99, 3, 2},
	}
	for _, tc := range cases {
		if got := ClampCursor(tc.cursor, tc.size); got != tc.want {
			t.Fatalf("ClampCursor(%d, %d) = %d, want %d", tc.cursor, tc.size, got, tc.want)
		}
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, false); got != 10 {
		t.Fatalf("unknown height should use default step, got %d", got)
	}
	if got := PageStep(30, false); got != 24 {
		t.Fatalf("PageStep(30, false) = %d, want 24", got)
	}
	if got := PageStep(30, true); got != 22 {
		t.Fatalf("PageStep(30, true) = %d, want 22", got)
	}
	if got := PageStep(5, false); got != 3 {
		t.Fatalf("tiny terminals still page, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	cases := []struct {
		total, cursor, height     int
		wantStart, wantEnd        int
	}{
		{0, 0, 10, 0, 0},
		{5, 2, 10, 0, 5},
		{100, 0, 10, 0, 10},
		{100, 50, 10, 45, 55},
		{100, 99, 10, 90, 100},
	}
	for _, tc := range cases {
		start, end := CenteredWindow(tc.total, tc.cursor, tc.height)
		if start != tc.wantStart || end != tc.wantEnd {
			t.Fatalf("CenteredWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tc.total, tc.cursor, tc.height, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestScrollTop(t *testing.T) {
	cases := []struct {
		top, total, height, want int
	}{
		{-1, 100, 10, 0},
		{0, 100, 10, 0},
		{50, 100, 10, 50},
		{95, 100, 10, 90},
		{5, 3, 10, 0},
	}
	for _, tc := range cases {
		if got := ScrollTop(tc.top, tc.total, tc.height); got != tc.want {
			t.Fatalf("ScrollTop(%d, %d, %d) = %d, want %d", tc.top, tc.total, tc.height, got, tc.want)
		}
	}
}
