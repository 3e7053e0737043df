package domain

import "testing"

func TestFormatSeconds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{65, "1:05"},
		{600, "10:00"},
		{3661, "61:01"},
		{-5, "0:00"},
	}
	for _, tc := range cases {
		if got := FormatSeconds(tc.in); got != tc.want {
			t.Fatalf("FormatSeconds(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeriveTags(t *testing.T) {
	t.Parallel()
	got := DeriveTags("Lean Coffee with the Team")
	want := []string{"lean", "coffee", "team"}
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tags = %v, want %v", got, want)
		}
	}
}

func TestDeriveTagsSkipsShortWords(t *testing.T) {
	t.Parallel()
	if got := DeriveTags("1-2-4-All"); len(got) != 1 || got[0] != "all" {
		t.Fatalf("tags = %v", got)
	}
}
