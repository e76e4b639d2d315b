package layout

import "testing"

func TestTierForWidth(t *testing.T) {
	tests := []struct {
		width int
		want  Tier
	}{
		{0, TierNarrow},
		{80, TierNarrow},
		{109, TierNarrow},
		{110, TierSplit},
		{169, TierSplit},
		{170, TierWide},
		{320, TierWide},
	}

	for _, tt := range tests {
		if got := TierForWidth(tt.width); got != tt.want {
			t.Errorf("TierForWidth(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestTierColumns(t *testing.T) {
	tests := []struct {
		tier Tier
		want int
	}{
		{TierNarrow, 1},
		{TierSplit, 2},
		{TierWide, 3},
	}

	for _, tt := range tests {
		if got := tt.tier.Columns(); got != tt.want {
			t.Errorf("Tier(%d).Columns() = %d, want %d", tt.tier, got, tt.want)
		}
	}
}

func TestColumnWidths(t *testing.T) {
	t.Run("single column keeps full width", func(t *testing.T) {
		got := ColumnWidths(80, 1)
		if len(got) != 1 || got[0] != 80 {
			t.Errorf("ColumnWidths(80, 1) = %v", got)
		}
	})

	t.Run("two columns reserve one gap cell", func(t *testing.T) {
		got := ColumnWidths(121, 2)
		if len(got) != 2 {
			t.Fatalf("len = %d", len(got))
		}
		if got[0]+got[1] != 120 {
			t.Errorf("sum = %d, want 120", got[0]+got[1])
		}
	})

	t.Run("remainder goes left", func(t *testing.T) {
		got := ColumnWidths(120, 3)
		// 120 - 2 gaps = 118; 118/3 = 39 rem 1.
		want := []int{40, 39, 39}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("ColumnWidths(120, 3) = %v, want %v", got, want)
				break
			}
		}
	})

	t.Run("degenerate width falls back to one column", func(t *testing.T) {
		got := ColumnWidths(3, 3)
		if len(got) != 1 || got[0] != 3 {
			t.Errorf("ColumnWidths(3, 3) = %v", got)
		}
	})
}

func TestRowHeights(t *testing.T) {
	got := RowHeights(25, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0] != 13 || got[1] != 12 {
		t.Errorf("RowHeights(25, 2) = %v, want [13 12]", got)
	}

	got = RowHeights(30, 1)
	if len(got) != 1 || got[0] != 30 {
		t.Errorf("RowHeights(30, 1) = %v", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		s      string
		max    int
		suffix string
		want   string
	}{
		{"hello", 10, "…", "hello"},
		{"hello world", 8, "…", "hello w…"},
		{"hello", 0, "…", ""},
		{"héllo wörld", 7, "…", "héllo …"},
		{"ab", 1, "...", "a"},
		// CJK glyphs occupy two cells each; the budget is cells, not runes.
		{"日本語のテスト", 5, "…", "日本…"},
	}

	for _, tt := range tests {
		if got := TruncateRunes(tt.s, tt.max, tt.suffix); got != tt.want {
			t.Errorf("TruncateRunes(%q, %d, %q) = %q, want %q", tt.s, tt.max, tt.suffix, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("refactoring the scheduler", 10); got != "refactori…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate passthrough = %q", got)
	}
}
