package pagination

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		total, page  int64
		limit        int64
		wantSkip     int64
		wantPages    int64
		wantHasNext  bool
		wantHasPrev  bool
	}{
		{"empty store", 0, 1, 10, 0, 0, false, false},
		{"single partial page", 5, 1, 10, 0, 1, false, false},
		{"exact fit", 20, 2, 10, 10, 2, false, true},
		{"middle page", 25, 2, 10, 10, 3, true, true},
		{"first of three", 5, 1, 2, 0, 3, true, false},
		{"last of three", 5, 3, 2, 4, 3, false, true},
		{"page beyond range", 5, 9, 2, 16, 3, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(tt.total, tt.page, tt.limit)
			if w.Skip != tt.wantSkip {
				t.Errorf("Skip = %d, want %d", w.Skip, tt.wantSkip)
			}
			if w.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", w.TotalPages, tt.wantPages)
			}
			if w.HasNext != tt.wantHasNext {
				t.Errorf("HasNext = %v, want %v", w.HasNext, tt.wantHasNext)
			}
			if w.HasPrev != tt.wantHasPrev {
				t.Errorf("HasPrev = %v, want %v", w.HasPrev, tt.wantHasPrev)
			}
		})
	}
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(5, 1, 2)
	if m.CurrentPage != 1 || m.TotalPages != 3 || m.TotalCount != 5 {
		t.Fatalf("unexpected meta: %+v", m)
	}
	if !m.HasNext || m.HasPrev {
		t.Fatalf("unexpected page flags: %+v", m)
	}
}
