package paging

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/storyshelf/storyshelf/internal/story"
)

func makePages(n int) []story.Page {
	pages := make([]story.Page, n)
	for i := range pages {
		pages[i] = story.Page{No: i + 1, Content: []string{}}
	}
	return pages
}

func pageNos(pages []story.Page) []int {
	nos := make([]int, len(pages))
	for i, p := range pages {
		nos[i] = p.No
	}
	return nos
}

func TestCatalog(t *testing.T) {
	pages := makePages(25)

	tests := []struct {
		name      string
		pages     []story.Page
		current   int
		wantTotal int
		wantPrev  int
		wantNext  int
		wantFirst bool
		wantLast  bool
		wantFrom  int
		wantCount int
	}{
		{"first window", pages, 1, 3, 1, 2, true, false, 1, 10},
		{"middle window", pages, 2, 3, 1, 3, false, false, 11, 10},
		{"last window is short", pages, 3, 3, 2, 3, false, true, 21, 5},
		{"past the end", pages, 4, 3, 3, 3, false, false, 0, 0},
		{"zero", pages, 0, 3, 1, 1, false, false, 0, 0},
		{"exact multiple", makePages(20), 2, 2, 1, 2, false, true, 11, 10},
		{"empty story", nil, 1, 0, 1, 0, true, false, 0, 0},
		{"start offset would wrap", pages, 1844674407370955163, 3, 1844674407370955162, 3, false, false, 0, 0},
		{"max int", pages, math.MaxInt, 3, math.MaxInt - 1, 3, false, false, 0, 0},
		{"min int", pages, math.MinInt, 3, 1, math.MinInt + 1, false, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Catalog(tt.pages, tt.current)
			if w.CurrentPage != tt.current {
				t.Errorf("CurrentPage = %d, want %d", w.CurrentPage, tt.current)
			}
			if w.TotalPages != tt.wantTotal {
				t.Errorf("TotalPages = %d, want %d", w.TotalPages, tt.wantTotal)
			}
			if w.PrevPage != tt.wantPrev {
				t.Errorf("PrevPage = %d, want %d", w.PrevPage, tt.wantPrev)
			}
			if w.NextPage != tt.wantNext {
				t.Errorf("NextPage = %d, want %d", w.NextPage, tt.wantNext)
			}
			if w.IsFirst != tt.wantFirst {
				t.Errorf("IsFirst = %v, want %v", w.IsFirst, tt.wantFirst)
			}
			if w.IsLast != tt.wantLast {
				t.Errorf("IsLast = %v, want %v", w.IsLast, tt.wantLast)
			}
			if len(w.Items) != tt.wantCount {
				t.Fatalf("got %d items, want %d", len(w.Items), tt.wantCount)
			}
			for i, p := range w.Items {
				if p.No != tt.wantFrom+i {
					t.Errorf("Items[%d].No = %d, want %d", i, p.No, tt.wantFrom+i)
				}
			}
		})
	}
}

func TestCatalog_DoesNotShareInput(t *testing.T) {
	pages := makePages(12)
	w := Catalog(pages, 1)
	w.Items[0].Title = "changed"
	if pages[0].Title != "" {
		t.Error("changing a window item changed the input sequence")
	}
}

func TestWindow_Links(t *testing.T) {
	pages := makePages(25)

	tests := []struct {
		current  int
		wantPrev bool
		wantNext bool
		inRange  bool
	}{
		{1, false, true, true},
		{2, true, true, true},
		{3, true, false, true},
		{4, true, false, false},
	}
	for _, tt := range tests {
		w := Catalog(pages, tt.current)
		if w.HasPrev() != tt.wantPrev {
			t.Errorf("page %d: HasPrev = %v, want %v", tt.current, w.HasPrev(), tt.wantPrev)
		}
		if w.HasNext() != tt.wantNext {
			t.Errorf("page %d: HasNext = %v, want %v", tt.current, w.HasNext(), tt.wantNext)
		}
		if w.InRange() != tt.inRange {
			t.Errorf("page %d: InRange = %v, want %v", tt.current, w.InRange(), tt.inRange)
		}
	}

	empty := Catalog(nil, 1)
	if empty.HasPrev() || empty.HasNext() || !empty.InRange() {
		t.Errorf("empty story window 1: %+v", empty)
	}
	if empty.LastPage() != 1 {
		t.Errorf("empty story LastPage = %d, want 1", empty.LastPage())
	}
	if got := Catalog(pages, 1).LastPage(); got != 3 {
		t.Errorf("LastPage = %d, want 3", got)
	}
}

func TestNavigate(t *testing.T) {
	pages := makePages(25)

	tests := []struct {
		name        string
		pageNo      int
		wantPrev    int
		wantNext    int
		wantCatalog int
	}{
		{"first page", 1, 0, 2, 1},
		{"middle page", 14, 13, 15, 2},
		{"window edge", 10, 9, 11, 1},
		{"next window", 11, 10, 12, 2},
		{"last page", 25, 24, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, err := Navigate(pages, tt.pageNo)
			if err != nil {
				t.Fatalf("Navigate failed: %v", err)
			}
			if nav.Current.No != tt.pageNo {
				t.Errorf("Current.No = %d, want %d", nav.Current.No, tt.pageNo)
			}
			if nav.PrevPageNo != tt.wantPrev {
				t.Errorf("PrevPageNo = %d, want %d", nav.PrevPageNo, tt.wantPrev)
			}
			if nav.NextPageNo != tt.wantNext {
				t.Errorf("NextPageNo = %d, want %d", nav.NextPageNo, tt.wantNext)
			}
			if nav.HasPrev() != (tt.wantPrev != 0) || nav.HasNext() != (tt.wantNext != 0) {
				t.Errorf("HasPrev/HasNext = %v/%v", nav.HasPrev(), nav.HasNext())
			}
			if nav.CatalogPage != tt.wantCatalog {
				t.Errorf("CatalogPage = %d, want %d", nav.CatalogPage, tt.wantCatalog)
			}
		})
	}
}

func TestNavigate_NotFound(t *testing.T) {
	for _, pageNo := range []int{999, 0, -1, 26} {
		nav, err := Navigate(makePages(25), pageNo)
		if !errors.Is(err, ErrPageNotFound) {
			t.Errorf("page %d: expected ErrPageNotFound, got %v", pageNo, err)
		}
		if nav.Current.No != 0 || nav.PrevPageNo != 0 || nav.NextPageNo != 0 || nav.CatalogPage != 0 {
			t.Errorf("page %d: expected zero Navigation, got %+v", pageNo, nav)
		}
	}

	if _, err := Navigate(nil, 1); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("empty sequence: expected ErrPageNotFound, got %v", err)
	}
}

func TestNavigate_SinglePage(t *testing.T) {
	nav, err := Navigate(makePages(1), 1)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.HasPrev() || nav.HasNext() {
		t.Errorf("single page should have no neighbours: %+v", nav)
	}
}

func TestNavigate_UsesSequenceNeighbours(t *testing.T) {
	// Neighbours come from sequence order, not from pageNo arithmetic.
	pages := []story.Page{{No: 3}, {No: 7}, {No: 12}}
	nav, err := Navigate(pages, 7)
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if nav.PrevPageNo != 3 || nav.NextPageNo != 12 {
		t.Errorf("expected neighbours 3 and 12, got %d and %d", nav.PrevPageNo, nav.NextPageNo)
	}
}

func TestCheckContiguous(t *testing.T) {
	if err := CheckContiguous(makePages(15)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckContiguous(nil); err != nil {
		t.Errorf("unexpected error for empty sequence: %v", err)
	}
	gap := []story.Page{{No: 1}, {No: 3}}
	if err := CheckContiguous(gap); !errors.Is(err, ErrNotContiguous) {
		t.Errorf("expected ErrNotContiguous, got %v", err)
	}
}

func TestCatalog_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 500).Draw(t, "n")
		pages := makePages(n)
		total := TotalPages(n)

		if want := (n + 9) / 10; total != want {
			t.Fatalf("TotalPages(%d) = %d, want %d", n, total, want)
		}
		if !Catalog(pages, 1).IsFirst {
			t.Fatal("window 1 is not first")
		}
		if total > 0 && !Catalog(pages, total).IsLast {
			t.Fatalf("window %d is not last", total)
		}

		// Every page is listed exactly once, in the window CatalogPageOf names.
		seen := 0
		for c := 1; c <= total; c++ {
			w := Catalog(pages, c)
			for _, p := range w.Items {
				if CatalogPageOf(p.No) != c {
					t.Fatalf("page %d listed in window %d, CatalogPageOf says %d", p.No, c, CatalogPageOf(p.No))
				}
				seen++
			}
		}
		if seen != n {
			t.Fatalf("windows list %d pages, want %d", seen, n)
		}
	})
}

func TestNavigate_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(3, 300).Draw(t, "n")
		k := rapid.IntRange(2, n-1).Draw(t, "k")

		nav, err := Navigate(makePages(n), k)
		if err != nil {
			t.Fatalf("Navigate(%d) failed: %v", k, err)
		}
		if nav.PrevPageNo != k-1 || nav.NextPageNo != k+1 {
			t.Fatalf("neighbours of %d are %d and %d", k, nav.PrevPageNo, nav.NextPageNo)
		}
		if want := (k-1)/10 + 1; nav.CatalogPage != want {
			t.Fatalf("CatalogPage = %d, want %d", nav.CatalogPage, want)
		}

		w := Catalog(makePages(n), nav.CatalogPage)
		listed := false
		for _, p := range w.Items {
			listed = listed || p.No == k
		}
		if !listed {
			t.Fatalf("window %d does not list page %d (items %v)", nav.CatalogPage, k, pageNos(w.Items))
		}
	})
}
