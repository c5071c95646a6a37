package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, b := range bookmarks {
		if b.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_DivisionBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Population: 50, Divisions: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Population: 50, Divisions: 12})
	if !hasBookmark(bookmarks, BookmarkDivisionBreakthrough) {
		t.Errorf("expected division breakthrough, got %v", bookmarks)
	}
}

func TestBookmarkDetector_NoBreakthroughWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bookmarks := bd.Check(WindowStats{Population: 50, Divisions: 100})
	if hasBookmark(bookmarks, BookmarkDivisionBreakthrough) {
		t.Error("breakthrough should need history")
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{Population: 100})
	bd.Check(WindowStats{Population: 90})

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1200, Population: 30})
	if !hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Fatalf("expected population crash, got %v", bookmarks)
	}

	// Peak resets after a crash
	bookmarks = bd.Check(WindowStats{WindowEndTick: 1800, Population: 25})
	if hasBookmark(bookmarks, BookmarkPopulationCrash) {
		t.Error("crash should not retrigger against the old peak")
	}
}

func TestBookmarkDetector_RespawnWave(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if b := bd.Check(WindowStats{Population: 3}); hasBookmark(b, BookmarkRespawnWave) {
		t.Error("no respawns should mean no respawn bookmark")
	}
	if b := bd.Check(WindowStats{Population: 23, Respawns: 20}); !hasBookmark(b, BookmarkRespawnWave) {
		t.Error("expected respawn wave")
	}
}

func TestBookmarkDetector_StablePopulation(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var fired int
	for i := 0; i < 15; i++ {
		pop := 100 + (i%2)*4
		if hasBookmark(bd.Check(WindowStats{WindowEndTick: int32(i), Population: pop}), BookmarkStablePopulation) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable population fired %d times, want exactly once", fired)
	}
}

func TestBookmarkDetector_SmallPopulationNeverStable(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 15; i++ {
		if hasBookmark(bd.Check(WindowStats{Population: 5}), BookmarkStablePopulation) {
			t.Fatal("tiny populations should not count as stable")
		}
	}
}
