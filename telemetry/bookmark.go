package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkDivisionBreakthrough BookmarkType = "division_breakthrough"
	BookmarkPopulationCrash      BookmarkType = "population_crash"
	BookmarkRespawnWave          BookmarkType = "respawn_wave"
	BookmarkStablePopulation     BookmarkType = "stable_population"
)

// stableWindows is how many consecutive low-variance windows make a population stable.
const stableWindows = 5

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for notable moments.
type BookmarkDetector struct {
	history     []WindowStats
	historyIdx  int
	historyFull bool

	recentPeak  int
	stableCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	return &BookmarkDetector{history: make([]WindowStats, max(historySize, stableWindows))}
}

// Check analyzes the latest stats against history and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkDivisionBreakthrough,
		bd.checkPopulationCrash,
		bd.checkRespawnWave,
		bd.checkStablePopulation,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.history)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
	bd.recentPeak = max(bd.recentPeak, stats.Population)

	return bookmarks
}

// recent returns the history in insertion order.
func (bd *BookmarkDetector) recent() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, len(bd.history))
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkDivisionBreakthrough(stats WindowStats) *Bookmark {
	history := bd.recent()
	if len(history) < 3 {
		return nil
	}
	var total int
	for _, h := range history {
		total += h.Divisions
	}
	avg := float64(total) / float64(len(history))
	if stats.Divisions >= 5 && float64(stats.Divisions) > 2*avg {
		return &Bookmark{
			Type:        BookmarkDivisionBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d divisions, %.1fx the recent average %.1f", stats.Divisions, float64(stats.Divisions)/max(avg, 1), avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPopulationCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}
	drop := 1 - float64(stats.Population)/float64(bd.recentPeak)
	if drop > 0.5 && stats.Population < bd.recentPeak-10 {
		peak := bd.recentPeak
		bd.recentPeak = stats.Population
		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population fell %.0f%% from peak %d to %d", drop*100, peak, stats.Population),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkRespawnWave(stats WindowStats) *Bookmark {
	if stats.Respawns == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkRespawnWave,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d random cells respawned into a population of %d", stats.Respawns, stats.Population),
	}
}

func (bd *BookmarkDetector) checkStablePopulation(stats WindowStats) *Bookmark {
	if stats.Population < 10 {
		bd.stableCount = 0
		return nil
	}
	history := bd.recent()
	if len(history) < 4 {
		return nil
	}

	window := history[len(history)-4:]
	counts := make([]float64, len(window))
	for i, h := range window {
		counts[i] = float64(h.Population)
	}
	m, v := stat.PopMeanVariance(counts, nil)

	// CV^2 < 0.04 means CV < 0.2
	if m > 0 && v/(m*m) < 0.04 {
		bd.stableCount++
	} else {
		bd.stableCount = 0
	}

	if bd.stableCount == stableWindows {
		return &Bookmark{
			Type:        BookmarkStablePopulation,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population steady around %.0f cells for %d windows", m, stableWindows),
		}
	}
	return nil
}
