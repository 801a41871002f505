package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFormed    BookmarkType = "formed"
	BookmarkHolding   BookmarkType = "holding"
	BookmarkDisturbed BookmarkType = "disturbed"
	BookmarkDispersed BookmarkType = "dispersed"
)

// FormedFrac is the settled share at which a message counts as formed.
const FormedFrac = 0.9

// Formation thresholds on WindowStats.SettledFrac.
const (
	unformedFrac  = 0.5
	disturbedDrop = 0.3
	holdWindows   = 5
)

// Bookmark marks a notable moment in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector watches successive windows for formation milestones.
type BookmarkDetector struct {
	formed       bool
	settledPeak  float64
	holdCount    int
	prevForming  int
	seenAnything bool
}

// NewBookmarkDetector creates a detector.
func NewBookmarkDetector() *BookmarkDetector {
	return &BookmarkDetector{}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// A new target set starts a fresh formation.
	if stats.Retargets > 0 || stats.Scatters > 0 {
		bd.formed = false
		bd.settledPeak = 0
		bd.holdCount = 0
	}

	if b := bd.checkDispersed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkDisturbed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFormed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkHolding(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.Forming > 0 && stats.SettledFrac > bd.settledPeak {
		bd.settledPeak = stats.SettledFrac
	}
	bd.prevForming = stats.Forming
	bd.seenAnything = true

	return bookmarks
}

func (bd *BookmarkDetector) checkDispersed(stats WindowStats) *Bookmark {
	if !bd.seenAnything || bd.prevForming == 0 || stats.Forming > 0 {
		return nil
	}
	bd.formed = false
	bd.settledPeak = 0
	bd.holdCount = 0
	return &Bookmark{
		Type:        BookmarkDispersed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("All %d forming particles released", bd.prevForming),
	}
}

func (bd *BookmarkDetector) checkFormed(stats WindowStats) *Bookmark {
	if stats.Forming == 0 {
		return nil
	}
	if bd.formed {
		if stats.SettledFrac < unformedFrac {
			bd.formed = false
		}
		return nil
	}
	if stats.SettledFrac < FormedFrac {
		return nil
	}
	bd.formed = true
	return &Bookmark{
		Type:        BookmarkFormed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%.0f%% of %d forming particles settled", stats.SettledFrac*100, stats.Forming),
	}
}

func (bd *BookmarkDetector) checkHolding(stats WindowStats) *Bookmark {
	if stats.Forming == 0 || stats.SettledFrac < FormedFrac {
		bd.holdCount = 0
		return nil
	}
	bd.holdCount++
	// Trigger exactly once per formation.
	if bd.holdCount != holdWindows {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkHolding,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Formation held for %d windows", holdWindows),
	}
}

func (bd *BookmarkDetector) checkDisturbed(stats WindowStats) *Bookmark {
	if stats.Forming == 0 || stats.Retargets > 0 || bd.settledPeak < FormedFrac {
		return nil
	}
	drop := bd.settledPeak - stats.SettledFrac
	if drop <= disturbedDrop {
		return nil
	}
	oldPeak := bd.settledPeak
	bd.settledPeak = stats.SettledFrac
	return &Bookmark{
		Type:        BookmarkDisturbed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Settled share fell from %.0f%% to %.0f%% (%d pointer ticks)", oldPeak*100, stats.SettledFrac*100, stats.PointerTicks),
	}
}
