// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "time"

// HeatDecayDuration is how long a changed task stays highlighted.
const HeatDecayDuration = 4 * time.Second

// HeatTickInterval is the redraw interval while anything is hot.
const HeatTickInterval = 100 * time.Millisecond

// HeatKind selects the highlight color.
type HeatKind int

const (
	// HeatPut marks a created or updated task.
	HeatPut HeatKind = iota
	// HeatRemove marks a deleted task.
	HeatRemove
)

type heatEntry struct {
	ignition time.Time
	kind     HeatKind
}

// HeatTracker records when tasks last changed so the view can tint
// them, fading linearly to nothing over HeatDecayDuration.
type HeatTracker struct {
	entries map[int64]heatEntry
}

func NewHeatTracker() *HeatTracker {
	return &HeatTracker{entries: make(map[int64]heatEntry)}
}

// Ignite marks a task as changed at now, restarting its decay.
func (tracker *HeatTracker) Ignite(taskID int64, kind HeatKind, now time.Time) {
	tracker.entries[taskID] = heatEntry{ignition: now, kind: kind}
}

// Heat is 1.0 at ignition and falls to 0.0 after HeatDecayDuration.
func (tracker *HeatTracker) Heat(taskID int64, now time.Time) float64 {
	entry, exists := tracker.entries[taskID]
	if !exists {
		return 0
	}
	elapsed := now.Sub(entry.ignition)
	if elapsed >= HeatDecayDuration || elapsed < 0 {
		return 0
	}
	return 1 - float64(elapsed)/float64(HeatDecayDuration)
}

// Kind reports how a task changed. Meaningful only while Heat > 0.
func (tracker *HeatTracker) Kind(taskID int64) HeatKind {
	return tracker.entries[taskID].kind
}

// HasHot reports whether any task is still highlighted, dropping
// entries that have fully decayed.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for taskID, entry := range tracker.entries {
		if now.Sub(entry.ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.entries, taskID)
	}
	return hot
}
