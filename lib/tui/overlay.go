// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens s to at most width display cells, ending with an
// ellipsis when anything was cut. Escape sequences are preserved.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// PadRight pads s with spaces to exactly width display cells,
// truncating first when it is wider.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// SpliceOverlay replaces a rectangle of a rendered view with overlay
// lines, starting at column anchorX of line anchorY. Lines of the
// view on either side of the overlay keep their styling.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}

	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}
		viewLine := viewLines[row]

		var spliced strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			spliced.WriteString(prefix)
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				spliced.WriteString(strings.Repeat(" ", gap))
			}
		}
		spliced.WriteString("\x1b[0m")
		spliced.WriteString(overlayLine)
		spliced.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < ansi.StringWidth(viewLine) {
			spliced.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}
		viewLines[row] = spliced.String()
	}

	return strings.Join(viewLines, "\n")
}

// CenterOverlay splices a rendered box into the middle of a view of
// the given size.
func CenterOverlay(view, box string, width, height int) string {
	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	anchorX := max((width-boxWidth)/2, 0)
	anchorY := max((height-len(boxLines))/2, 0)
	return SpliceOverlay(view, boxLines, anchorX, anchorY)
}

// Excerpt returns the first maxLines non-blank lines of body, each
// truncated to maxWidth.
func Excerpt(body string, maxWidth, maxLines int) []string {
	var result []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		result = append(result, Truncate(trimmed, maxWidth))
		if len(result) >= maxLines {
			break
		}
	}
	return result
}
