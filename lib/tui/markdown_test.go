// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func plainMarkdown(input string, width int) string {
	return ansi.Strip(RenderMarkdown(input, DefaultTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	for _, input := range []string{"", "   \n\n"} {
		if got := RenderMarkdown(input, DefaultTheme, 80); got != "" {
			t.Errorf("RenderMarkdown(%q) = %q, want empty", input, got)
		}
	}
}

func TestRenderMarkdownReflowsSoftBreaks(t *testing.T) {
	got := plainMarkdown("Review pull requests\nfrom the team", 80)
	if got != "Review pull requests from the team" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	input := "Write and submit the quarterly project proposal to every stakeholder before the review."
	for _, line := range strings.Split(plainMarkdown(input, 30), "\n") {
		if width := ansi.StringWidth(line); width > 30 {
			t.Errorf("line %q is %d cells wide, limit 30", line, width)
		}
	}
}

func TestRenderMarkdownHardBreak(t *testing.T) {
	got := plainMarkdown("Line one  \nLine two", 80)
	if !strings.Contains(got, "Line one\nLine two") {
		t.Errorf("hard break lost: %q", got)
	}
}

func TestRenderMarkdownParagraphsSeparated(t *testing.T) {
	got := plainMarkdown("# Plan\n\nFirst paragraph.\n\nSecond paragraph.", 80)
	want := "Plan\n\nFirst paragraph.\n\nSecond paragraph."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderMarkdownLists(t *testing.T) {
	got := plainMarkdown("- alpha\n- beta\n  - nested\n\n3. three\n4. four", 80)
	for _, want := range []string{"- alpha\n- beta", "  - nested", "3. three\n4. four"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestRenderMarkdownTaskCheckboxes(t *testing.T) {
	got := plainMarkdown("- [x] slides\n- [ ] agenda", 80)
	if !strings.Contains(got, "- [x] slides") || !strings.Contains(got, "- [ ] agenda") {
		t.Errorf("checkboxes missing: %q", got)
	}
}

func TestRenderMarkdownCodeFence(t *testing.T) {
	got := plainMarkdown("Run:\n\n```sql\nSELECT 1;\n```\n", 80)
	if !strings.Contains(got, "SELECT 1;") {
		t.Errorf("code lost: %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("fence markers rendered: %q", got)
	}
}

func TestRenderMarkdownLinks(t *testing.T) {
	got := plainMarkdown("See [the docs](https://example.com/api).", 80)
	if got != "See the docs (https://example.com/api)." {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownBlockquote(t *testing.T) {
	got := plainMarkdown("> quoted text", 80)
	if got != "│ quoted text" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownEmitsColor(t *testing.T) {
	if styled := RenderMarkdown("**bold**", DefaultTheme, 80); !strings.Contains(styled, "\x1b[") {
		t.Errorf("expected ANSI styling, got %q", styled)
	}
}
