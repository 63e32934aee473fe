// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = sync.OnceValue(func() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
})

// RenderMarkdown renders a task description as styled terminal text
// wrapped to width. Soft line breaks reflow; hard breaks, lists, and
// code blocks keep their shape. Fenced code with a language tag is
// syntax highlighted.
func RenderMarkdown(source string, theme Theme, width int) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	input := []byte(source)
	document := markdownParser().Parser().Parse(text.NewReader(input))

	// Always emit 256-color escapes; the output is drawn inside the
	// TUI even when profile detection would say otherwise.
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)

	writer := &markdownWriter{
		source:   input,
		theme:    theme,
		width:    max(width, 10),
		renderer: renderer,
	}
	writer.children(document, "", "", false)
	for len(writer.lines) > 0 && writer.lines[len(writer.lines)-1] == "" {
		writer.lines = writer.lines[:len(writer.lines)-1]
	}
	return strings.Join(writer.lines, "\n")
}

type markdownWriter struct {
	source   []byte
	theme    Theme
	width    int
	renderer *lipgloss.Renderer
	lines    []string
}

type inlineStyle struct {
	bold, italic, strike bool
}

func (writer *markdownWriter) style() lipgloss.Style {
	return writer.renderer.NewStyle()
}

func (writer *markdownWriter) faint(content string) string {
	return writer.style().Foreground(writer.theme.FaintText).Render(content)
}

func (writer *markdownWriter) blank() {
	if len(writer.lines) > 0 && writer.lines[len(writer.lines)-1] != "" {
		writer.lines = append(writer.lines, "")
	}
}

// emit wraps content to the space left after the prefix. The first
// output line takes first as its prefix, the rest take rest.
func (writer *markdownWriter) emit(content, first, rest string) {
	available := max(writer.width-ansi.StringWidth(rest), 10)
	wrapped := ansi.Wrap(content, available, " -")
	writer.emitLines(strings.Split(wrapped, "\n"), first, rest)
}

func (writer *markdownWriter) emitLines(lines []string, first, rest string) {
	for index, line := range lines {
		prefix := rest
		if index == 0 {
			prefix = first
		}
		writer.lines = append(writer.lines, prefix+line)
	}
}

// children renders each block child of parent. Siblings are separated
// by a blank line unless tight.
func (writer *markdownWriter) children(parent ast.Node, first, rest string, tight bool) {
	index := 0
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if index > 0 && !tight {
			writer.blank()
		}
		prefix := rest
		if index == 0 {
			prefix = first
		}
		writer.block(child, prefix, rest)
		index++
	}
}

func (writer *markdownWriter) block(node ast.Node, first, rest string) {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		writer.emit(writer.inline(node, inlineStyle{}), first, rest)

	case *ast.Heading:
		style := writer.style().Bold(true).Foreground(writer.theme.NormalText)
		if node.Level <= 2 {
			style = style.Foreground(writer.theme.HeaderForeground)
		}
		writer.emit(style.Render(ansi.Strip(writer.inline(node, inlineStyle{}))), first, rest)

	case *ast.FencedCodeBlock:
		code := writer.rawLines(node)
		writer.emitLines(strings.Split(writer.highlight(code, string(node.Language(writer.source))), "\n"), first, rest)

	case *ast.CodeBlock:
		writer.emitLines(strings.Split(writer.faint(writer.rawLines(node)), "\n"), first, rest)

	case *ast.Blockquote:
		bar := writer.style().Foreground(writer.theme.BorderColor).Render("│ ")
		writer.children(node, first+bar, rest+bar, false)

	case *ast.List:
		writer.list(node, first, rest)

	case *ast.ThematicBreak:
		rule := strings.Repeat("─", max(writer.width-ansi.StringWidth(rest), 1))
		writer.lines = append(writer.lines, first+writer.style().Foreground(writer.theme.BorderColor).Render(rule))

	case *extast.Table:
		writer.table(node, first, rest)

	case *ast.HTMLBlock:
		if raw := strings.TrimSpace(writer.rawLines(node)); raw != "" {
			writer.emitLines(strings.Split(writer.faint(raw), "\n"), first, rest)
		}

	default:
		writer.children(node, first, rest, false)
	}
}

func (writer *markdownWriter) list(list *ast.List, first, rest string) {
	number := list.Start
	index := 0
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if index > 0 && !list.IsTight {
			writer.blank()
		}
		bullet := "- "
		if list.IsOrdered() {
			bullet = fmt.Sprintf("%d. ", number)
			number++
		}
		prefix := rest
		if index == 0 {
			prefix = first
		}
		indent := strings.Repeat(" ", len(bullet))
		writer.children(item, prefix+bullet, rest+indent, list.IsTight)
		index++
	}
}

func (writer *markdownWriter) table(table *extast.Table, first, rest string) {
	var rows []string
	header := writer.style().Bold(true).Foreground(writer.theme.NormalText)
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, writer.inline(cell, inlineStyle{}))
		}
		line := strings.Join(cells, writer.faint(" │ "))
		if row.Kind() == extast.KindTableHeader {
			line = header.Render(ansi.Strip(line))
		}
		rows = append(rows, Truncate(line, writer.width-ansi.StringWidth(rest)))
	}
	writer.emitLines(rows, first, rest)
}

func (writer *markdownWriter) rawLines(node ast.Node) string {
	var content strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		content.Write(segment.Value(writer.source))
	}
	return strings.TrimRight(content.String(), "\n")
}

// highlight colors code with chroma. Unknown languages and errors fall
// back to faint plain text.
func (writer *markdownWriter) highlight(code, language string) string {
	if language == "" {
		return writer.faint(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return writer.faint(code)
	}
	return strings.TrimRight(buffer.String(), "\n")
}

func (writer *markdownWriter) inline(parent ast.Node, style inlineStyle) string {
	var out strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			out.WriteString(writer.styled(string(child.Segment.Value(writer.source)), style))
			switch {
			case child.HardLineBreak():
				out.WriteString("\n")
			case child.SoftLineBreak():
				out.WriteString(" ")
			}
		case *ast.String:
			out.WriteString(writer.styled(string(child.Value), style))
		case *ast.Emphasis:
			nested := style
			if child.Level >= 2 {
				nested.bold = true
			} else {
				nested.italic = true
			}
			out.WriteString(writer.inline(child, nested))
		case *extast.Strikethrough:
			nested := style
			nested.strike = true
			out.WriteString(writer.inline(child, nested))
		case *ast.CodeSpan:
			var code strings.Builder
			for segment := child.FirstChild(); segment != nil; segment = segment.NextSibling() {
				if textNode, ok := segment.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(writer.source))
				}
			}
			out.WriteString(writer.faint(code.String()))
		case *ast.Link:
			out.WriteString(writer.inline(child, style))
			if destination := string(child.Destination); destination != "" {
				out.WriteString(" " + writer.faint("("+destination+")"))
			}
		case *ast.AutoLink:
			out.WriteString(writer.faint(string(child.URL(writer.source))))
		case *ast.Image:
			out.WriteString(writer.faint("[" + ansi.Strip(writer.inline(child, style)) + "]"))
		case *extast.TaskCheckBox:
			if child.IsChecked {
				out.WriteString(writer.style().Foreground(writer.theme.StatusDone).Render("[x]") + " ")
			} else {
				out.WriteString(writer.styled("[ ] ", style))
			}
		case *ast.RawHTML:
			// Dropped; descriptions are plain text with markdown.
		default:
			out.WriteString(writer.inline(child, style))
		}
	}
	return out.String()
}

func (writer *markdownWriter) styled(content string, style inlineStyle) string {
	return writer.style().
		Foreground(writer.theme.NormalText).
		Bold(style.bold).
		Italic(style.italic).
		Strikethrough(style.strike).
		Render(content)
}
