// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package voiceparse

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/taskdeck/taskdeck/lib/clock"
	"github.com/taskdeck/taskdeck/lib/schema/task"
)

// ErrEmptyTranscript is returned for a transcript with no words.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Parser implements tasksync.Parser.
type Parser struct {
	clock clock.Clock
}

// New returns a Parser resolving relative dates against wallClock.
func New(wallClock clock.Clock) *Parser {
	if wallClock == nil {
		wallClock = clock.Real()
	}
	return &Parser{clock: wallClock}
}

var (
	leadIns = regexp.MustCompile(`^(?i)(?:(?:ok(?:ay)?|hey|so|please)[, ]+)*` +
		`(?:remind me to|remind me that i need to|remind me|i need to|i have to|i must|i should|` +
		`don'?t forget to|add (?:a )?task to|create (?:a )?task to|add (?:a )?task|new task|task)\b[:,]?\s*`)

	trailingNoise = regexp.MustCompile(`(?i)(?:[\s,;:.!?-]+|\s+(?:and|with|by|on|due|it'?s|it is|is|please))+$`)
	spaces        = regexp.MustCompile(`\s+`)
)

type priorityRule struct {
	pattern  *regexp.Regexp
	priority task.Priority
}

// priorityRules are tried in order; "not urgent" must win over
// "urgent".
var priorityRules = []priorityRule{
	{regexp.MustCompile(`(?i)\b(?:it'?s\s+)?(?:low[\s-]priority|priority\s+low|not urgent|no rush|whenever(?: i can)?)\b`), task.PriorityLow},
	{regexp.MustCompile(`(?i)\b(?:it'?s\s+)?(?:urgent(?:ly)?|asap|as soon as possible|critical|right away)\b`), task.PriorityUrgent},
	{regexp.MustCompile(`(?i)\b(?:it'?s\s+)?(?:high[\s-]priority|priority\s+high|important)\b`), task.PriorityHigh},
	{regexp.MustCompile(`(?i)\b(?:medium|normal)[\s-]priority\b`), task.PriorityMedium},
}

const datePrefix = `(?:(?:due|by|on|for|before)\s+)?`

var (
	isoDate         = regexp.MustCompile(`(?i)\b` + datePrefix + `(\d{4}-\d{2}-\d{2})\b`)
	dayAfter        = regexp.MustCompile(`(?i)\b` + datePrefix + `(?:the\s+)?day after tomorrow\b`)
	tomorrow        = regexp.MustCompile(`(?i)\b` + datePrefix + `tomorrow\b`)
	today           = regexp.MustCompile(`(?i)\b` + datePrefix + `(?:today|tonight|this evening)\b`)
	inDuration      = regexp.MustCompile(`(?i)\bin\s+(\d+|a|an|one|two|three|four|five|six|seven|eight|nine|ten)\s+(days?|weeks?)\b`)
	nextWeek        = regexp.MustCompile(`(?i)\b` + datePrefix + `next week\b`)
	weekdayPhrase   = regexp.MustCompile(`(?i)\b` + datePrefix + `(?:next\s+|this\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	monthDayPhrase  = regexp.MustCompile(`(?i)\b` + datePrefix + `(?:the\s+)?(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	numberWords     = map[string]int{"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10}
	weekdays        = map[string]time.Weekday{"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday}
	monthsByPrefix  = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
)

// Parse extracts a candidate from transcript.
func (parser *Parser) Parse(ctx context.Context, transcript string) (task.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return task.Candidate{}, err
	}
	text := strings.TrimSpace(spaces.ReplaceAllString(transcript, " "))
	if text == "" {
		return task.Candidate{}, ErrEmptyTranscript
	}

	var candidate task.Candidate
	text = leadIns.ReplaceAllString(text, "")

	for _, rule := range priorityRules {
		if location := rule.pattern.FindStringIndex(text); location != nil {
			candidate.Priority = task.Some(rule.priority)
			text = cut(text, location)
			break
		}
	}

	if due, location, ok := parser.findDate(text); ok {
		candidate.DueDate = task.Some(due)
		text = cut(text, location)
	}

	if title := cleanTitle(text); title != "" {
		candidate.Title = task.Some(title)
	}
	return candidate, nil
}

// findDate returns the first date phrase in text, trying the most
// specific phrasings first.
func (parser *Parser) findDate(text string) (task.Date, []int, bool) {
	now := parser.clock.Now()
	current := task.DateOf(now)

	if match := isoDate.FindStringSubmatchIndex(text); match != nil {
		if due, err := task.ParseDate(text[match[2]:match[3]]); err == nil {
			return due, match[:2], true
		}
	}
	if match := dayAfter.FindStringIndex(text); match != nil {
		return current.AddDays(2), match, true
	}
	if match := tomorrow.FindStringIndex(text); match != nil {
		return current.AddDays(1), match, true
	}
	if match := today.FindStringIndex(text); match != nil {
		return current, match, true
	}
	if match := inDuration.FindStringSubmatchIndex(text); match != nil {
		count := parseCount(strings.ToLower(text[match[2]:match[3]]))
		unit := strings.ToLower(text[match[4]:match[5]])
		if strings.HasPrefix(unit, "week") {
			count *= 7
		}
		return current.AddDays(count), match[:2], true
	}
	if match := nextWeek.FindStringIndex(text); match != nil {
		return current.AddDays(7), match, true
	}
	if match := weekdayPhrase.FindStringSubmatchIndex(text); match != nil {
		target := weekdays[strings.ToLower(text[match[2]:match[3]])]
		ahead := (int(target) - int(now.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return current.AddDays(ahead), match[:2], true
	}
	if match := monthDayPhrase.FindStringSubmatchIndex(text); match != nil {
		month := monthFromName(strings.ToLower(text[match[2]:match[3]]))
		day, err := strconv.Atoi(text[match[4]:match[5]])
		if err == nil && month != 0 && day >= 1 && day <= daysIn(month, current.Year) {
			due := task.Date{Year: current.Year, Month: month, Day: day}
			if due.Before(current) {
				due.Year++
			}
			return due, match[:2], true
		}
	}
	return task.Date{}, nil, false
}

func parseCount(word string) int {
	if count, ok := numberWords[word]; ok {
		return count
	}
	count, err := strconv.Atoi(word)
	if err != nil {
		return 0
	}
	return count
}

func monthFromName(name string) time.Month {
	for index, prefix := range monthsByPrefix {
		if strings.HasPrefix(name, prefix) {
			return time.Month(index + 1)
		}
	}
	return 0
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// cut removes text[location[0]:location[1]] and rejoins the halves
// with a single space.
func cut(text string, location []int) string {
	return strings.TrimSpace(strings.TrimSpace(text[:location[0]]) + " " + strings.TrimSpace(text[location[1]:]))
}

func cleanTitle(text string) string {
	text = strings.TrimSpace(spaces.ReplaceAllString(text, " "))
	for {
		trimmed := strings.TrimSpace(trailingNoise.ReplaceAllString(text, ""))
		if trimmed == text {
			break
		}
		text = trimmed
	}
	text = strings.TrimLeft(text, " ,;:.-")
	if text == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(first)) + text[size:]
}
