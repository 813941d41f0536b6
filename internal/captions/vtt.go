// Package captions converts downloaded WebVTT subtitles into transcript files.
package captions

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"narrative-assembly/models"
)

var (
	// inline karaoke timestamps such as <00:00:01.520> are not valid HTML tags
	inlineTimestamp = regexp.MustCompile(`<\d[^>]*>`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// ParseVTT reads cues in file order. Cues with no text or a non-positive
// duration are dropped. Times are rounded to milliseconds.
func ParseVTT(r io.Reader) ([]models.TranscriptSegment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var segments []models.TranscriptSegment
	var (
		inCue      bool
		start, end float64
		text       []string
	)

	flush := func() error {
		if !inCue {
			return nil
		}
		inCue = false
		cleaned, err := StripMarkup(strings.Join(text, " "))
		text = text[:0]
		if err != nil {
			return err
		}
		dur := round3(end - start)
		if cleaned == "" || dur <= 0 {
			return nil
		}
		segments = append(segments, models.TranscriptSegment{Start: round3(start), Dur: dur, Text: cleaned})
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		if strings.Contains(line, "-->") {
			if err := flush(); err != nil {
				return nil, err
			}
			s, e, err := parseTiming(line)
			if err != nil {
				return nil, err
			}
			start, end, inCue = s, e, true
			continue
		}

		if inCue {
			text = append(text, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return segments, nil
}

// parseTiming reads "00:00:01.000 --> 00:00:04.000 align:start position:0%".
func parseTiming(line string) (float64, float64, error) {
	left, right, _ := strings.Cut(line, "-->")
	startField := strings.Fields(left)
	endField := strings.Fields(right)
	if len(startField) == 0 || len(endField) == 0 {
		return 0, 0, fmt.Errorf("malformed cue timing %q", line)
	}

	start, err := ParseTimestamp(startField[len(startField)-1])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(endField[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseTimestamp converts HH:MM:SS.mmm or MM:SS.mmm to seconds.
func ParseTimestamp(ts string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(ts), ":")
	var seconds float64
	for i, p := range parts {
		if i < len(parts)-1 {
			n, err := strconv.Atoi(p)
			if err != nil {
				return 0, fmt.Errorf("invalid timestamp %q", ts)
			}
			seconds = seconds*60 + float64(n)
			continue
		}
		s, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", ts)
		}
		seconds = seconds*60 + s
	}
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}
	return seconds, nil
}

// StripMarkup removes cue tags such as <c>, <i> and <v Speaker>, decodes
// entities and collapses whitespace.
func StripMarkup(text string) (string, error) {
	text = inlineTimestamp.ReplaceAllString(text, "")
	if strings.ContainsAny(text, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
		if err != nil {
			return "", fmt.Errorf("failed to parse cue markup: %w", err)
		}
		text = doc.Text()
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " ")), nil
}

// Dedupe folds the rolling captions auto-generated subtitles produce. A cue
// repeating the previous text extends it; a cue whose text is contained in the
// previous one is dropped.
func Dedupe(segments []models.TranscriptSegment) []models.TranscriptSegment {
	if len(segments) == 0 {
		return segments
	}
	out := []models.TranscriptSegment{segments[0]}
	for _, seg := range segments[1:] {
		prev := &out[len(out)-1]
		switch {
		case seg.Text == prev.Text:
			prev.Dur = round3(seg.End() - prev.Start)
		case strings.Contains(prev.Text, seg.Text):
			continue
		default:
			out = append(out, seg)
		}
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
