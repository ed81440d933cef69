package stream

import "strings"

// Tag names one of the payload kinds the model wraps its output in.
type Tag string

const (
	TagGeneralInfo  Tag = "general_info"
	TagDailyPlan    Tag = "daily_plan"
	TagConfirmation Tag = "confirmation"
)

// Tags is the closed set of recognized payload tags.
var Tags = []Tag{TagGeneralInfo, TagDailyPlan, TagConfirmation}

func (t Tag) Open() string  { return "<" + string(t) + ">" }
func (t Tag) Close() string { return "</" + string(t) + ">" }

// Span locates one delimited payload inside a buffer.
//
//	<tag>{...}</tag>
//	^    ^    ^     ^
//	Start     |     End
//	     InnerStart
//	          InnerEnd
type Span struct {
	Tag        Tag
	Start      int
	InnerStart int
	InnerEnd   int
	End        int
}

// Inner returns the payload text between the tags.
func (s Span) Inner(buf string) string {
	return buf[s.InnerStart:s.InnerEnd]
}

// FindSpan returns the first complete span of tag in buf: the leftmost open
// tag and the first matching close tag after it. It reports false when the
// open tag is missing or not yet closed.
func FindSpan(buf string, tag Tag) (Span, bool) {
	open := tag.Open()
	start := strings.Index(buf, open)
	if start < 0 {
		return Span{}, false
	}
	innerStart := start + len(open)

	closeTag := tag.Close()
	rel := strings.Index(buf[innerStart:], closeTag)
	if rel < 0 {
		return Span{}, false
	}
	innerEnd := innerStart + rel

	return Span{
		Tag:        tag,
		Start:      start,
		InnerStart: innerStart,
		InnerEnd:   innerEnd,
		End:        innerEnd + len(closeTag),
	}, true
}

// NextSpan returns the complete span that starts earliest in buf across all
// known tags.
func NextSpan(buf string) (Span, bool) {
	var (
		best  Span
		found bool
	)
	for _, tag := range Tags {
		span, ok := FindSpan(buf, tag)
		if !ok {
			continue
		}
		if !found || span.Start < best.Start {
			best, found = span, true
		}
	}
	return best, found
}

// hasOpenTag reports whether any known open tag appears in buf.
func hasOpenTag(buf string) bool {
	for _, tag := range Tags {
		if strings.Contains(buf, tag.Open()) {
			return true
		}
	}
	return false
}
