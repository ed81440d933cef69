package stream

import "strings"

// DrainResult holds what one Drain call extracted.
type DrainResult struct {
	Records []Record
	Errors  []*DecodeError
}

// Buffer accumulates raw model output and hands out complete payloads as
// soon as their closing tag has arrived. It is owned by a single goroutine.
type Buffer struct {
	data string
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a chunk to the end of the buffer.
func (b *Buffer) Append(chunk string) {
	b.data += chunk
}

// Drain extracts every complete span, leftmost first. Text in front of a
// span is discarded with it. Spans that fail to decode are removed and
// reported in the result. An open tag without its close tag stays in the
// buffer untouched until more input arrives.
func (b *Buffer) Drain() DrainResult {
	var res DrainResult
	for {
		span, ok := NextSpan(b.data)
		if !ok {
			break
		}
		inner := span.Inner(b.data)
		b.data = b.data[span.End:]

		rec, err := Decode(span.Tag, inner)
		if err != nil {
			res.Errors = append(res.Errors, asDecodeError(span.Tag, err))
			continue
		}
		res.Records = append(res.Records, rec)
	}
	b.compact()
	return res
}

// compact drops leading stray text once no open tag is pending. Anything
// from the last '<' on is kept since it may be the start of a split tag.
func (b *Buffer) compact() {
	if b.data == "" || hasOpenTag(b.data) {
		return
	}
	i := strings.LastIndexByte(b.data, '<')
	if i < 0 {
		b.data = ""
		return
	}
	b.data = b.data[i:]
}

// Remaining returns the unconsumed tail.
func (b *Buffer) Remaining() string {
	return b.data
}

func (b *Buffer) Len() int {
	return len(b.data)
}

func asDecodeError(tag Tag, err error) *DecodeError {
	if de, ok := err.(*DecodeError); ok {
		return de
	}
	return &DecodeError{Tag: tag, Err: err}
}
