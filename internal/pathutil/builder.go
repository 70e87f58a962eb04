package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder provides incremental location construction for fix reports.
// The zero value is an empty path ready to use.
type PathBuilder struct {
	segments []string
}

// New returns a builder starting with the given segments.
func New(segments ...string) *PathBuilder {
	p := &PathBuilder{}
	for _, s := range segments {
		p.Push(s)
	}
	return p
}

// Push adds an object key segment.
func (p *PathBuilder) Push(key string) {
	if key == "" || strings.ContainsAny(key, ".[]") {
		p.segments = append(p.segments, "["+strconv.Quote(key)+"]")
		return
	}
	p.segments = append(p.segments, key)
}

// PushIndex adds an array index segment: "[0]", "[1]", etc.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, "["+strconv.Itoa(i)+"]")
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// Child returns the current path extended by key without modifying p.
func (p *PathBuilder) Child(key string) string {
	p.Push(key)
	s := p.String()
	p.Pop()
	return s
}

// String materializes the full path.
func (p *PathBuilder) String() string {
	var b strings.Builder
	for i, seg := range p.segments {
		if i > 0 && seg[0] != '[' {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
