package pathutil

import (
	"strconv"
	"strings"
	"sync"
)

type segment struct {
	name    string
	index   int
	isIndex bool
}

// PathBuilder provides efficient incremental path construction.
// Uses push/pop semantics to avoid allocations during traversal.
// The same segments can be rendered as a display path or a JSON pointer.
type PathBuilder struct {
	segments []segment
}

// Push adds a named segment to the path.
func (p *PathBuilder) Push(name string) {
	p.segments = append(p.segments, segment{name: name})
}

// PushIndex adds a sequence index segment.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, segment{index: i, isIndex: true})
}

// Pop removes the last segment.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int {
	return len(p.segments)
}

// String renders the display form: "methods[2].params[0].schema".
func (p *PathBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	for i, seg := range p.segments {
		if seg.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.name)
	}
	return b.String()
}

// Pointer renders the JSON pointer form: "#/methods/2/params/0/schema".
func (p *PathBuilder) Pointer() string {
	tokens := make([]string, len(p.segments))
	for i, seg := range p.segments {
		if seg.isIndex {
			tokens[i] = strconv.Itoa(seg.index)
		} else {
			tokens[i] = seg.name
		}
	}
	return JoinPointer(tokens...)
}

const (
	defaultPathCap = 8  // Most paths are <8 segments deep
	maxPathCap     = 64 // Don't pool excessively deep paths
)

var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{segments: make([]segment, 0, defaultPathCap)}
	},
}

// Get retrieves a PathBuilder from the pool, reset and ready to use.
func Get() *PathBuilder {
	p := pathBuilderPool.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns a PathBuilder to the pool if not oversized.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPathCap {
		return
	}
	pathBuilderPool.Put(p)
}
