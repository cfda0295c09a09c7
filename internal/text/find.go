package text

import (
	"regexp"
	"strings"
)

// FindOptions controls the direction and matching rules of a search.
type FindOptions struct {
	// Backward searches the region before the from offset and returns the
	// last match that ends at or before it.
	Backward bool
	// WholeWords requires the match to be delimited by non-word characters
	// (word characters are letters, digits, and underscore).
	WholeWords bool
}

// Find searches for a literal string starting at the given offset.
// Forward searches return the first match beginning at or after from;
// backward searches return the last match ending at or before from.
func (b *Buffer) Find(needle string, from ByteOffset, opts FindOptions) (Range, bool) {
	if needle == "" {
		return Range{}, false
	}

	b.mu.RLock()
	content := string(b.content)
	b.mu.RUnlock()

	from = clampTo(from, len(content))

	if opts.Backward {
		region := content[:from]
		for {
			i := strings.LastIndex(region, needle)
			if i < 0 {
				return Range{}, false
			}
			r := Range{Start: i, End: i + len(needle)}
			if !opts.WholeWords || isWholeWord(content, r) {
				return r, true
			}
			region = region[:i]
		}
	}

	offset := from
	for {
		i := strings.Index(content[offset:], needle)
		if i < 0 {
			return Range{}, false
		}
		r := Range{Start: offset + i, End: offset + i + len(needle)}
		if !opts.WholeWords || isWholeWord(content, r) {
			return r, true
		}
		offset = r.Start + 1
	}
}

// FindRegex searches for a regexp match starting at the given offset.
// Multiline patterns should carry the (?m) flag so ^ and $ anchor at line
// boundaries. Direction semantics match Find.
func (b *Buffer) FindRegex(re *regexp.Regexp, from ByteOffset, opts FindOptions) (Range, bool) {
	b.mu.RLock()
	content := string(b.content)
	b.mu.RUnlock()

	from = clampTo(from, len(content))

	if opts.Backward {
		locs := re.FindAllStringIndex(content[:from], -1)
		if len(locs) == 0 {
			return Range{}, false
		}
		last := locs[len(locs)-1]
		return Range{Start: last[0], End: last[1]}, true
	}

	loc := re.FindStringIndex(content[from:])
	if loc == nil {
		return Range{}, false
	}
	return Range{Start: from + loc[0], End: from + loc[1]}, true
}

func clampTo(offset ByteOffset, max int) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isWholeWord(content string, r Range) bool {
	if r.Start > 0 && isWordByte(content[r.Start-1]) {
		return false
	}
	if r.End < len(content) && isWordByte(content[r.End]) {
		return false
	}
	return true
}
