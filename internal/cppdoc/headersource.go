package cppdoc

import (
	"path/filepath"
	"strings"
	"sync"
)

// PairCache remembers resolved header/source counterparts. One cache
// is shared across all documents of a project so every pair is only
// resolved once. It is safe for concurrent use.
type PairCache struct {
	mu    sync.Mutex
	pairs map[string]string
}

// NewPairCache creates an empty pair cache.
func NewPairCache() *PairCache {
	return &PairCache{pairs: make(map[string]string)}
}

// Get returns the cached counterpart for path.
func (pc *PairCache) Get(path string) (string, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	other, ok := pc.pairs[path]
	return other, ok
}

// Put records path and other as counterparts of each other.
func (pc *PairCache) Put(path, other string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.pairs[path] = other
	pc.pairs[other] = path
}

// Len returns the number of cached entries.
func (pc *PairCache) Len() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return len(pc.pairs)
}

// candidateFileNames returns the file names a counterpart of path
// could have, one per candidate suffix.
func candidateFileNames(path string, suffixes []string) []string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	names := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		names = append(names, base+"."+suffix)
	}
	return names
}

// matchesCandidate reports whether path ends with one of the candidate
// file names, ignoring case.
func matchesCandidate(path string, candidates []string) bool {
	lower := strings.ToLower(path)
	for _, c := range candidates {
		if strings.HasSuffix(lower, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// commonPrefixLen returns the length of the common prefix of a and b,
// ignoring case.
func commonPrefixLen(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// CorrespondingHeaderSource returns the path of the header belonging
// to a source file, or the source belonging to a header. Results are
// cached in both directions. An empty string means no counterpart was
// found.
func (d *Document) CorrespondingHeaderSource() string {
	if other, ok := d.pairs.Get(d.path); ok {
		log.Debugf("counterpart of %s cached as %s", d.path, other)
		return other
	}

	suffixes := d.cfg.Cpp.CandidateSuffixes(d.Suffix())
	candidates := candidateFileNames(d.path, suffixes)

	// A sibling in the same directory wins outright.
	dir := filepath.Dir(d.path)
	for _, name := range candidates {
		candidate := filepath.Join(dir, name)
		if d.fs.Exists(candidate) {
			d.pairs.Put(d.path, candidate)
			log.Debugf("counterpart of %s is %s", d.path, candidate)
			return candidate
		}
	}

	// Otherwise take the project file with the longest common path
	// prefix among those whose name matches a candidate.
	if d.ws != nil {
		best := ""
		bestScore := 0
		for _, file := range d.ws.FilesWithSuffixes(suffixes) {
			if !matchesCandidate(file, candidates) {
				continue
			}
			if score := commonPrefixLen(file, d.path); score > bestScore {
				best = file
				bestScore = score
			}
		}
		if bestScore > 0 {
			d.pairs.Put(d.path, best)
			log.Debugf("counterpart of %s is %s", d.path, best)
			return best
		}
	}

	log.Warningf("no header/source counterpart found for %s", d.path)
	return ""
}

// OpenHeaderSource opens the counterpart document of this one. It
// returns nil without error when no counterpart exists.
func (d *Document) OpenHeaderSource() (*Document, error) {
	path := d.CorrespondingHeaderSource()
	if path == "" {
		return nil, nil
	}
	if d.ws == nil {
		return nil, ErrNoWorkspace
	}
	return d.ws.Open(path)
}
