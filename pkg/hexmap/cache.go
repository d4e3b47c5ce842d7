// pkg/hexmap/cache.go
package hexmap

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"go-hex-tactics/internal/config"
)

type pathKey struct {
	Start, Goal Hex
	Revision    uint64
}

type rangeKey struct {
	Start    Hex
	Targets  string
	Range    int
	Revision uint64
}

// Pathfinder runs the movement searches over a board. Results are held in
// bounded LRU caches keyed by endpoints, range and the board revision;
// Invalidate must be called after every mutating transaction. A caller
// that needs pure-function behavior (tests, mostly) can disable caching.
type Pathfinder struct {
	board    *Board
	paths    *lru.Cache[pathKey, []Hex]
	ranges   *lru.Cache[rangeKey, RangeResult]
	disabled bool
}

// NewPathfinder builds a pathfinder with the standard cache sizes.
func NewPathfinder(board *Board) *Pathfinder {
	paths, _ := lru.New[pathKey, []Hex](config.PathCacheSize)
	ranges, _ := lru.New[rangeKey, RangeResult](config.TargetCacheSize)
	return &Pathfinder{board: board, paths: paths, ranges: ranges}
}

// SetCaching toggles result caching. Disabling also drops current entries.
func (p *Pathfinder) SetCaching(enabled bool) {
	p.disabled = !enabled
	if p.disabled {
		p.paths.Purge()
		p.ranges.Purge()
	}
}

// Invalidate drops every cached search result. The board revision already
// fences stale entries off; purging keeps dead results from pinning the
// LRU windows.
func (p *Pathfinder) Invalidate() {
	p.paths.Purge()
	p.ranges.Purge()
}

// Cached slices are copied on both store and lookup: callers own their
// results and may mutate them without poisoning later hits.

func (p *Pathfinder) cachedPath(start, goal Hex) ([]Hex, bool) {
	if p.disabled {
		return nil, false
	}
	path, ok := p.paths.Get(pathKey{Start: start, Goal: goal, Revision: p.board.revision})
	if !ok {
		return nil, false
	}
	return append([]Hex(nil), path...), true
}

func (p *Pathfinder) storePath(start, goal Hex, path []Hex) {
	if p.disabled {
		return
	}
	p.paths.Add(pathKey{Start: start, Goal: goal, Revision: p.board.revision},
		append([]Hex(nil), path...))
}

func (p *Pathfinder) cachedRange(start Hex, targetIDs []int, rng int) (RangeResult, bool) {
	if p.disabled {
		return RangeResult{}, false
	}
	result, ok := p.ranges.Get(rangeKey{
		Start:    start,
		Targets:  joinIDs(targetIDs),
		Range:    rng,
		Revision: p.board.revision,
	})
	if !ok {
		return RangeResult{}, false
	}
	result.Targets = append([]int(nil), result.Targets...)
	return result, true
}

func (p *Pathfinder) storeRange(start Hex, targetIDs []int, rng int, result RangeResult) {
	if p.disabled {
		return
	}
	result.Targets = append([]int(nil), result.Targets...)
	p.ranges.Add(rangeKey{
		Start:    start,
		Targets:  joinIDs(targetIDs),
		Range:    rng,
		Revision: p.board.revision,
	}, result)
}

func joinIDs(ids []int) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}
