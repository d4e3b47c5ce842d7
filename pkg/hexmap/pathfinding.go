// pkg/hexmap/pathfinding.go
package hexmap

import (
	"container/heap"
	"sort"

	"go-hex-tactics/internal/config"
)

// Passable decides whether a search may step onto a tile. The default
// predicate admits any non-blocked, unoccupied tile.
type Passable func(*Tile) bool

// DefaultPassable is the traversability rule used when callers pass nil.
func DefaultPassable(t *Tile) bool {
	return t.State.Traversable() && !t.Occupied
}

// ShortestPath runs A* from start to goal over the board, using the exact
// hex distance as the heuristic. It returns the ordered hex sequence
// including both endpoints, or nil when no path exists. The search gives
// up after config.MaxAStarExpansions node expansions and reports no path
// rather than hanging; the start and goal tiles themselves are exempt
// from the passability predicate.
func (p *Pathfinder) ShortestPath(start, goal Hex, pass Passable) []Hex {
	// Only searches under the default predicate are cached: the cache key
	// cannot see a custom closure.
	cacheable := pass == nil
	if pass == nil {
		pass = DefaultPassable
	}
	if !p.board.Contains(start) || !p.board.Contains(goal) {
		return nil
	}
	if cacheable {
		if cached, ok := p.cachedPath(start, goal); ok {
			return cached
		}
	}
	path := p.astar(start, goal, pass)
	if cacheable {
		p.storePath(start, goal, path)
	}
	return path
}

func (p *Pathfinder) astar(start, goal Hex, pass Passable) []Hex {
	pq := &priorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &pathNode{Hex: start})
	costSoFar := map[Hex]int{start: 0}
	closed := make(map[Hex]struct{})
	expansions := 0
	for pq.Len() > 0 {
		current := heap.Pop(pq).(*pathNode)
		if current.Hex == goal {
			return reconstructPath(current)
		}
		if _, done := closed[current.Hex]; done {
			continue
		}
		closed[current.Hex] = struct{}{}
		expansions++
		if expansions > config.MaxAStarExpansions {
			return nil
		}
		for _, neighbor := range current.Hex.AllPossibleNeighbors() {
			tile, ok := p.board.tiles[neighbor]
			if !ok {
				continue
			}
			if neighbor != goal && !pass(tile) {
				continue
			}
			if _, done := closed[neighbor]; done {
				continue
			}
			newCost := costSoFar[current.Hex] + 1
			if old, seen := costSoFar[neighbor]; !seen || newCost < old {
				costSoFar[neighbor] = newCost
				heap.Push(pq, &pathNode{
					Hex:    neighbor,
					Cost:   newCost + neighbor.Distance(goal),
					Parent: current,
				})
			}
		}
	}
	return nil
}

// RangeResult is the outcome of MinMovesToRange: the minimal number of
// moves after which at least one target is within attack range, and every
// target reachable at exactly that depth, ordered by position ID.
type RangeResult struct {
	Moves   int
	Targets []int
}

// MinMovesToRange walks ring by ring outward from start and, at each
// depth, tests every newly visited tile against every target for hex
// distance within rng. It stops at the first depth where one or more
// targets come into range and returns all of them, so downstream
// tie-breaking sees the full tie. The search reports failure past
// config.MaxSearchDepth moves. Depth 0 is the start tile itself.
func (p *Pathfinder) MinMovesToRange(start Hex, targetIDs []int, rng int, pass Passable) (RangeResult, bool) {
	cacheable := pass == nil
	if pass == nil {
		pass = DefaultPassable
	}
	if !p.board.Contains(start) || len(targetIDs) == 0 || rng < 1 {
		return RangeResult{}, false
	}
	if cacheable {
		if cached, ok := p.cachedRange(start, targetIDs, rng); ok {
			return cached, true
		}
	}

	targets := make([]*Tile, 0, len(targetIDs))
	for _, id := range targetIDs {
		if tile, ok := p.board.byID[id]; ok {
			targets = append(targets, tile)
		}
	}
	if len(targets) == 0 {
		return RangeResult{}, false
	}

	visited := map[Hex]struct{}{start: {}}
	frontier := []Hex{start}
	for depth := 0; depth <= config.MaxSearchDepth; depth++ {
		hits := make(map[int]struct{})
		for _, pos := range frontier {
			for _, target := range targets {
				if pos.Distance(target.Coord) <= rng {
					hits[target.ID] = struct{}{}
				}
			}
		}
		if len(hits) > 0 {
			result := RangeResult{Moves: depth, Targets: make([]int, 0, len(hits))}
			for id := range hits {
				result.Targets = append(result.Targets, id)
			}
			sort.Ints(result.Targets)
			if cacheable {
				p.storeRange(start, targetIDs, rng, result)
			}
			return result, true
		}
		var next []Hex
		for _, pos := range frontier {
			for _, neighbor := range pos.AllPossibleNeighbors() {
				if _, seen := visited[neighbor]; seen {
					continue
				}
				tile, ok := p.board.tiles[neighbor]
				if !ok || !pass(tile) {
					continue
				}
				visited[neighbor] = struct{}{}
				next = append(next, neighbor)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return RangeResult{}, false
}

type pathNode struct {
	Hex    Hex
	Cost   int
	Parent *pathNode
}

type priorityQueue []*pathNode

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].Cost < pq[j].Cost }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*pathNode)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

func reconstructPath(node *pathNode) []Hex {
	var path []Hex
	for node != nil {
		path = append(path, node.Hex)
		node = node.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
