// pkg/hexmap/hex.go
package hexmap

import (
	"errors"
	"fmt"
	"math"

	"go-hex-tactics/pkg/utils"
)

// ErrInvalidCoordinate is returned when a cube triple violates q+r+s=0.
var ErrInvalidCoordinate = errors.New("hexmap: invalid coordinate")

// Hex represents a hex in axial coordinates (Q, R). The third cube
// coordinate is implicit: S = -Q-R.
type Hex struct {
	Q, R int
}

// Direction indexes into NeighborDirections.
const (
	DirE = iota
	DirNE
	DirNW
	DirW
	DirSW
	DirSE
)

// NeighborDirections defines the 6 possible directions from a hex.
// The order is fixed: targeting conventions index into it by name.
var NeighborDirections = []Hex{
	{Q: 1, R: 0},  // E
	{Q: 1, R: -1}, // NE
	{Q: 0, R: -1}, // NW
	{Q: -1, R: 0}, // W
	{Q: -1, R: 1}, // SW
	{Q: 0, R: 1},  // SE
}

// NewHex builds a hex from a full cube triple, failing when the triple
// does not lie on the q+r+s=0 plane.
func NewHex(q, r, s int) (Hex, error) {
	if q+r+s != 0 {
		return Hex{}, fmt.Errorf("%w: (%d,%d,%d)", ErrInvalidCoordinate, q, r, s)
	}
	return Hex{Q: q, R: r}, nil
}

// S returns the implicit third cube coordinate.
func (h Hex) S() int {
	return -h.Q - h.R
}

// Add returns the sum of two hexes.
func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R}
}

// Subtract returns the difference of two hexes.
func (h Hex) Subtract(other Hex) Hex {
	return Hex{Q: h.Q - other.Q, R: h.R - other.R}
}

// Scale multiplies a hex vector by a scalar.
func (h Hex) Scale(factor int) Hex {
	return Hex{Q: h.Q * factor, R: h.R * factor}
}

// Neighbor returns the adjacent hex in the given direction (0..5).
func (h Hex) Neighbor(dir int) Hex {
	return h.Add(NeighborDirections[dir])
}

// AllPossibleNeighbors returns all six adjacent hexes.
func (h Hex) AllPossibleNeighbors() []Hex {
	out := make([]Hex, 6)
	for i, d := range NeighborDirections {
		out[i] = h.Add(d)
	}
	return out
}

// Distance computes the exact hex distance between two hexes.
func (h Hex) Distance(to Hex) int {
	dq := h.Q - to.Q
	dr := h.R - to.R
	return (utils.Abs(dq) + utils.Abs(dr) + utils.Abs(dq+dr)) / 2
}

// Key returns the canonical string form of the coordinate.
func (h Hex) Key() string {
	return fmt.Sprintf("%d,%d", h.Q, h.R)
}

const Sqrt3 = 1.7320508075688772

// ToPixel converts a hex to pixel coordinates (pointy top orientation),
// relative to the origin hex.
func (h Hex) ToPixel(hexSize float64) (x, y float64) {
	x = hexSize * (Sqrt3*float64(h.Q) + Sqrt3/2*float64(h.R))
	y = hexSize * (3.0 / 2.0 * float64(h.R))
	return
}

// PixelToHex converts origin-relative pixel coordinates to the nearest hex.
func PixelToHex(x, y, hexSize float64) Hex {
	q := (Sqrt3/3*x - 1.0/3*y) / hexSize
	r := (2.0 / 3 * y) / hexSize
	return axialRound(q, r)
}

func axialRound(q, r float64) Hex {
	s := -q - r
	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)
	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)
	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	}
	return Hex{Q: int(rq), R: int(rr)}
}
