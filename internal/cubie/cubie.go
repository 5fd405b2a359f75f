// Package cubie holds the geometry of the 26 cubies: vertex positions,
// per-vertex colors and texture coordinates, and the rotation applier that
// turns a group of them about a world axis.
package cubie

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SeamusWaldron/rubik/internal/cube"
	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Geometry constants.
const (
	VerticesPerFace = 6  // two triangles
	VertexCount     = 36 // 6 faces x 6 vertices
	Stride          = 8  // x y z r g b u v
	Spacing         = 1.02
	HalfSize        = 0.5
)

// Interior is the color of faces hidden inside the cube.
var Interior = mgl32.Vec3{0.2, 0.2, 0.2}

// Colors maps each face to its sticker color.
var Colors = map[types.Layer]mgl32.Vec3{
	types.LayerU: {1, 1, 1},     // white
	types.LayerL: {1, 0.5, 0},   // orange
	types.LayerF: {0, 0.6, 0.2}, // green
	types.LayerR: {0.8, 0, 0},   // red
	types.LayerB: {0, 0.3, 0.9}, // blue
	types.LayerD: {1, 0.85, 0},  // yellow
}

// Cubie is one of the 26 visible sub-cubes. Vertex data is stored face by
// face in types.Faces order, six vertices per face.
type Cubie struct {
	Name      string
	Positions [VertexCount]mgl32.Vec3
	Colors    [VertexCount]mgl32.Vec3
	TexCoords [VertexCount]mgl32.Vec2
	Active    [6]bool
}

// faceBasis is the outward normal and two in-plane tangents (u x v = n) of
// each face of a cubie.
var faceBasis = [6][3]mgl32.Vec3{
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},  // U
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},  // L
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},   // F
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},  // R
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}}, // B
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},  // D
}

// Quad corners in (u, v) units and matching texture coordinates.
var (
	quadCorners = [VerticesPerFace][2]float32{{-1, -1}, {1, -1}, {1, 1}, {1, 1}, {-1, 1}, {-1, -1}}
	quadUV      = [VerticesPerFace]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {1, 1}, {0, 1}, {0, 0}}
)

// New builds the cubie with the given name at its solved position.
func New(name string) *Cubie {
	c := &Cubie{Name: name}
	c.build()
	return c
}

func (c *Cubie) build() {
	center := lattice(SolvedPos(c.Name)).Mul(Spacing)

	for f, face := range types.Faces {
		c.Active[f] = strings.Contains(c.Name, string(face))

		n, u, v := faceBasis[f][0], faceBasis[f][1], faceBasis[f][2]
		faceCenter := center.Add(n.Mul(HalfSize))

		for i, corner := range quadCorners {
			k := f*VerticesPerFace + i
			c.Positions[k] = faceCenter.Add(u.Mul(corner[0] * HalfSize)).Add(v.Mul(corner[1] * HalfSize))
			if c.Active[f] {
				c.Colors[k] = Colors[face]
				c.TexCoords[k] = quadUV[i]
			} else {
				c.Colors[k] = Interior
				c.TexCoords[k] = mgl32.Vec2{}
			}
		}
	}
}

// SolvedPos returns the lattice position a cubie name denotes.
func SolvedPos(name string) cube.Pos {
	var p cube.Pos
	for _, r := range name {
		switch r {
		case 'L':
			p[cube.AxisX] = -1
		case 'R':
			p[cube.AxisX] = 1
		case 'U':
			p[cube.AxisY] = 1
		case 'D':
			p[cube.AxisY] = -1
		case 'F':
			p[cube.AxisZ] = 1
		case 'B':
			p[cube.AxisZ] = -1
		}
	}
	return p
}

func lattice(p cube.Pos) mgl32.Vec3 {
	return mgl32.Vec3{float32(p[0]), float32(p[1]), float32(p[2])}
}

// Center returns the centroid of the cubie's vertices.
func (c *Cubie) Center() mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, p := range c.Positions {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / VertexCount)
}

// Lattice returns the grid position the cubie currently sits on.
func (c *Cubie) Lattice() cube.Pos {
	ctr := c.Center().Mul(1.0 / Spacing)
	var p cube.Pos
	for i := 0; i < 3; i++ {
		p[i] = int(mgl32.Round(ctr[i], 0))
	}
	return p
}

// faceNormal returns the current outward normal of face f.
func (c *Cubie) faceNormal(f int) mgl32.Vec3 {
	k := f * VerticesPerFace
	a, b, d := c.Positions[k], c.Positions[k+1], c.Positions[k+2]
	return b.Sub(a).Cross(d.Sub(a)).Normalize()
}

// StickerToward returns the original face whose sticker currently points
// closest to dir, and whether that face carries a sticker.
func (c *Cubie) StickerToward(dir mgl32.Vec3) (types.Layer, bool) {
	best, bestDot := 0, float32(-2)
	for f := range types.Faces {
		if d := c.faceNormal(f).Dot(dir); d > bestDot {
			best, bestDot = f, d
		}
	}
	return types.Faces[best], c.Active[best]
}

// Buffer returns the interleaved vertex attributes (x y z r g b u v).
func (c *Cubie) Buffer() []float32 {
	out := make([]float32, 0, VertexCount*Stride)
	for i := 0; i < VertexCount; i++ {
		p, col, uv := c.Positions[i], c.Colors[i], c.TexCoords[i]
		out = append(out, p[0], p[1], p[2], col[0], col[1], col[2], uv[0], uv[1])
	}
	return out
}
