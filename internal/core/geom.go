// Package core holds the shared geometry, color and screen types.
// It imports no UI code.
package core

import "math"

// Vec2 is a two-dimensional vector in world units.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// V creates a vector from its components.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales both components by k.
func (v Vec2) Mul(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Abs returns the component-wise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// Half returns v / 2.
func (v Vec2) Half() Vec2 {
	return v.Mul(0.5)
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Box is an axis-aligned bounding box described by its center and size.
type Box struct {
	Center Vec2
	Size   Vec2
}

// Min returns the bottom-left corner.
func (b Box) Min() Vec2 {
	return b.Center.Sub(b.Size.Half())
}

// Max returns the top-right corner.
func (b Box) Max() Vec2 {
	return b.Center.Add(b.Size.Half())
}

// Mat4 is a 4x4 matrix stored row-major: m[row][col].
// Points are column vectors, so Mul(a, b) applies b first.
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for i := range 4 {
		for j := range 4 {
			var sum float64
			for k := range 4 {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Translate post-multiplies m by a translation, like glm::translate.
func (m Mat4) Translate(v Vec2) Mat4 {
	t := Identity()
	t[0][3] = v.X
	t[1][3] = v.Y
	return m.Mul(t)
}

// Scale post-multiplies m by a scale, like glm::scale. The z axis is untouched.
func (m Mat4) Scale(v Vec2) Mat4 {
	s := Identity()
	s[0][0] = v.X
	s[1][1] = v.Y
	return m.Mul(s)
}

// Ortho returns an orthographic projection mapping the given box to
// normalized device coordinates [-1, 1].
func Ortho(left, right, bottom, top, near, far float64) Mat4 {
	m := Identity()
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -2 / (far - near)
	m[0][3] = -(right + left) / (right - left)
	m[1][3] = -(top + bottom) / (top - bottom)
	m[2][3] = -(far + near) / (far - near)
	return m
}

// Apply transforms the point (p.X, p.Y, 0, 1).
func (m Mat4) Apply(p Vec2) Vec2 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][3]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return Vec2{X: x, Y: y}
}

// Inverse2D inverts the xy-affine part of m (the 2x2 linear block plus
// translation). ok is false when that block is singular.
func (m Mat4) Inverse2D() (inv Mat4, ok bool) {
	a, b := m[0][0], m[0][1]
	c, d := m[1][0], m[1][1]
	det := a*d - b*c
	if det == 0 {
		return Mat4{}, false
	}
	tx, ty := m[0][3], m[1][3]

	inv = Identity()
	inv[0][0] = d / det
	inv[0][1] = -b / det
	inv[1][0] = -c / det
	inv[1][1] = a / det
	inv[0][3] = -(inv[0][0]*tx + inv[0][1]*ty)
	inv[1][3] = -(inv[1][0]*tx + inv[1][1]*ty)
	return inv, true
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(o Mat4, eps float64) bool {
	for i := range 4 {
		for j := range 4 {
			if math.Abs(m[i][j]-o[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Sign returns -1, 0 or 1.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
