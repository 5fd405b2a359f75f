package rubik

// Renderer receives the vertex buffer of a cubie every time its geometry
// changes. Each buffer holds 36 vertices of x y z r g b u v.
type Renderer interface {
	UpdateBuffer(name string, data []float32)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(name string, data []float32)

// UpdateBuffer implements Renderer.
func (f RendererFunc) UpdateBuffer(name string, data []float32) {
	f(name, data)
}

type nopRenderer struct{}

func (nopRenderer) UpdateBuffer(string, []float32) {}
