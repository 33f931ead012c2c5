package shadergen

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// epstol flags badly conditioned denominators such as fog ranges and
// direction lengths before they turn into NaNs inside the driver.
const epstol = 6e-7

// Material describes one material to generate shaders for: the set of named
// bindings available to the generator trees, the float values behind the
// uniforms among them, and integer feature flags ("ivars") that toggle
// optional sub-trees on and off.
type Material struct {
	vars  Layout
	vals  map[string][]float32
	ivars map[string]int
}

// NewMaterial returns an empty material.
func NewMaterial() *Material {
	return &Material{
		vals:  make(map[string][]float32),
		ivars: make(map[string]int),
	}
}

// SetIVar sets the named feature flag.
func (m *Material) SetIVar(name string, v int) { m.ivars[name] = v }

// IVar returns the named feature flag, or def when absent.
func (m *Material) IVar(name string, def int) int {
	if v, ok := m.ivars[name]; ok {
		return v
	}
	return def
}

// PutAttribute declares a per-vertex attribute the mesh will supply.
func (m *Material) PutAttribute(name string, t VarType) {
	m.vars.Put(Var{Name: name, Type: t, Class: ClassAttribute})
}

// PutTexture declares a texture sampler binding. t must be [Sampler2D] or
// [SamplerCube].
func (m *Material) PutTexture(name string, t VarType) {
	if t != Sampler2D && t != SamplerCube {
		panic("shadergen: PutTexture requires a sampler type for " + name)
	}
	m.vars.Put(Var{Name: name, Type: t, Class: ClassUniform})
}

// SetFloat declares a float uniform with its value.
func (m *Material) SetFloat(name string, v float32) {
	m.put(name, Float, []float32{v})
}

// SetVec2 declares a vec2 uniform with its value.
func (m *Material) SetVec2(name string, v ms2.Vec) {
	m.put(name, Float2, []float32{v.X, v.Y})
}

// SetVec3 declares a vec3 uniform with its value.
func (m *Material) SetVec3(name string, v ms3.Vec) {
	arr := v.Array()
	m.put(name, Float3, arr[:])
}

// SetVec4 declares a vec4 uniform with its value.
func (m *Material) SetVec4(name string, x, y, z, w float32) {
	m.put(name, Float4, []float32{x, y, z, w})
}

// SetColor declares a vec4 color uniform. Components are clamped to [0, 1].
func (m *Material) SetColor(name string, r, g, b, a float32) {
	clamp01 := func(v float32) float32 { return math32.Min(math32.Max(v, 0), 1) }
	m.SetVec4(name, clamp01(r), clamp01(g), clamp01(b), clamp01(a))
}

// SetDirection declares a normalized vec3 uniform. Panics on a zero-length
// direction.
func (m *Material) SetDirection(name string, dir ms3.Vec) {
	if ms3.Norm(dir) < epstol {
		panic("shadergen: zero-length direction for " + name)
	}
	m.SetVec3(name, ms3.Unit(dir))
}

// SetMat3 declares a mat3 uniform with its value in [ms3.Mat3.Array] order.
func (m *Material) SetMat3(name string, m33 ms3.Mat3) {
	arr := m33.Array()
	m.put(name, Mat3, arr[:])
}

// SetMat4 declares a mat4 uniform with its value in [ms3.Mat4.Array] order.
func (m *Material) SetMat4(name string, m44 ms3.Mat4) {
	arr := m44.Array()
	m.put(name, Mat4, arr[:])
}

// SetFogRange declares the linear fog parameter uniform from a start and end
// distance: a vec2 of (end, 1/(end-start)). Panics on an empty range.
func (m *Material) SetFogRange(name string, start, end float32) {
	if math32.Abs(end-start) < epstol {
		panic("shadergen: empty fog range")
	}
	m.SetVec2(name, ms2.Vec{X: end, Y: 1 / (end - start)})
}

// Value returns the float data stored for a uniform, or nil when the binding
// carries no value (attributes, samplers, unknown names).
func (m *Material) Value(name string) []float32 {
	return m.vals[name]
}

// Layout returns an independent copy of the material's variable layout.
func (m *Material) Layout() Layout { return m.vars.Clone() }

func (m *Material) put(name string, t VarType, val []float32) {
	m.vars.Put(Var{Name: name, Type: t, Class: ClassUniform})
	stored := make([]float32, len(val))
	copy(stored, val)
	m.vals[name] = stored
}
