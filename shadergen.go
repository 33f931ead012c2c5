// Package shadergen generates GLSL vertex and fragment program pairs for
// fixed-function style materials (texturing, lighting, fog, reflections)
// from immutable trees of generator nodes.
//
// A [ShaderNode] either produces a GLSL expression fragment or reports that
// its inputs are unavailable; combinator nodes propagate or absorb those
// failures so a single generator tree adapts to whatever variables a
// [Material] actually provides. A [ShaderContext] drives one generation pass
// over a vertex and fragment [ShaderDef], hoists shared sub-expressions into
// dependency-ordered temporaries and assembles the final source text along
// with the set of variables each stage consumed.
package shadergen

import "sort"

// VarType tags the GLSL type of a variable or generated expression.
type VarType uint8

const (
	InvalidType VarType = iota
	Float
	Float2
	Float3
	Float4
	Mat3
	Mat4
	Sampler2D
	SamplerCube
)

// GLSL returns the GLSL spelling of the type, i.e. "vec4" for [Float4].
func (t VarType) GLSL() string {
	switch t {
	case Float:
		return "float"
	case Float2:
		return "vec2"
	case Float3:
		return "vec3"
	case Float4:
		return "vec4"
	case Mat3:
		return "mat3"
	case Mat4:
		return "mat4"
	case Sampler2D:
		return "sampler2D"
	case SamplerCube:
		return "samplerCube"
	}
	return "invalid"
}

// Components returns the number of float components the type occupies, or 0
// for sampler and invalid types.
func (t VarType) Components() int {
	switch t {
	case Float:
		return 1
	case Float2:
		return 2
	case Float3:
		return 3
	case Float4:
		return 4
	case Mat3:
		return 9
	case Mat4:
		return 16
	}
	return 0
}

// VarClass distinguishes how a variable enters a shader stage.
type VarClass uint8

const (
	ClassUniform VarClass = iota
	ClassAttribute
	ClassVarying
)

func (c VarClass) String() string {
	switch c {
	case ClassUniform:
		return "uniform"
	case ClassAttribute:
		return "attribute"
	case ClassVarying:
		return "varying"
	}
	return "invalid"
}

// Var is a single named binding known to a shader stage.
type Var struct {
	Name  string
	Type  VarType
	Class VarClass
}

// Layout is a lookup table of the named bindings that exist for a shader
// stage. The zero value is an empty, usable layout. Generation also uses
// Layouts to report back which bindings a stage actually consumed.
type Layout struct {
	vars map[string]Var
}

// Put adds or replaces a variable in the layout.
func (l *Layout) Put(v Var) {
	if l.vars == nil {
		l.vars = make(map[string]Var)
	}
	l.vars[v.Name] = v
}

// Find returns the variable with the given name if present.
func (l *Layout) Find(name string) (Var, bool) {
	v, ok := l.vars[name]
	return v, ok
}

// Has reports whether the layout contains name.
func (l *Layout) Has(name string) bool {
	_, ok := l.vars[name]
	return ok
}

// Len returns the number of variables in the layout.
func (l *Layout) Len() int { return len(l.vars) }

// Vars returns the layout's variables sorted by name.
func (l *Layout) Vars() []Var {
	vars := make([]Var, 0, len(l.vars))
	for _, v := range l.vars {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}

// Clone returns an independent copy of the layout.
func (l *Layout) Clone() Layout {
	var c Layout
	for _, v := range l.vars {
		c.Put(v)
	}
	return c
}
