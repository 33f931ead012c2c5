package shadergen

import (
	"fmt"
	"sort"
	"strings"
)

// TempInfo describes one hoisted temporary: its GLSL type tag and the
// generated expression body it stands for.
type TempInfo struct {
	Type VarType
	Body string
}

// DependsOn reports whether the temporary's body references any of the
// argument names as standalone identifiers. Used to order declarations so a
// temporary always follows the temporaries it reads.
func (ti TempInfo) DependsOn(names ...string) bool {
	for _, name := range names {
		if refersTo(ti.Body, name) {
			return true
		}
	}
	return false
}

// tempTable is an ordered mapping from temporary name to its TempInfo.
// Registration order is the default emission order unless dependency
// ordering requires otherwise.
type tempTable struct {
	order []string
	info  map[string]TempInfo
}

func (t *tempTable) add(name string, ti TempInfo) {
	if t.info == nil {
		t.info = make(map[string]TempInfo)
	}
	if got, ok := t.info[name]; ok {
		if got.Body != ti.Body || got.Type != ti.Type {
			panic("shadergen: temporary " + name + " registered twice with different bodies")
		}
		return // Same node generating again, idempotent.
	}
	t.info[name] = ti
	t.order = append(t.order, name)
}

func (t *tempTable) reset() {
	t.order = t.order[:0]
	clear(t.info)
}

// ordered returns the temporary names such that every temporary follows the
// temporaries its body references, ties broken by registration order.
// Cyclic references are a caller error; the remainder of a cycle is emitted
// in registration order.
func (t *tempTable) ordered() []string {
	out := make([]string, 0, len(t.order))
	emitted := make(map[string]bool, len(t.order))
	for len(out) < len(t.order) {
		progress := false
		for _, name := range t.order {
			if emitted[name] {
				continue
			}
			ready := true
			for _, dep := range t.order {
				if dep != name && !emitted[dep] && refersTo(t.info[name].Body, dep) {
					ready = false
					break
				}
			}
			if ready {
				out = append(out, name)
				emitted[name] = true
				progress = true
			}
		}
		if !progress {
			for _, name := range t.order {
				if !emitted[name] {
					out = append(out, name)
				}
			}
			break
		}
	}
	return out
}

// ShaderDef is one immutable stage recipe: a mapping from stage output names
// to the generator trees that produce them. The entry writing the stage's
// builtin output (gl_Position or gl_FragColor) is the stage root; every
// other vertex-stage entry that generates becomes a varying of the same
// name. Nodes may be shared between entries but must not form cycles, and a
// ShaderDef must not be mutated once built: it is shared read-only across
// any number of concurrent contexts.
type ShaderDef struct {
	def   map[string]ShaderNode
	names []string
}

// NewShaderDef builds a definition from output-name to node bindings.
func NewShaderDef(def map[string]ShaderNode) *ShaderDef {
	d := &ShaderDef{def: make(map[string]ShaderNode, len(def))}
	for name, n := range def {
		if n == nil {
			panic("shadergen: nil node for def entry " + name)
		}
		d.def[name] = n
		d.names = append(d.names, name)
	}
	sort.Strings(d.names)
	return d
}

// Node returns the generator tree bound to name, or nil.
func (d *ShaderDef) Node(name string) ShaderNode { return d.def[name] }

// Names returns the definition's output names in emission (sorted) order.
// The returned slice must not be modified.
func (d *ShaderDef) Names() []string { return d.names }

// ShaderPair is the result of one generation pass: final source text for
// both stages plus, per stage, the layout of bindings the stage actually
// consumed so callers can skip binding the rest.
type ShaderPair struct {
	VertexSource   string
	FragmentSource string
	VertexUsed     Layout
	FragmentUsed   Layout
}

// ShaderContext drives one generation pass over a vertex and fragment
// definition for one material. The definitions are immutable and may be
// shared; the context's temporary tables are per-pass scratch state, so a
// single context must not run concurrent Generate calls. Sequential reuse
// is fine: every call starts from fresh temporary state.
type ShaderContext struct {
	vs, fs *ShaderDef
	mat    *Material

	vertexStage bool
	vsTempVals  tempTable
	vsTempFuncs tempTable
	fsTempVals  tempTable
	fsTempFuncs tempTable

	used     Layout
	lastFail string
}

// NewShaderContext pairs a vertex and fragment definition for generation.
func NewShaderContext(vertex, fragment *ShaderDef) *ShaderContext {
	if vertex == nil || fragment == nil {
		panic("shadergen: nil shader def")
	}
	return &ShaderContext{vs: vertex, fs: fragment}
}

// IVar returns the material's named feature flag, or def when the flag or
// the material itself is absent.
func (c *ShaderContext) IVar(name string, def int) int {
	if c.mat == nil {
		return def
	}
	return c.mat.IVar(name, def)
}

// AddTempVal registers a named temporary expression in the active stage's
// temporary table. Re-registering an identical body is a no-op; a different
// body under the same name panics.
func (c *ShaderContext) AddTempVal(t VarType, name, body string) {
	if c.vertexStage {
		c.vsTempVals.add(name, TempInfo{Type: t, Body: body})
	} else {
		c.fsTempVals.add(name, TempInfo{Type: t, Body: body})
	}
}

// AddTempFunc registers a named helper function in the active stage. body
// is the complete function source. Duplicate policy as [AddTempVal].
func (c *ShaderContext) AddTempFunc(t VarType, name, body string) {
	if c.vertexStage {
		c.vsTempFuncs.add(name, TempInfo{Type: t, Body: body})
	} else {
		c.fsTempFuncs.add(name, TempInfo{Type: t, Body: body})
	}
}

// UseVar resolves name in the layout and, when present, records it in the
// current stage's used-variable set reported through [ShaderPair].
func (c *ShaderContext) UseVar(v *Layout, name string) (Var, bool) {
	vr, ok := v.Find(name)
	if !ok {
		return Var{}, false
	}
	c.used.Put(vr)
	return vr, true
}

// useAssumed records a variable that nodes may reference without it being
// listed in the layout, such as the position attribute.
func (c *ShaderContext) useAssumed(v *Layout, assumed Var) {
	if vr, ok := v.Find(assumed.Name); ok {
		c.used.Put(vr)
		return
	}
	c.used.Put(assumed)
}

// LastFailure returns a diagnostic note for the most recent node failure of
// the current pass. Purely informational: the success contract is carried
// by the boolean returns alone.
func (c *ShaderContext) LastFailure() string { return c.lastFail }

func (c *ShaderContext) failf(format string, args ...any) {
	c.lastFail = fmt.Sprintf(format, args...)
}

// Generate runs the two stage passes for mat, vertex first so its outputs
// become the fragment stage's varyings. A failing stage root aborts with an
// error and no partial source is returned.
func (c *ShaderContext) Generate(mat *Material) (*ShaderPair, error) {
	if mat == nil {
		return nil, fmt.Errorf("shadergen: nil material")
	}
	c.mat = mat
	c.lastFail = ""
	c.vsTempVals.reset()
	c.vsTempFuncs.reset()
	c.fsTempVals.reset()
	c.fsTempFuncs.reset()

	inputs := mat.Layout()
	var varyings Layout
	vsrc, vused, err := c.generateStage(c.vs, &inputs, true, &varyings)
	if err != nil {
		return nil, err
	}

	// Fragment stage sees the material's uniforms plus the varyings the
	// vertex stage produced, never the mesh attributes.
	var finputs Layout
	for _, vr := range inputs.Vars() {
		if vr.Class != ClassAttribute {
			finputs.Put(vr)
		}
	}
	for _, vr := range varyings.Vars() {
		finputs.Put(vr)
	}
	fsrc, fused, err := c.generateStage(c.fs, &finputs, false, nil)
	if err != nil {
		return nil, err
	}
	return &ShaderPair{
		VertexSource:   vsrc,
		FragmentSource: fsrc,
		VertexUsed:     vused,
		FragmentUsed:   fused,
	}, nil
}

func (c *ShaderContext) generateStage(def *ShaderDef, in *Layout, vertex bool, varyings *Layout) (string, Layout, error) {
	c.vertexStage = vertex
	c.used = Layout{}
	stage, rootOut := "fragment", "gl_FragColor"
	if vertex {
		stage, rootOut = "vertex", "gl_Position"
	}

	var body []byte
	rootSeen := false
	for _, name := range def.names {
		node := def.def[name]
		frag, ok := node.AppendExpr(nil, c, in)
		if !ok {
			if name == rootOut {
				return "", Layout{}, fmt.Errorf("cannot generate %s shader for material: root output %q failed: %s", stage, name, c.lastFail)
			}
			continue // Optional outputs that cannot be expressed are dropped.
		}
		if name == rootOut {
			rootSeen = true
		}
		body = append(body, '\t')
		if !vertex && !strings.HasPrefix(name, "gl_") {
			// Fragment entries other than builtins become locals.
			body = append(body, node.Type().GLSL()...)
			body = append(body, ' ')
		}
		body = append(body, name...)
		body = append(body, " = "...)
		body = append(body, frag...)
		body = append(body, ";\n"...)
		if vertex && varyings != nil && !strings.HasPrefix(name, "gl_") {
			varyings.Put(Var{Name: name, Type: node.Type(), Class: ClassVarying})
		}
	}
	if !rootSeen {
		return "", Layout{}, fmt.Errorf("cannot generate %s shader for material: definition has no %q entry", stage, rootOut)
	}

	decls := c.used.Clone()
	if vertex && varyings != nil {
		for _, vr := range varyings.Vars() {
			decls.Put(vr)
		}
	}
	vals, funcs := &c.fsTempVals, &c.fsTempFuncs
	if vertex {
		vals, funcs = &c.vsTempVals, &c.vsTempFuncs
	}

	var src []byte
	if !vertex {
		src = append(src, "precision mediump float;\n"...)
	}
	for _, vr := range decls.Vars() {
		src = append(src, vr.Class.String()...)
		src = append(src, ' ')
		src = append(src, vr.Type.GLSL()...)
		src = append(src, ' ')
		src = append(src, vr.Name...)
		src = append(src, ";\n"...)
	}
	src = append(src, '\n')
	for _, name := range funcs.ordered() {
		src = append(src, funcs.info[name].Body...)
		src = append(src, '\n')
	}
	src = append(src, "void main() {\n"...)
	for _, name := range vals.ordered() {
		ti := vals.info[name]
		src = append(src, '\t')
		src = append(src, ti.Type.GLSL()...)
		src = append(src, ' ')
		src = append(src, name...)
		src = append(src, " = "...)
		src = append(src, ti.Body...)
		src = append(src, ";\n"...)
	}
	src = append(src, body...)
	src = append(src, "}\n"...)
	return string(src), c.used, nil
}
