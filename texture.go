package shadergen

const texCombineName = "_texCombine"

const texCombineSrc = `vec4 _texCombine(vec4 t, vec4 prev, float mode) {
	if (mode < 0.5) { return t; }
	if (mode < 1.5) { return t * prev; }
	return t + prev;
}`

// TexRef generates a 2D texture lookup: the uv child supplies the
// coordinate expression and tex names the sampler variable. A missing
// sampler or a failing uv child fails the whole node, including any chained
// next stage. When a next child succeeds its fragment is combined with the
// lookup: through the mode uniform when modeVar is present in the layout
// (replace/modulate/add selected at draw time), additively otherwise.
func TexRef(tex, modeVar string, uv, next ShaderNode) ShaderNode {
	if uv == nil {
		panic("shadergen: nil uv child for texture " + tex)
	}
	return &texRef{typed: typed(Float4), tex: tex, mode: modeVar, uv: uv, next: next}
}

type texRef struct {
	typed
	tex, mode string
	uv, next  ShaderNode
}

func (n *texRef) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	uvFrag, ok := n.uv.AppendExpr(nil, c, v)
	if !ok {
		c.failf("uv for texture %q unavailable", n.tex)
		return b, false
	}
	if _, ok := c.UseVar(v, n.tex); !ok {
		c.failf("texture %q not present", n.tex)
		return b, false
	}
	lookup := appendLookup(nil, "texture2D", n.tex, uvFrag)
	return appendTexStage(b, c, v, lookup, n.mode, n.next), true
}

// CubeRef generates a cube-map lookup using reflection geometry: the uv
// child supplies the reflection vector. The reflAlpha child, when it
// generates, modulates blending of the lookup over the next stage via mix;
// without it the chain degrades to the additive combination of [TexRef].
func CubeRef(tex, modeVar string, reflAlpha, uv, next ShaderNode) ShaderNode {
	if uv == nil {
		panic("shadergen: nil uv child for cube texture " + tex)
	}
	return &cubeRef{
		typed: typed(Float4), tex: tex, mode: modeVar,
		reflAlpha: reflAlpha, uv: uv, next: next,
	}
}

type cubeRef struct {
	typed
	tex, mode string
	reflAlpha ShaderNode
	uv, next  ShaderNode
}

func (n *cubeRef) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	uvFrag, ok := n.uv.AppendExpr(nil, c, v)
	if !ok {
		c.failf("reflection vector for cube texture %q unavailable", n.tex)
		return b, false
	}
	if _, ok := c.UseVar(v, n.tex); !ok {
		c.failf("cube texture %q not present", n.tex)
		return b, false
	}
	lookup := appendLookup(nil, "textureCube", n.tex, uvFrag)
	if n.next != nil && n.reflAlpha != nil {
		nextFrag, nextOK := n.next.AppendExpr(nil, c, v)
		alphaFrag, alphaOK := n.reflAlpha.AppendExpr(nil, c, v)
		if nextOK && alphaOK {
			b = append(b, "mix("...)
			b = append(b, nextFrag...)
			b = append(b, ", "...)
			b = append(b, lookup...)
			b = append(b, ", "...)
			b = append(b, alphaFrag...)
			b = append(b, ')')
			return b, true
		}
	}
	return appendTexStage(b, c, v, lookup, n.mode, n.next), true
}

// SpecularTex generates a specular map lookup, chainable like [TexRef] but
// always combining additively since specular contributions add light.
func SpecularTex(tex string, uv, next ShaderNode) ShaderNode {
	if uv == nil {
		panic("shadergen: nil uv child for specular texture " + tex)
	}
	return &specularTex{typed: typed(Float4), tex: tex, uv: uv, next: next}
}

type specularTex struct {
	typed
	tex      string
	uv, next ShaderNode
}

func (n *specularTex) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	uvFrag, ok := n.uv.AppendExpr(nil, c, v)
	if !ok {
		c.failf("uv for specular texture %q unavailable", n.tex)
		return b, false
	}
	if _, ok := c.UseVar(v, n.tex); !ok {
		c.failf("specular texture %q not present", n.tex)
		return b, false
	}
	lookup := appendLookup(nil, "texture2D", n.tex, uvFrag)
	return appendTexStage(b, c, v, lookup, "", n.next), true
}

func appendLookup(b []byte, fn, tex string, uv []byte) []byte {
	b = append(b, fn...)
	b = append(b, '(')
	b = append(b, tex...)
	b = append(b, ", "...)
	b = append(b, uv...)
	b = append(b, ')')
	return b
}

// appendTexStage combines a texture lookup with the next stage of a
// multi-texture chain. A nil or failing next stage leaves the lookup alone.
func appendTexStage(b []byte, c *ShaderContext, v *Layout, lookup []byte, modeVar string, next ShaderNode) []byte {
	if next == nil {
		return append(b, lookup...)
	}
	nextFrag, ok := next.AppendExpr(nil, c, v)
	if !ok {
		return append(b, lookup...)
	}
	if modeVar != "" {
		if _, ok := c.UseVar(v, modeVar); ok {
			c.AddTempFunc(Float4, texCombineName, texCombineSrc)
			b = append(b, texCombineName...)
			b = append(b, '(')
			b = append(b, lookup...)
			b = append(b, ", "...)
			b = append(b, nextFrag...)
			b = append(b, ", "...)
			b = append(b, modeVar...)
			b = append(b, ')')
			return b
		}
	}
	b = append(b, '(')
	b = append(b, lookup...)
	b = append(b, " + "...)
	b = append(b, nextFrag...)
	b = append(b, ')')
	return b
}
