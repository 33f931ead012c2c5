package shadergen

const spotAttenName = "_spotAtten"

const spotAttenSrc = `float _spotAtten(vec3 toLight, vec3 spotDir, vec2 params) {
	float d = dot(normalize(-toLight), spotDir);
	return d > params.x ? pow(d, params.y) : 0.0;
}`

// Attenuate produces the scalar distance-attenuation factor for one light.
// toLight is the surface-to-light vector and atten the vec3 of constant,
// linear and quadratic factors. Both children are required.
func Attenuate(toLight, atten ShaderNode) ShaderNode {
	if toLight == nil || atten == nil {
		panic("shadergen: nil Attenuate child")
	}
	return &attenuator{typed: typed(Float), toLight: toLight, atten: atten}
}

type attenuator struct {
	typed
	toLight, atten ShaderNode
}

func (n *attenuator) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	tl, ok1 := n.toLight.AppendExpr(nil, c, v)
	at, ok2 := n.atten.AppendExpr(nil, c, v)
	if !ok1 || !ok2 {
		c.failf("attenuation inputs unavailable")
		return b, false
	}
	b = append(b, "(1.0 / dot("...)
	b = append(b, at...)
	b = append(b, ", vec3(1.0, length("...)
	b = append(b, tl...)
	b = append(b, "), dot("...)
	b = append(b, tl...)
	b = append(b, ", "...)
	b = append(b, tl...)
	b = append(b, "))))"...)
	return b, true
}

// Light produces one light's diffuse contribution. lightDir, normal and
// color are required; the attenuation child is optional and simply omitted
// from the product when it fails.
func Light(lightDir, normal, color, atten ShaderNode) ShaderNode {
	if lightDir == nil || normal == nil || color == nil {
		panic("shadergen: nil Light child")
	}
	return &lighter{typed: typed(Float4), lightDir: lightDir, normal: normal, color: color, atten: atten}
}

type lighter struct {
	typed
	lightDir, normal, color, atten ShaderNode
}

func (n *lighter) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	ld, ok1 := n.lightDir.AppendExpr(nil, c, v)
	nm, ok2 := n.normal.AppendExpr(nil, c, v)
	col, ok3 := n.color.AppendExpr(nil, c, v)
	if !ok1 || !ok2 || !ok3 {
		c.failf("diffuse lighting inputs unavailable")
		return b, false
	}
	b = append(b, "(max(dot("...)
	b = append(b, nm...)
	b = append(b, ", normalize("...)
	b = append(b, ld...)
	b = append(b, ")), 0.0)"...)
	b = appendOptionalFactor(b, c, v, n.atten)
	b = append(b, " * "...)
	b = append(b, col...)
	b = append(b, ')')
	return b, true
}

// SpecLight produces one light's specular contribution using the half-vector
// between light and camera directions. lightDir, cameraDir, normal and color
// are required; attenuation is optional. The specular exponent comes from
// the [VarShininess] uniform when present, else a literal 8.0.
func SpecLight(lightDir, cameraDir, normal, color, atten ShaderNode) ShaderNode {
	if lightDir == nil || cameraDir == nil || normal == nil || color == nil {
		panic("shadergen: nil SpecLight child")
	}
	return &specLighter{
		typed: typed(Float4), lightDir: lightDir, cameraDir: cameraDir,
		normal: normal, color: color, atten: atten,
	}
}

type specLighter struct {
	typed
	lightDir, cameraDir, normal, color, atten ShaderNode
}

func (n *specLighter) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	ld, ok1 := n.lightDir.AppendExpr(nil, c, v)
	cd, ok2 := n.cameraDir.AppendExpr(nil, c, v)
	nm, ok3 := n.normal.AppendExpr(nil, c, v)
	col, ok4 := n.color.AppendExpr(nil, c, v)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		c.failf("specular lighting inputs unavailable")
		return b, false
	}
	shine := "8.0"
	if _, ok := c.UseVar(v, VarShininess); ok {
		shine = VarShininess
	}
	b = append(b, "(pow(max(dot("...)
	b = append(b, nm...)
	b = append(b, ", normalize(normalize("...)
	b = append(b, ld...)
	b = append(b, ") + normalize("...)
	b = append(b, cd...)
	b = append(b, "))), 0.0), "...)
	b = append(b, shine...)
	b = append(b, ')')
	b = appendOptionalFactor(b, c, v, n.atten)
	b = append(b, " * "...)
	b = append(b, col...)
	b = append(b, ')')
	return b, true
}

// SpotAtten produces the scalar spotlight cone attenuation for one light,
// delegating the cutoff test to a generated helper function. All three
// children are required: lightDir is the surface-to-light vector, dir the
// spotlight direction, and params a vec2 of cosine cutoff and exponent.
func SpotAtten(lightDir, params, dir ShaderNode) ShaderNode {
	if lightDir == nil || params == nil || dir == nil {
		panic("shadergen: nil SpotAtten child")
	}
	return &spotAtten{typed: typed(Float), lightDir: lightDir, params: params, dir: dir}
}

type spotAtten struct {
	typed
	lightDir, params, dir ShaderNode
}

func (n *spotAtten) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	ld, ok1 := n.lightDir.AppendExpr(nil, c, v)
	pr, ok2 := n.params.AppendExpr(nil, c, v)
	dr, ok3 := n.dir.AppendExpr(nil, c, v)
	if !ok1 || !ok2 || !ok3 {
		c.failf("spotlight inputs unavailable")
		return b, false
	}
	c.AddTempFunc(Float, spotAttenName, spotAttenSrc)
	b = append(b, spotAttenName...)
	b = append(b, '(')
	b = append(b, ld...)
	b = append(b, ", "...)
	b = append(b, dr...)
	b = append(b, ", "...)
	b = append(b, pr...)
	b = append(b, ')')
	return b, true
}

// Reflect produces the reflection of the src vector about the normal, as
// used for cube-map coordinate generation. Both children are required.
func Reflect(normal, src ShaderNode) ShaderNode {
	if normal == nil || src == nil {
		panic("shadergen: nil Reflect child")
	}
	return &reflNode{typed: typed(Float3), normal: normal, src: src}
}

type reflNode struct {
	typed
	normal, src ShaderNode
}

func (n *reflNode) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	nm, ok1 := n.normal.AppendExpr(nil, c, v)
	src, ok2 := n.src.AppendExpr(nil, c, v)
	if !ok1 || !ok2 {
		c.failf("reflection inputs unavailable")
		return b, false
	}
	b = append(b, "reflect(normalize("...)
	b = append(b, src...)
	b = append(b, "), "...)
	b = append(b, nm...)
	b = append(b, ')')
	return b, true
}

// AffineBlend mixes n1 toward n2 by the blend child's factor:
// mix(n1, n2, blend). n2 is required; when the blend factor or n1 is
// unavailable only n2 is emitted, unmodified.
func AffineBlend(blend, n1, n2 ShaderNode) ShaderNode {
	if n2 == nil {
		panic("shadergen: nil AffineBlend n2 child")
	}
	return &affineBlend{blend: blend, n1: n1, n2: n2}
}

type affineBlend struct {
	blend, n1, n2 ShaderNode
}

func (n *affineBlend) Type() VarType { return n.n2.Type() }

func (n *affineBlend) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	f2, ok2 := n.n2.AppendExpr(nil, c, v)
	if !ok2 {
		c.failf("blend base term unavailable")
		return b, false
	}
	if n.blend != nil && n.n1 != nil {
		fb, okb := n.blend.AppendExpr(nil, c, v)
		f1, ok1 := n.n1.AppendExpr(nil, c, v)
		if okb && ok1 {
			b = append(b, "mix("...)
			b = append(b, f1...)
			b = append(b, ", "...)
			b = append(b, f2...)
			b = append(b, ", "...)
			b = append(b, fb...)
			b = append(b, ')')
			return b, true
		}
	}
	return append(b, f2...), true
}

// appendOptionalFactor multiplies in an optional scalar child, omitting it
// when the child is nil or fails.
func appendOptionalFactor(b []byte, c *ShaderContext, v *Layout, n ShaderNode) []byte {
	if n == nil {
		return b
	}
	frag, ok := n.AppendExpr(nil, c, v)
	if !ok {
		return b
	}
	b = append(b, " * "...)
	b = append(b, frag...)
	return b
}
