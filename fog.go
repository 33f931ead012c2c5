package shadergen

// LinearFog produces a scalar fog visibility factor falling linearly with
// eye-space depth: clamp((params.x - depth) * params.y, 0.0, 1.0) with
// params a vec2 of (end, 1/(end-start)). Both children are required.
func LinearFog(depth, fogParams ShaderNode) ShaderNode {
	if depth == nil || fogParams == nil {
		panic("shadergen: nil LinearFog child")
	}
	return &linearFog{typed: typed(Float), depth: depth, params: fogParams}
}

type linearFog struct {
	typed
	depth, params ShaderNode
}

func (n *linearFog) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	d, ok1 := n.depth.AppendExpr(nil, c, v)
	p, ok2 := n.params.AppendExpr(nil, c, v)
	if !ok1 || !ok2 {
		c.failf("linear fog inputs unavailable")
		return b, false
	}
	b = append(b, "clamp(("...)
	b = append(b, p...)
	b = append(b, ".x - "...)
	b = append(b, d...)
	b = append(b, ") * "...)
	b = append(b, p...)
	b = append(b, ".y, 0.0, 1.0)"...)
	return b, true
}

// ExpFog produces a scalar fog visibility factor falling exponentially with
// eye-space depth; squared selects the exp2 falloff variant. Both children
// are required.
func ExpFog(depth, density ShaderNode, squared bool) ShaderNode {
	if depth == nil || density == nil {
		panic("shadergen: nil ExpFog child")
	}
	return &expFog{typed: typed(Float), depth: depth, density: density, squared: squared}
}

type expFog struct {
	typed
	depth, density ShaderNode
	squared        bool
}

func (n *expFog) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	d, ok1 := n.depth.AppendExpr(nil, c, v)
	den, ok2 := n.density.AppendExpr(nil, c, v)
	if !ok1 || !ok2 {
		c.failf("exponential fog inputs unavailable")
		return b, false
	}
	if n.squared {
		b = append(b, "clamp(exp(-pow("...)
		b = append(b, den...)
		b = append(b, " * "...)
		b = append(b, d...)
		b = append(b, ", 2.0)), 0.0, 1.0)"...)
		return b, true
	}
	b = append(b, "clamp(exp(-("...)
	b = append(b, den...)
	b = append(b, " * "...)
	b = append(b, d...)
	b = append(b, ")), 0.0, 1.0)"...)
	return b, true
}
