package shadergen

// ShaderNode is one unit of shader code generation. Nodes form immutable
// trees (sharing children as a DAG is fine, cycles are not) that are walked
// once per stage by a [ShaderContext].
type ShaderNode interface {
	// AppendExpr appends the node's GLSL expression to dst and reports
	// whether generation succeeded. On failure the returned buffer's
	// contents past the original length are unspecified and the caller must
	// truncate back to its own mark; a false return means the entire
	// sub-expression is unavailable, never a partial result.
	AppendExpr(dst []byte, c *ShaderContext, v *Layout) ([]byte, bool)
	// Type returns the GLSL type tag of the generated expression, fixed at
	// construction.
	Type() VarType
}

// typed provides the Type method for node kinds with a fixed result type.
type typed VarType

func (t typed) Type() VarType { return VarType(t) }

// IVarCheck succeeds only when the named material feature flag is present
// and nonzero; otherwise it fails without ever generating its child.
func IVarCheck(name string, child ShaderNode) ShaderNode {
	if child == nil {
		panic("shadergen: nil IVarCheck child")
	}
	return &ivarCheck{name: name, child: child}
}

type ivarCheck struct {
	name  string
	child ShaderNode
}

func (n *ivarCheck) Type() VarType { return n.child.Type() }

func (n *ivarCheck) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	if c.IVar(n.name, 0) == 0 {
		c.failf("feature flag %q disabled", n.name)
		return b, false
	}
	return n.child.AppendExpr(b, c, v)
}

// VarRef resolves a named variable, failing when it is absent.
func VarRef(name string) ShaderNode { return &varRef{typed: typed(Float4), name: name} }

// VarRefConst resolves a named variable, falling back to the literal
// constant when the variable is absent.
func VarRefConst(name, constant string) ShaderNode {
	return &varRef{typed: typed(Float4), name: name, constant: constant}
}

// TypedVarRef is [VarRefConst] with an explicit result type instead of the
// vec4 default. An empty constant means no fallback.
func TypedVarRef(t VarType, name, constant string) ShaderNode {
	return &varRef{typed: typed(t), name: name, constant: constant}
}

type varRef struct {
	typed
	name     string
	constant string
}

func (n *varRef) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	if _, ok := c.UseVar(v, n.name); ok {
		return append(b, n.name...), true
	}
	if n.constant != "" {
		return append(b, n.constant...), true
	}
	c.failf("variable %q not present and no constant fallback", n.name)
	return b, false
}

// FallbackRef tries the first variable name, then the second, then the
// literal constant; it fails only when all three are unavailable.
func FallbackRef(first, second, constant string) ShaderNode {
	return &fallbackRef{typed: typed(Float4), first: first, second: second, constant: constant}
}

// TypedFallbackRef is [FallbackRef] with an explicit result type.
func TypedFallbackRef(t VarType, first, second, constant string) ShaderNode {
	return &fallbackRef{typed: typed(t), first: first, second: second, constant: constant}
}

type fallbackRef struct {
	typed
	first    string
	second   string
	constant string
}

func (n *fallbackRef) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	if _, ok := c.UseVar(v, n.first); ok {
		return append(b, n.first...), true
	}
	if _, ok := c.UseVar(v, n.second); ok {
		return append(b, n.second...), true
	}
	if n.constant != "" {
		return append(b, n.constant...), true
	}
	c.failf("neither %q nor %q present and no constant fallback", n.first, n.second)
	return b, false
}

// Fallback generates the first child that succeeds, in argument order, and
// fails only when every child fails.
func Fallback(children ...ShaderNode) ShaderNode {
	if len(children) == 0 {
		panic("shadergen: Fallback needs at least one child")
	}
	for _, n := range children {
		if n == nil {
			panic("shadergen: nil Fallback child")
		}
	}
	return &fallbackNode{children: children}
}

type fallbackNode struct {
	children []ShaderNode
}

func (n *fallbackNode) Type() VarType { return n.children[0].Type() }

func (n *fallbackNode) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	mark := len(b)
	for _, child := range n.children {
		b2, ok := child.AppendExpr(b, c, v)
		if ok {
			return b2, true
		}
		b = b2[:mark]
	}
	c.failf("all %d fallback children failed", len(n.children))
	return b, false
}

// PosRef emits the vertex position transformed by the model-view-projection
// matrix. It has no failure path: [VarPosition] and [VarMVP] are assumed to
// exist even when the layout does not list them.
func PosRef() ShaderNode { return posRef{typed: typed(Float4)} }

type posRef struct{ typed }

func (n posRef) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	c.useAssumed(v, Var{Name: VarMVP, Type: Mat4, Class: ClassUniform})
	c.useAssumed(v, Var{Name: VarPosition, Type: Float4, Class: ClassAttribute})
	return append(b, "("+VarMVP+" * "+VarPosition+")"...), true
}

// Op combines two child expressions with an infix operator: "(a op b)".
// With needsAll both children must succeed; without it a single surviving
// child is emitted alone with no operator text, so optional secondary terms
// silently vanish from the formula.
func Op(n1, n2 ShaderNode, operator string, needsAll bool) ShaderNode {
	return newOp(n1, n2, operator, true, needsAll)
}

// Call combines two child expressions as a function call: "fn(a, b)".
// The needsAll flag behaves as in [Op].
func Call(n1, n2 ShaderNode, fn string, needsAll bool) ShaderNode {
	return newOp(n1, n2, fn, false, needsAll)
}

func newOp(n1, n2 ShaderNode, op string, isOperator, needsAll bool) ShaderNode {
	if n1 == nil || n2 == nil {
		panic("shadergen: nil operand for " + op)
	}
	return &opNode{n1: n1, n2: n2, op: op, isOperator: isOperator, needsAll: needsAll}
}

type opNode struct {
	n1, n2     ShaderNode
	op         string
	isOperator bool
	needsAll   bool
}

func (n *opNode) Type() VarType { return n.n1.Type() }

func (n *opNode) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	f1, ok1 := n.n1.AppendExpr(nil, c, v)
	f2, ok2 := n.n2.AppendExpr(nil, c, v)
	switch {
	case ok1 && ok2:
		if n.isOperator {
			b = append(b, '(')
			b = append(b, f1...)
			b = append(b, ' ')
			b = append(b, n.op...)
			b = append(b, ' ')
			b = append(b, f2...)
			b = append(b, ')')
		} else {
			b = append(b, n.op...)
			b = append(b, '(')
			b = append(b, f1...)
			b = append(b, ", "...)
			b = append(b, f2...)
			b = append(b, ')')
		}
		return b, true
	case ok1 && !n.needsAll:
		return append(b, f1...), true
	case ok2 && !n.needsAll:
		return append(b, f2...), true
	}
	c.failf("operands of %q unavailable", n.op)
	return b, false
}

// Additive sums the expressions of its children. Failing children are
// dropped silently; the node fails only when no child at all succeeds. A
// single surviving child is emitted unmodified.
func Additive(children ...ShaderNode) ShaderNode {
	if len(children) == 0 {
		panic("shadergen: Additive needs at least one child")
	}
	for _, n := range children {
		if n == nil {
			panic("shadergen: nil Additive child")
		}
	}
	return &additiveNode{typed: typed(Float4), children: children}
}

type additiveNode struct {
	typed
	children []ShaderNode
}

func (n *additiveNode) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	var frags [][]byte
	for _, child := range n.children {
		frag, ok := child.AppendExpr(nil, c, v)
		if ok {
			frags = append(frags, frag)
		}
	}
	switch len(frags) {
	case 0:
		c.failf("no additive child succeeded")
		return b, false
	case 1:
		return append(b, frags[0]...), true
	}
	b = append(b, '(')
	for i, frag := range frags {
		if i > 0 {
			b = append(b, " + "...)
		}
		b = append(b, frag...)
	}
	b = append(b, ')')
	return b, true
}

// Temp hoists its child's expression into a named temporary of the given
// type in the active stage's temporary table and emits a bare reference to
// that name. Only valuable when the expression is reused more than once.
// Registering the same name twice with a different body panics; identical
// re-registration is a no-op so nodes shared across a DAG stay idempotent.
func Temp(t VarType, name string, body ShaderNode) ShaderNode {
	if body == nil {
		panic("shadergen: nil Temp body for " + name)
	}
	return &tempNode{typed: typed(t), name: name, body: body}
}

type tempNode struct {
	typed
	name string
	body ShaderNode
}

func (n *tempNode) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	frag, ok := n.body.AppendExpr(nil, c, v)
	if !ok {
		return b, false
	}
	c.AddTempVal(n.Type(), n.name, string(frag))
	return append(b, n.name...), true
}

// Custom is the escape hatch for one-off formulas: literal before and after
// text around an optional inner child. When inner is non-nil it must
// generate or the node fails.
func Custom(before, after string, inner ShaderNode) ShaderNode {
	return &customNode{typed: typed(Float4), before: before, after: after, inner: inner}
}

// CustomTyped emits literal text with an explicit result type and no inner
// child.
func CustomTyped(t VarType, text string) ShaderNode {
	return &customNode{typed: typed(t), before: text}
}

type customNode struct {
	typed
	before, after string
	inner         ShaderNode
}

func (n *customNode) AppendExpr(b []byte, c *ShaderContext, v *Layout) ([]byte, bool) {
	mark := len(b)
	b = append(b, n.before...)
	if n.inner != nil {
		b2, ok := n.inner.AppendExpr(b, c, v)
		if !ok {
			return b2[:mark], false
		}
		b = b2
	}
	b = append(b, n.after...)
	return b, true
}
