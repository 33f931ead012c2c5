package shadergen

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// AppendFloat appends v formatted as a GLSL float literal to b. The literal
// always carries a decimal point so GLSL does not read it as an int.
func AppendFloat(b []byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', -1, 32)
	if bytes.IndexByte(b[start:], '.') < 0 && bytes.IndexByte(b[start:], 'e') < 0 {
		b = append(b, '.', '0')
	}
	return b
}

// AppendVec2 appends v as a GLSL vec2 constructor literal.
func AppendVec2(b []byte, v ms2.Vec) []byte {
	b = append(b, "vec2("...)
	b = AppendFloat(b, v.X)
	b = append(b, ", "...)
	b = AppendFloat(b, v.Y)
	b = append(b, ')')
	return b
}

// AppendVec3 appends v as a GLSL vec3 constructor literal.
func AppendVec3(b []byte, v ms3.Vec) []byte {
	b = append(b, "vec3("...)
	arr := v.Array()
	for i, f := range arr {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = AppendFloat(b, f)
	}
	b = append(b, ')')
	return b
}

// AppendVec4 appends a GLSL vec4 constructor literal.
func AppendVec4(b []byte, x, y, z, w float32) []byte {
	b = append(b, "vec4("...)
	b = AppendFloat(b, x)
	b = append(b, ", "...)
	b = AppendFloat(b, y)
	b = append(b, ", "...)
	b = AppendFloat(b, z)
	b = append(b, ", "...)
	b = AppendFloat(b, w)
	b = append(b, ')')
	return b
}

// FloatLiteral returns v as a GLSL float literal string, useful as the
// constant fallback of variable reference nodes.
func FloatLiteral(v float32) string { return string(AppendFloat(nil, v)) }

// Vec3Literal returns v as a GLSL vec3 literal string.
func Vec3Literal(v ms3.Vec) string { return string(AppendVec3(nil, v)) }

// Vec4Literal returns a GLSL vec4 literal string.
func Vec4Literal(x, y, z, w float32) string { return string(AppendVec4(nil, x, y, z, w)) }

func identChar(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// refersTo reports whether body references name as a standalone identifier
// rather than as a substring of a longer one.
func refersTo(body, name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i+len(name) <= len(body); {
		j := strings.Index(body[i:], name)
		if j < 0 {
			return false
		}
		j += i
		pre := j == 0 || !identChar(body[j-1])
		post := j+len(name) == len(body) || !identChar(body[j+len(name)])
		if pre && post {
			return true
		}
		i = j + 1
	}
	return false
}
