package stdshaders

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"

	"github.com/soypat/shadergen"
)

// BaseMaterial returns a material with the standard mesh attributes and
// identity transforms, ready for the trees of [LitShader]: callers layer
// lights, textures and fog on top.
func BaseMaterial() *shadergen.Material {
	m := shadergen.NewMaterial()
	m.PutAttribute(shadergen.VarPosition, shadergen.Float4)
	m.PutAttribute(shadergen.VarNormal, shadergen.Float3)
	m.PutAttribute(shadergen.VarUV0, shadergen.Float2)
	identity := ms3.ScalingMat4(ms3.Vec{X: 1, Y: 1, Z: 1})
	m.SetMat4(shadergen.VarMVP, identity)
	m.SetMat4(shadergen.VarModelView, identity)
	m.SetMat3(shadergen.VarNormalMat, ms3.IdentityMat3())
	return m
}

// EnableLighting switches per-vertex lighting on with the given ambient
// term.
func EnableLighting(m *shadergen.Material, ambientR, ambientG, ambientB float32) {
	m.SetIVar(IVarLighting, 1)
	m.SetColor(shadergen.VarAmbientColor, ambientR, ambientG, ambientB, 1)
}

// EnableLight turns on light slot i at the given eye-space position with a
// diffuse color. Slot indices beyond [MaxLights) panic.
func EnableLight(m *shadergen.Material, i int, pos ms3.Vec, r, g, b float32) {
	if i < 0 || i >= MaxLights {
		panic("stdshaders: light slot out of range")
	}
	m.SetIVar(IVarLight(i), 1)
	m.SetVec4(shadergen.VarLightPos(i), pos.X, pos.Y, pos.Z, 1)
	m.SetColor(shadergen.VarLightColor(i), r, g, b, 1)
}

// SetLightAttenuation binds light i's distance attenuation factors
// (constant, linear, quadratic).
func SetLightAttenuation(m *shadergen.Material, i int, k0, k1, k2 float32) {
	m.SetVec3(shadergen.VarLightAtten(i), ms3.Vec{X: k0, Y: k1, Z: k2})
}

// SetSpotlight narrows light i to a cone around dir: cutoffDeg is the half
// angle in degrees and exponent shapes the falloff toward the cone edge.
func SetSpotlight(m *shadergen.Material, i int, dir ms3.Vec, cutoffDeg, exponent float32) {
	m.SetDirection(shadergen.VarSpotDir(i), dir)
	cos := math32.Cos(cutoffDeg * math32.Pi / 180)
	m.SetVec2(shadergen.VarSpotParams(i), ms2.Vec{X: cos, Y: exponent})
}

// EnableSpecular switches specular highlights on with the given material
// specular color and exponent.
func EnableSpecular(m *shadergen.Material, r, g, b, shininess float32) {
	m.SetIVar(IVarSpecular, 1)
	m.SetColor(shadergen.VarSpecularColor, r, g, b, 1)
	m.SetFloat(shadergen.VarShininess, shininess)
	for i := 0; i < MaxLights; i++ {
		if m.IVar(IVarLight(i), 0) != 0 && m.Value(shadergen.VarLightSpecColor(i)) == nil {
			m.SetColor(shadergen.VarLightSpecColor(i), 1, 1, 1, 1)
		}
	}
}

// EnableTexture binds the primary texture stage with a combine mode from
// the TexMode constants.
func EnableTexture(m *shadergen.Material, mode float32) {
	m.SetIVar(IVarTextured, 1)
	m.PutTexture(shadergen.VarTexture0, shadergen.Sampler2D)
	m.SetFloat(shadergen.VarTexMode0, mode)
}

// EnableLinearFog switches linear fog on over the given eye-space depth
// range.
func EnableLinearFog(m *shadergen.Material, start, end float32, r, g, b float32) {
	m.SetIVar(IVarFogLinear, 1)
	m.SetFogRange(shadergen.VarFogParams, start, end)
	m.SetColor(shadergen.VarFogColor, r, g, b, 1)
}

// EnableExpFog switches exponential fog on; squared selects the exp2
// variant.
func EnableExpFog(m *shadergen.Material, density float32, squared bool, r, g, b float32) {
	if squared {
		m.SetIVar(IVarFogExp2, 1)
	} else {
		m.SetIVar(IVarFogExp, 1)
	}
	m.SetFloat(shadergen.VarFogDensity, density)
	m.SetColor(shadergen.VarFogColor, r, g, b, 1)
}
