// Package stdshaders provides prebuilt generator trees replicating the
// fixed-function pipeline: per-vertex lighting, multi-texturing, specular
// and reflection maps and fog, all switched on and off per material through
// feature flags and the bindings the material declares.
package stdshaders

import (
	"strconv"

	"github.com/soypat/shadergen"
)

// Feature flags consulted by the prebuilt trees. Enable with
// [shadergen.Material.SetIVar] or the helpers in this package.
const (
	IVarLighting   = "lighting"
	IVarSpecular   = "specular"
	IVarTextured   = "textured"
	IVarReflection = "reflection"
	IVarFogLinear  = "fogLinear"
	IVarFogExp     = "fogExp"
	IVarFogExp2    = "fogExp2"
)

// MaxLights is the number of light slots the prebuilt trees wire up.
const MaxLights = 3

// IVarLight returns the feature flag enabling light slot i.
func IVarLight(i int) string { return "light" + strconv.Itoa(i) }

// Varyings the vertex trees hand to the fragment trees.
const (
	VaryColor    = "_vColor"
	VaryLighting = "_vLighting"
	VarySpecular = "_vSpec"
	VaryFog      = "_vFog"
	VaryUV0      = "_vUV0"
	VaryUV1      = "_vUV1"
	VaryReflUV   = "_vReflUV"
	VaryNormal   = "_vNormal"
	VaryEcPos    = "_vEcPos"
)

const white = "vec4(1.0, 1.0, 1.0, 1.0)"

// Eye-space intermediates shared across vertex sub-trees. Hoisting them as
// temporaries keeps each computed once per stage no matter how many lights
// reference them.
func ecPos() shadergen.ShaderNode {
	return shadergen.Temp(shadergen.Float3, "_ecPos",
		shadergen.Custom("", ".xyz",
			shadergen.Op(
				shadergen.VarRef(shadergen.VarModelView),
				shadergen.VarRef(shadergen.VarPosition),
				"*", true,
			)))
}

func eyeNormal() shadergen.ShaderNode {
	return shadergen.Temp(shadergen.Float3, "_ecNormal",
		shadergen.Custom("normalize", "",
			shadergen.Op(
				shadergen.VarRef(shadergen.VarNormalMat),
				shadergen.VarRef(shadergen.VarNormal),
				"*", true,
			)))
}

func cameraDir() shadergen.ShaderNode {
	return shadergen.Temp(shadergen.Float3, "_camDir",
		shadergen.Custom("normalize(-", ")", ecPos()))
}

func eyeDepth() shadergen.ShaderNode {
	return shadergen.Temp(shadergen.Float, "_ecDepth",
		shadergen.Custom("(-", ".z)", ecPos()))
}

func toLight(i int) shadergen.ShaderNode {
	return shadergen.Temp(shadergen.Float3, "_toLight"+strconv.Itoa(i),
		shadergen.Op(
			shadergen.Custom("", ".xyz", shadergen.VarRef(shadergen.VarLightPos(i))),
			ecPos(),
			"-", true,
		))
}

// lightGeom supplies the per-light geometry nodes a lighting sum is built
// from, so the same sums serve both the vertex trees (eye-space temps) and
// the per-pixel trees (varyings).
type lightGeom struct {
	toLight   func(i int) shadergen.ShaderNode
	normal    func() shadergen.ShaderNode
	cameraDir func() shadergen.ShaderNode
}

var vertexGeom = lightGeom{toLight: toLight, normal: eyeNormal, cameraDir: cameraDir}

// pixelGeom rebuilds the same intermediates from the interpolated varyings.
// Temp names may repeat the vertex ones since each stage owns its table.
var pixelGeom = lightGeom{
	toLight: func(i int) shadergen.ShaderNode {
		return shadergen.Temp(shadergen.Float3, "_toLight"+strconv.Itoa(i),
			shadergen.Op(
				shadergen.Custom("", ".xyz", shadergen.VarRef(shadergen.VarLightPos(i))),
				shadergen.TypedVarRef(shadergen.Float3, VaryEcPos, ""),
				"-", true,
			))
	},
	normal: func() shadergen.ShaderNode {
		return shadergen.Temp(shadergen.Float3, "_nrm",
			shadergen.Custom("normalize(", ")",
				shadergen.TypedVarRef(shadergen.Float3, VaryNormal, "")))
	},
	cameraDir: func() shadergen.ShaderNode {
		return shadergen.Temp(shadergen.Float3, "_camDir",
			shadergen.Custom("normalize(-", ")",
				shadergen.TypedVarRef(shadergen.Float3, VaryEcPos, "")))
	},
}

// attenuation combines distance and spotlight falloff for one light slot.
// Either factor drops out when its uniforms are not bound; with neither the
// node fails and the light shines unattenuated.
func attenuation(g lightGeom, i int) shadergen.ShaderNode {
	return shadergen.Op(
		shadergen.Attenuate(g.toLight(i), shadergen.VarRef(shadergen.VarLightAtten(i))),
		shadergen.SpotAtten(g.toLight(i),
			shadergen.VarRef(shadergen.VarSpotParams(i)),
			shadergen.VarRef(shadergen.VarSpotDir(i))),
		"*", false,
	)
}

func diffuseSum(g lightGeom) shadergen.ShaderNode {
	terms := make([]shadergen.ShaderNode, 0, MaxLights+1)
	terms = append(terms, shadergen.VarRef(shadergen.VarAmbientColor))
	for i := 0; i < MaxLights; i++ {
		terms = append(terms, shadergen.IVarCheck(IVarLight(i),
			shadergen.Light(
				g.toLight(i), g.normal(),
				shadergen.VarRef(shadergen.VarLightColor(i)),
				attenuation(g, i),
			)))
	}
	return shadergen.Additive(terms...)
}

func specularSum(g lightGeom) shadergen.ShaderNode {
	terms := make([]shadergen.ShaderNode, 0, MaxLights)
	for i := 0; i < MaxLights; i++ {
		terms = append(terms, shadergen.IVarCheck(IVarLight(i),
			shadergen.SpecLight(
				g.toLight(i), g.cameraDir(), g.normal(),
				shadergen.VarRef(shadergen.VarLightSpecColor(i)),
				attenuation(g, i),
			)))
	}
	// Material specular color scales the sum when bound.
	return shadergen.Op(
		shadergen.Additive(terms...),
		shadergen.VarRef(shadergen.VarSpecularColor),
		"*", false,
	)
}

func fogFactor() shadergen.ShaderNode {
	return shadergen.Fallback(
		shadergen.IVarCheck(IVarFogLinear,
			shadergen.LinearFog(eyeDepth(), shadergen.VarRef(shadergen.VarFogParams))),
		shadergen.IVarCheck(IVarFogExp,
			shadergen.ExpFog(eyeDepth(), shadergen.VarRef(shadergen.VarFogDensity), false)),
		shadergen.IVarCheck(IVarFogExp2,
			shadergen.ExpFog(eyeDepth(), shadergen.VarRef(shadergen.VarFogDensity), true)),
	)
}

// litVertexDef is the vertex recipe shared by [LitShader]. Every entry but
// gl_Position is optional: what cannot be expressed for a material simply
// produces no varying.
func litVertexDef() *shadergen.ShaderDef {
	return shadergen.NewShaderDef(map[string]shadergen.ShaderNode{
		"gl_Position": shadergen.PosRef(),
		VaryColor: shadergen.FallbackRef(
			shadergen.VarColor, shadergen.VarDiffuseColor, white),
		VaryLighting: shadergen.IVarCheck(IVarLighting, diffuseSum(vertexGeom)),
		VarySpecular: shadergen.IVarCheck(IVarSpecular, specularSum(vertexGeom)),
		VaryFog:      fogFactor(),
		VaryUV0:      shadergen.TypedVarRef(shadergen.Float2, shadergen.VarUV0, ""),
		VaryUV1:      shadergen.TypedVarRef(shadergen.Float2, shadergen.VarUV1, ""),
		VaryReflUV: shadergen.IVarCheck(IVarReflection,
			shadergen.Reflect(eyeNormal(), ecPos())),
	})
}

// surfaceColor builds the fragment chain from base color through the two
// texture stages: each stage combines over the next via its mode uniform
// and the whole chain degrades to the interpolated color when untextured.
func surfaceColor() shadergen.ShaderNode {
	vColor := shadergen.VarRefConst(VaryColor, white)
	tex1 := shadergen.Fallback(
		shadergen.TexRef(shadergen.VarTexture1, shadergen.VarTexMode1,
			shadergen.FallbackRef(VaryUV1, VaryUV0, ""), vColor),
		vColor,
	)
	tex0 := shadergen.TexRef(shadergen.VarTexture0, shadergen.VarTexMode0,
		shadergen.VarRef(VaryUV0), tex1)
	return shadergen.Fallback(shadergen.IVarCheck(IVarTextured, tex0), vColor)
}

// fragmentDef assembles the fragment chain around the given lighting and
// specular terms: texture stages modulated by lighting, specular map,
// reflection mix, emissive add and fog blend.
func fragmentDef(lighting, specular shadergen.ShaderNode) *shadergen.ShaderDef {
	lit := shadergen.Op(surfaceColor(), lighting, "*", false)
	spec := shadergen.IVarCheck(IVarSpecular,
		shadergen.Op(
			specular,
			shadergen.SpecularTex(shadergen.VarSpecularTex, shadergen.VarRef(VaryUV0), nil),
			"*", false,
		))
	shaded := shadergen.Op(lit, spec, "+", false)
	mirrored := shadergen.Fallback(
		shadergen.IVarCheck(IVarReflection,
			shadergen.CubeRef(shadergen.VarReflTex, "",
				shadergen.VarRef(shadergen.VarReflAlpha),
				shadergen.VarRef(VaryReflUV),
				shaded)),
		shaded,
	)
	glowing := shadergen.Op(mirrored, shadergen.VarRef(shadergen.VarEmissiveColor), "+", false)
	fogged := shadergen.AffineBlend(
		shadergen.VarRef(VaryFog),
		shadergen.VarRef(shadergen.VarFogColor),
		glowing,
	)
	return shadergen.NewShaderDef(map[string]shadergen.ShaderNode{
		"gl_FragColor": fogged,
	})
}

// LitShader returns the full fixed-function shader pair: transform, up to
// [MaxLights] per-vertex lights with distance and spotlight attenuation,
// two modulated texture stages, specular and reflection maps, emissive
// color and three fog modes.
func LitShader() (vs, fs *shadergen.ShaderDef) {
	return litVertexDef(), fragmentDef(
		shadergen.VarRef(VaryLighting),
		shadergen.VarRef(VarySpecular),
	)
}

// PixelLitShader returns a shader pair evaluating the lighting model per
// fragment instead of per vertex: the vertex stage passes eye-space
// position and normal varyings and the fragment stage runs the same light
// sums over the interpolated values.
func PixelLitShader() (vs, fs *shadergen.ShaderDef) {
	vs = shadergen.NewShaderDef(map[string]shadergen.ShaderNode{
		"gl_Position": shadergen.PosRef(),
		VaryColor: shadergen.FallbackRef(
			shadergen.VarColor, shadergen.VarDiffuseColor, white),
		VaryNormal: shadergen.IVarCheck(IVarLighting, eyeNormal()),
		VaryEcPos:  shadergen.IVarCheck(IVarLighting, ecPos()),
		VaryFog:    fogFactor(),
		VaryUV0:    shadergen.TypedVarRef(shadergen.Float2, shadergen.VarUV0, ""),
		VaryUV1:    shadergen.TypedVarRef(shadergen.Float2, shadergen.VarUV1, ""),
		VaryReflUV: shadergen.IVarCheck(IVarReflection,
			shadergen.Reflect(eyeNormal(), ecPos())),
	})
	fs = fragmentDef(
		shadergen.IVarCheck(IVarLighting, diffuseSum(pixelGeom)),
		specularSum(pixelGeom),
	)
	return vs, fs
}

// UnlitShader returns a shader pair with texturing and fog but no lighting:
// the fragment color is the per-vertex color through the texture chain.
func UnlitShader() (vs, fs *shadergen.ShaderDef) {
	vs = shadergen.NewShaderDef(map[string]shadergen.ShaderNode{
		"gl_Position": shadergen.PosRef(),
		VaryColor: shadergen.FallbackRef(
			shadergen.VarColor, shadergen.VarDiffuseColor, white),
		VaryFog: fogFactor(),
		VaryUV0: shadergen.TypedVarRef(shadergen.Float2, shadergen.VarUV0, ""),
		VaryUV1: shadergen.TypedVarRef(shadergen.Float2, shadergen.VarUV1, ""),
	})
	fogged := shadergen.AffineBlend(
		shadergen.VarRef(VaryFog),
		shadergen.VarRef(shadergen.VarFogColor),
		surfaceColor(),
	)
	fs = shadergen.NewShaderDef(map[string]shadergen.ShaderNode{
		"gl_FragColor": fogged,
	})
	return vs, fs
}
