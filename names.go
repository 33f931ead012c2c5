package shadergen

import "strconv"

// Well-known variable names shared between generator trees and materials.
// Generator trees reference these names; materials that want the matching
// feature register a variable under the same name.
const (
	VarPosition = "_position" // vec4 vertex attribute.
	VarNormal   = "_normal"   // vec3 vertex attribute.
	VarColor    = "_color"    // vec4 per-vertex color attribute.
	VarUV0      = "_uv0"      // vec2 primary texture coordinate attribute.
	VarUV1      = "_uv1"      // vec2 secondary texture coordinate attribute.

	VarMVP       = "_mvp"       // mat4 model-view-projection matrix.
	VarModelView = "_modelView" // mat4 model-view matrix.
	VarNormalMat = "_normalMat" // mat3 inverse-transpose model-view matrix.

	VarAmbientColor  = "_ambientColor"  // vec4 material ambient term.
	VarDiffuseColor  = "_diffuseColor"  // vec4 material diffuse term.
	VarSpecularColor = "_specularColor" // vec4 material specular term.
	VarEmissiveColor = "_emissiveColor" // vec4 material emissive term.
	VarShininess     = "_shininess"     // float specular exponent.

	VarTexture0    = "_texture0"    // sampler2D primary texture.
	VarTexture1    = "_texture1"    // sampler2D secondary texture.
	VarTexMode0    = "_texMode0"    // float combine mode for the primary texture.
	VarTexMode1    = "_texMode1"    // float combine mode for the secondary texture.
	VarSpecularTex = "_specularTex" // sampler2D specular map.
	VarReflTex     = "_reflTex"     // samplerCube reflection environment map.
	VarReflAlpha   = "_reflAlpha"   // float reflection blend weight.

	VarFogColor   = "_fogColor"   // vec4 fog color.
	VarFogParams  = "_fogParams"  // vec2 linear fog (end, 1/(end-start)).
	VarFogDensity = "_fogDensity" // float exponential fog density.
)

// Texture combine modes stored in the VarTexMode* uniforms.
const (
	TexModeReplace  float32 = 0
	TexModeModulate float32 = 1
	TexModeAdd      float32 = 2
)

// VarLightPos returns the name of light i's eye-space position uniform (vec4).
func VarLightPos(i int) string { return "_lightPos" + strconv.Itoa(i) }

// VarLightColor returns the name of light i's diffuse color uniform (vec4).
func VarLightColor(i int) string { return "_lightColor" + strconv.Itoa(i) }

// VarLightSpecColor returns the name of light i's specular color uniform (vec4).
func VarLightSpecColor(i int) string { return "_lightSpecColor" + strconv.Itoa(i) }

// VarLightAtten returns the name of light i's attenuation uniform, a vec3 of
// constant, linear and quadratic factors.
func VarLightAtten(i int) string { return "_lightAtten" + strconv.Itoa(i) }

// VarSpotDir returns the name of light i's spotlight direction uniform (vec3).
func VarSpotDir(i int) string { return "_spotDir" + strconv.Itoa(i) }

// VarSpotParams returns the name of light i's spotlight parameter uniform, a
// vec2 of cosine cutoff and falloff exponent.
func VarSpotParams(i int) string { return "_spotParams" + strconv.Itoa(i) }
