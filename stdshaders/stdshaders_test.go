package stdshaders_test

import (
	"strings"
	"testing"

	"github.com/soypat/geometry/ms3"

	"github.com/soypat/shadergen"
	"github.com/soypat/shadergen/stdshaders"
)

func generate(t *testing.T, m *shadergen.Material) *shadergen.ShaderPair {
	t.Helper()
	vs, fs := stdshaders.LitShader()
	pair, err := shadergen.NewShaderContext(vs, fs).Generate(m)
	if err != nil {
		t.Fatal(err)
	}
	return pair
}

func TestLitShaderBare(t *testing.T) {
	pair := generate(t, stdshaders.BaseMaterial())
	if !strings.Contains(pair.VertexSource, "gl_Position = ("+shadergen.VarMVP+" * "+shadergen.VarPosition+");") {
		t.Errorf("vertex transform missing:\n%s", pair.VertexSource)
	}
	// No lights, textures or fog: the fragment reduces to the color varying.
	if !strings.Contains(pair.FragmentSource, "gl_FragColor = "+stdshaders.VaryColor+";") {
		t.Errorf("bare material must pass the color through:\n%s", pair.FragmentSource)
	}
	for _, absent := range []string{
		stdshaders.VaryLighting, stdshaders.VarySpecular,
		stdshaders.VaryFog, stdshaders.VaryReflUV, "_texCombine",
	} {
		if strings.Contains(pair.VertexSource, absent) {
			t.Errorf("bare vertex shader must not mention %s:\n%s", absent, pair.VertexSource)
		}
	}
	if !strings.Contains(pair.VertexSource, stdshaders.VaryColor+" = vec4(1.0, 1.0, 1.0, 1.0);") {
		t.Errorf("default white color missing:\n%s", pair.VertexSource)
	}
}

func TestLitShaderLighting(t *testing.T) {
	m := stdshaders.BaseMaterial()
	stdshaders.EnableLighting(m, 0.2, 0.2, 0.2)
	stdshaders.EnableLight(m, 0, ms3.Vec{X: 0, Y: 4, Z: 2}, 1, 1, 0.8)
	pair := generate(t, m)

	for _, want := range []string{
		"vec3 _ecPos = ",
		"vec3 _ecNormal = normalize(" + shadergen.VarNormalMat + " * " + shadergen.VarNormal + ");",
		"vec3 _toLight0 = (" + shadergen.VarLightPos(0) + ".xyz - _ecPos);",
		stdshaders.VaryLighting + " = (" + shadergen.VarAmbientColor + " + ",
		"varying vec4 " + stdshaders.VaryLighting + ";",
	} {
		if !strings.Contains(pair.VertexSource, want) {
			t.Errorf("vertex source missing %q:\n%s", want, pair.VertexSource)
		}
	}
	// _ecPos feeds _toLight0, declaration order must respect that.
	if strings.Index(pair.VertexSource, "vec3 _ecPos = ") > strings.Index(pair.VertexSource, "vec3 _toLight0 = ") {
		t.Errorf("_ecPos must be declared before _toLight0:\n%s", pair.VertexSource)
	}
	if !strings.Contains(pair.FragmentSource, " * "+stdshaders.VaryLighting+")") {
		t.Errorf("fragment must modulate by lighting:\n%s", pair.FragmentSource)
	}
	// Light slots 1 and 2 stay disabled.
	if strings.Contains(pair.VertexSource, "_toLight1") || strings.Contains(pair.VertexSource, "_toLight2") {
		t.Errorf("disabled light slots leaked:\n%s", pair.VertexSource)
	}
	if !pair.VertexUsed.Has(shadergen.VarLightPos(0)) {
		t.Error("vertex used-set missing light position")
	}
}

func TestLitShaderSpotlight(t *testing.T) {
	m := stdshaders.BaseMaterial()
	stdshaders.EnableLighting(m, 0.1, 0.1, 0.1)
	stdshaders.EnableLight(m, 1, ms3.Vec{Y: 5}, 1, 1, 1)
	stdshaders.SetLightAttenuation(m, 1, 1, 0.1, 0.01)
	stdshaders.SetSpotlight(m, 1, ms3.Vec{Y: -1}, 30, 4)
	pair := generate(t, m)

	if n := strings.Count(pair.VertexSource, "float _spotAtten(vec3 toLight, vec3 spotDir, vec2 params)"); n != 1 {
		t.Errorf("spotlight helper emitted %d times, want 1:\n%s", n, pair.VertexSource)
	}
	if !strings.Contains(pair.VertexSource, "_spotAtten(_toLight1, "+shadergen.VarSpotDir(1)+", "+shadergen.VarSpotParams(1)+")") {
		t.Errorf("spotlight call missing:\n%s", pair.VertexSource)
	}
	if !strings.Contains(pair.VertexSource, "(1.0 / dot("+shadergen.VarLightAtten(1)+", ") {
		t.Errorf("distance attenuation missing:\n%s", pair.VertexSource)
	}
}

func TestLitShaderSpecular(t *testing.T) {
	m := stdshaders.BaseMaterial()
	stdshaders.EnableLighting(m, 0.1, 0.1, 0.1)
	stdshaders.EnableLight(m, 0, ms3.Vec{Z: 3}, 1, 1, 1)
	stdshaders.EnableSpecular(m, 1, 1, 1, 32)
	pair := generate(t, m)

	for _, want := range []string{
		"vec3 _camDir = normalize(-_ecPos);",
		stdshaders.VarySpecular + " = ",
		shadergen.VarShininess,
	} {
		if !strings.Contains(pair.VertexSource, want) {
			t.Errorf("vertex source missing %q:\n%s", want, pair.VertexSource)
		}
	}
	if !strings.Contains(pair.FragmentSource, " + "+stdshaders.VarySpecular+")") {
		t.Errorf("fragment must add the specular term:\n%s", pair.FragmentSource)
	}
}

func TestLitShaderTextured(t *testing.T) {
	m := stdshaders.BaseMaterial()
	stdshaders.EnableTexture(m, shadergen.TexModeModulate)
	pair := generate(t, m)

	if !strings.Contains(pair.VertexSource, stdshaders.VaryUV0+" = "+shadergen.VarUV0+";") {
		t.Errorf("uv varying missing:\n%s", pair.VertexSource)
	}
	want := "_texCombine(texture2D(" + shadergen.VarTexture0 + ", " + stdshaders.VaryUV0 + "), " +
		stdshaders.VaryColor + ", " + shadergen.VarTexMode0 + ")"
	if !strings.Contains(pair.FragmentSource, want) {
		t.Errorf("fragment source missing %q:\n%s", want, pair.FragmentSource)
	}
	if !pair.FragmentUsed.Has(shadergen.VarTexture0) {
		t.Error("fragment used-set missing the bound texture")
	}

	// The textured flag without a bound sampler falls back to plain color.
	m2 := stdshaders.BaseMaterial()
	m2.SetIVar(stdshaders.IVarTextured, 1)
	pair = generate(t, m2)
	if !strings.Contains(pair.FragmentSource, "gl_FragColor = "+stdshaders.VaryColor+";") {
		t.Errorf("missing sampler must degrade to color passthrough:\n%s", pair.FragmentSource)
	}
}

func TestLitShaderReflection(t *testing.T) {
	m := stdshaders.BaseMaterial()
	m.SetIVar(stdshaders.IVarReflection, 1)
	m.PutTexture(shadergen.VarReflTex, shadergen.SamplerCube)
	m.SetFloat(shadergen.VarReflAlpha, 0.4)
	pair := generate(t, m)

	if !strings.Contains(pair.VertexSource, stdshaders.VaryReflUV+" = reflect(normalize(_ecPos), _ecNormal);") {
		t.Errorf("reflection vector missing:\n%s", pair.VertexSource)
	}
	want := "mix(" + stdshaders.VaryColor + ", textureCube(" + shadergen.VarReflTex + ", " +
		stdshaders.VaryReflUV + "), " + shadergen.VarReflAlpha + ")"
	if !strings.Contains(pair.FragmentSource, want) {
		t.Errorf("fragment source missing %q:\n%s", want, pair.FragmentSource)
	}
}

func TestLitShaderFogModes(t *testing.T) {
	linear := stdshaders.BaseMaterial()
	stdshaders.EnableLinearFog(linear, 1, 20, 0.5, 0.5, 0.5)
	pair := generate(t, linear)
	if !strings.Contains(pair.VertexSource, stdshaders.VaryFog+" = clamp(("+shadergen.VarFogParams+".x - _ecDepth) * "+shadergen.VarFogParams+".y, 0.0, 1.0);") {
		t.Errorf("linear fog factor missing:\n%s", pair.VertexSource)
	}
	if !strings.Contains(pair.FragmentSource, "mix("+shadergen.VarFogColor+", ") {
		t.Errorf("fog blend missing:\n%s", pair.FragmentSource)
	}

	exp := stdshaders.BaseMaterial()
	stdshaders.EnableExpFog(exp, 0.25, false, 0.5, 0.5, 0.5)
	pair = generate(t, exp)
	if !strings.Contains(pair.VertexSource, "clamp(exp(-("+shadergen.VarFogDensity+" * _ecDepth)), 0.0, 1.0)") {
		t.Errorf("exp fog factor missing:\n%s", pair.VertexSource)
	}

	exp2 := stdshaders.BaseMaterial()
	stdshaders.EnableExpFog(exp2, 0.25, true, 0.5, 0.5, 0.5)
	pair = generate(t, exp2)
	if !strings.Contains(pair.VertexSource, "clamp(exp(-pow("+shadergen.VarFogDensity+" * _ecDepth, 2.0)), 0.0, 1.0)") {
		t.Errorf("exp2 fog factor missing:\n%s", pair.VertexSource)
	}
}

func TestUnlitShader(t *testing.T) {
	vs, fs := stdshaders.UnlitShader()
	m := stdshaders.BaseMaterial()
	stdshaders.EnableLighting(m, 0.2, 0.2, 0.2) // Ignored by the unlit trees.
	pair, err := shadergen.NewShaderContext(vs, fs).Generate(m)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(pair.VertexSource, stdshaders.VaryLighting) {
		t.Errorf("unlit shader must not light:\n%s", pair.VertexSource)
	}
	if !strings.Contains(pair.FragmentSource, "gl_FragColor = "+stdshaders.VaryColor+";") {
		t.Errorf("unlit passthrough missing:\n%s", pair.FragmentSource)
	}
}

func TestPixelLitShader(t *testing.T) {
	vs, fs := stdshaders.PixelLitShader()
	m := stdshaders.BaseMaterial()
	stdshaders.EnableLighting(m, 0.2, 0.2, 0.2)
	stdshaders.EnableLight(m, 0, ms3.Vec{Y: 4}, 1, 1, 1)
	pair, err := shadergen.NewShaderContext(vs, fs).Generate(m)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		stdshaders.VaryNormal + " = _ecNormal;",
		stdshaders.VaryEcPos + " = _ecPos;",
	} {
		if !strings.Contains(pair.VertexSource, want) {
			t.Errorf("vertex source missing %q:\n%s", want, pair.VertexSource)
		}
	}
	if strings.Contains(pair.VertexSource, stdshaders.VaryLighting) {
		t.Errorf("pixel-lit vertex stage must not compute lighting:\n%s", pair.VertexSource)
	}
	// The light sum now lives in the fragment stage over the varyings.
	for _, want := range []string{
		"vec3 _nrm = normalize(" + stdshaders.VaryNormal + ");",
		"vec3 _toLight0 = (" + shadergen.VarLightPos(0) + ".xyz - " + stdshaders.VaryEcPos + ");",
		"(max(dot(_nrm, normalize(_toLight0)), 0.0) * " + shadergen.VarLightColor(0) + ")",
	} {
		if !strings.Contains(pair.FragmentSource, want) {
			t.Errorf("fragment source missing %q:\n%s", want, pair.FragmentSource)
		}
	}
	if !pair.FragmentUsed.Has(shadergen.VarLightPos(0)) {
		t.Error("fragment used-set missing light position")
	}
	// Lighting disabled: the normal and position varyings disappear too.
	pair, err = shadergen.NewShaderContext(vs, fs).Generate(stdshaders.BaseMaterial())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(pair.VertexSource, stdshaders.VaryNormal) {
		t.Errorf("unlit material must not emit normal varying:\n%s", pair.VertexSource)
	}
}

func TestLitShaderDeterministic(t *testing.T) {
	m := stdshaders.BaseMaterial()
	stdshaders.EnableLighting(m, 0.2, 0.2, 0.2)
	stdshaders.EnableLight(m, 0, ms3.Vec{Y: 3}, 1, 1, 1)
	stdshaders.EnableTexture(m, shadergen.TexModeReplace)
	stdshaders.EnableLinearFog(m, 1, 30, 0.6, 0.6, 0.7)

	first := generate(t, m)
	second := generate(t, m)
	if first.VertexSource != second.VertexSource || first.FragmentSource != second.FragmentSource {
		t.Error("equal materials must generate identical source")
	}
}
