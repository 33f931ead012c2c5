//go:build !tinygo && cgo

// Package glprog compiles generated shader pairs into OpenGL programs and
// binds material values to their uniforms. It requires CGo and a live GL
// context; see [Init1x1GLFW] for headless use.
package glprog

import (
	"context"
	"errors"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.1-core/glgl"

	"github.com/soypat/shadergen"
)

// Init1x1GLFW starts a 1x1 sized GLFW window so that the user can start
// compiling and running programs on the GPU. It returns a termination
// function that should be called when done.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "shadergen",
		Version: [2]int{3, 3},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// Program is a generated shader pair compiled and linked on the GPU.
type Program struct {
	prog glgl.Program
	pair *shadergen.ShaderPair
}

// Compile compiles and links pair on the current GL context.
func Compile(pair *shadergen.ShaderPair) (*Program, error) {
	if pair == nil {
		return nil, errors.New("glprog: nil shader pair")
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   pair.VertexSource + "\x00",
		Fragment: pair.FragmentSource + "\x00",
	})
	if err != nil {
		return nil, errors.New(pair.VertexSource + "\n" + pair.FragmentSource + "\n" + err.Error())
	}
	return &Program{prog: prog, pair: pair}, nil
}

// Pair returns the generated sources and used-variable sets the program was
// compiled from.
func (p *Program) Pair() *shadergen.ShaderPair { return p.pair }

// Bind makes the program current.
func (p *Program) Bind() { p.prog.Bind() }

// Unbind deselects the program.
func (p *Program) Unbind() { p.prog.Unbind() }

// Delete releases the GPU program. The Program must not be used afterwards.
func (p *Program) Delete() { p.prog.Delete() }

// AttribLocation returns the location of a vertex attribute such as
// [shadergen.VarPosition]. The program must be bound.
func (p *Program) AttribLocation(name string) (uint32, error) {
	return p.prog.AttribLocation(name + "\x00")
}

// BindMaterial uploads m's uniform values for every uniform either stage
// reported as used. Uniforms without a stored value (samplers, names the
// material never set) and uniforms the linker eliminated are skipped. The
// program must be bound.
func (p *Program) BindMaterial(m *shadergen.Material) error {
	seen := make(map[string]bool)
	for _, used := range []shadergen.Layout{p.pair.VertexUsed, p.pair.FragmentUsed} {
		for _, vr := range used.Vars() {
			if vr.Class != shadergen.ClassUniform || seen[vr.Name] {
				continue
			}
			seen[vr.Name] = true
			val := m.Value(vr.Name)
			if len(val) < vr.Type.Components() || vr.Type.Components() == 0 {
				continue
			}
			loc, err := p.prog.UniformLocation(vr.Name + "\x00")
			if err != nil {
				continue // Linker eliminated the uniform.
			}
			switch vr.Type {
			case shadergen.Float:
				gl.Uniform1f(loc, val[0])
			case shadergen.Float2:
				gl.Uniform2f(loc, val[0], val[1])
			case shadergen.Float3:
				gl.Uniform3f(loc, val[0], val[1], val[2])
			case shadergen.Float4:
				gl.Uniform4f(loc, val[0], val[1], val[2], val[3])
			case shadergen.Mat3:
				gl.UniformMatrix3fv(loc, 1, false, &val[0])
			case shadergen.Mat4:
				gl.UniformMatrix4fv(loc, 1, false, &val[0])
			}
		}
	}
	return glgl.Err()
}

// PreviewConfig parametrizes [Preview].
type PreviewConfig struct {
	Title         string
	Width, Height int
	// Context optionally cancels the render loop.
	Context context.Context
}

// Preview opens a window and renders a fullscreen quad with the material's
// shader pair until the window closes or cfg.Context is cancelled. Intended
// for eyeballing generated shaders during development.
func Preview(pair *shadergen.ShaderPair, m *shadergen.Material, cfg PreviewConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.Title == "" {
		cfg.Title = "shadergen preview"
	}
	window, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   cfg.Title,
		Version: [2]int{3, 3},
		Width:   cfg.Width,
		Height:  cfg.Height,
	})
	if err != nil {
		return err
	}
	defer terminate()

	prog, err := Compile(pair)
	if err != nil {
		return err
	}
	defer prog.Delete()
	prog.Bind()
	defer prog.Unbind()

	// Quad covering the screen, fed to the position attribute as xy with
	// z and w taking their 0 and 1 defaults.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	vertices := []float32{
		-1.0, -1.0,
		1.0, -1.0,
		-1.0, 1.0,
		-1.0, 1.0,
		1.0, -1.0,
		1.0, 1.0,
	}
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	posAttrib, err := prog.AttribLocation(shadergen.VarPosition)
	if err != nil {
		return err
	}
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointer(posAttrib, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	if err := glgl.Err(); err != nil {
		return err
	}

	ctx := cfg.Context
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		gl.ClearColor(0.0, 0.0, 0.0, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		prog.Bind()
		if err := prog.BindMaterial(m); err != nil {
			return err
		}
		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		window.SwapBuffers()

		time.Sleep(time.Second / 60)
		glfw.PollEvents()
	}
	return nil
}
