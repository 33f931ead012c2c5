//go:build tinygo || !cgo

package glprog

import (
	"context"
	"errors"

	"github.com/soypat/shadergen"
)

var errNoCGO = errors.New("GPU shader compilation requires CGo and is not supported on TinyGo")

// Init1x1GLFW starts a 1x1 sized GLFW window so that the user can start
// compiling and running programs on the GPU.
func Init1x1GLFW() (terminate func(), err error) {
	return nil, errNoCGO
}

// Program is a generated shader pair compiled and linked on the GPU.
type Program struct {
	pair *shadergen.ShaderPair
}

// Compile compiles and links pair on the current GL context.
func Compile(pair *shadergen.ShaderPair) (*Program, error) {
	return nil, errNoCGO
}

// Pair returns the generated sources and used-variable sets the program was
// compiled from.
func (p *Program) Pair() *shadergen.ShaderPair { return p.pair }

func (p *Program) Bind()   {}
func (p *Program) Unbind() {}
func (p *Program) Delete() {}

func (p *Program) AttribLocation(name string) (uint32, error) {
	return 0, errNoCGO
}

func (p *Program) BindMaterial(m *shadergen.Material) error {
	return errNoCGO
}

// PreviewConfig parametrizes [Preview].
type PreviewConfig struct {
	Title         string
	Width, Height int
	Context       context.Context
}

// Preview opens a window and renders a fullscreen quad with the material's
// shader pair until the window closes or cfg.Context is cancelled.
func Preview(pair *shadergen.ShaderPair, m *shadergen.Material, cfg PreviewConfig) error {
	return errNoCGO
}
