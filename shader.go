package tilegrid

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ShaderPositionTextureUColor is the key of the built-in program that samples
// the atlas texture and multiplies it by a uniform color.
const ShaderPositionTextureUColor = "ShaderPositionTextureUColor"

// ShaderPositionTextureUColorStraight is the built-in program for nodes whose
// opacity does not modify RGB: the texel is multiplied by the uniform as is
// and the blend state applies alpha.
const ShaderPositionTextureUColorStraight = "ShaderPositionTextureUColorStraight"

// UniformColor is the uniform name of the built-in program's color.
const UniformColor = "UColor"

// The uniform is straight RGBA; premultiplication happens here so that opacity
// scales color the same way Ebitengine's ColorScale does.
const positionTextureUColorShaderSrc = `//kage:unit pixels
package main

var UColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	return imageSrc0At(src) * vec4(UColor.rgb*UColor.a, UColor.a)
}
`

const positionTextureUColorStraightShaderSrc = `//kage:unit pixels
package main

var UColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	return imageSrc0At(src) * UColor
}
`

// UniformLocation identifies a uniform within a ShaderProgram.
type UniformLocation int

// InvalidUniform is returned for uniform names the program does not declare.
const InvalidUniform UniformLocation = -1

// Valid reports whether the location refers to a declared uniform.
func (l UniformLocation) Valid() bool { return l >= 0 }

// ShaderProgram is a compiled Kage shader with its declared uniform names.
type ShaderProgram struct {
	key      string
	shader   *ebiten.Shader
	uniforms []string
}

// Key returns the cache key the program was compiled under.
func (p *ShaderProgram) Key() string { return p.key }

// Shader returns the compiled Kage shader.
func (p *ShaderProgram) Shader() *ebiten.Shader { return p.shader }

// UniformLocation returns the location of the named uniform, or
// InvalidUniform if the program does not declare it.
func (p *ShaderProgram) UniformLocation(name string) UniformLocation {
	for i, u := range p.uniforms {
		if u == name {
			return UniformLocation(i)
		}
	}
	return InvalidUniform
}

// uniformName resolves a location back to its uniform name.
func (p *ShaderProgram) uniformName(loc UniformLocation) (string, bool) {
	if !loc.Valid() || int(loc) >= len(p.uniforms) {
		return "", false
	}
	return p.uniforms[loc], true
}

type shaderSource struct {
	src      []byte
	uniforms []string
}

// ShaderCache compiles registered Kage sources on first request and keeps the
// resulting programs for the life of the cache.
type ShaderCache struct {
	sources  map[string]shaderSource
	programs map[string]*ShaderProgram
	compile  func(src []byte) (*ebiten.Shader, error)
}

// NewShaderCache creates a cache with the built-in programs registered.
func NewShaderCache() *ShaderCache {
	c := &ShaderCache{
		sources:  make(map[string]shaderSource),
		programs: make(map[string]*ShaderProgram),
		compile:  ebiten.NewShader,
	}
	c.Register(ShaderPositionTextureUColor, []byte(positionTextureUColorShaderSrc), UniformColor)
	c.Register(ShaderPositionTextureUColorStraight, []byte(positionTextureUColorStraightShaderSrc), UniformColor)
	return c
}

// default cache singleton (no sync.Once: tilegrid is single-threaded)
var defaultShaderCache *ShaderCache

// DefaultShaderCache returns the process-wide cache used by nodes created
// without an explicit Options.Shaders.
func DefaultShaderCache() *ShaderCache {
	if defaultShaderCache == nil {
		defaultShaderCache = NewShaderCache()
	}
	return defaultShaderCache
}

// Register adds a Kage source under key. Uniform names are listed in the order
// that defines their locations. Registering an existing key replaces the source
// and discards the compiled program.
func (c *ShaderCache) Register(key string, src []byte, uniforms ...string) {
	c.sources[key] = shaderSource{src: src, uniforms: uniforms}
	if p, ok := c.programs[key]; ok {
		if p.shader != nil {
			p.shader.Deallocate()
		}
		delete(c.programs, key)
	}
}

// ProgramForKey returns the compiled program for key, compiling it on first use.
func (c *ShaderCache) ProgramForKey(key string) (*ShaderProgram, error) {
	if p, ok := c.programs[key]; ok {
		return p, nil
	}
	src, ok := c.sources[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShader, key)
	}
	s, err := c.compile(src.src)
	if err != nil {
		return nil, fmt.Errorf("tilegrid: compile shader %q: %w", key, err)
	}
	p := &ShaderProgram{key: key, shader: s, uniforms: src.uniforms}
	c.programs[key] = p
	return p, nil
}
