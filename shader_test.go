package tilegrid

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestShaderCacheBuiltInProgram(t *testing.T) {
	c := testShaders()
	p, err := c.ProgramForKey(ShaderPositionTextureUColor)
	if err != nil {
		t.Fatalf("ProgramForKey: %v", err)
	}
	if p.Key() != ShaderPositionTextureUColor {
		t.Errorf("Key = %q", p.Key())
	}
	loc := p.UniformLocation(UniformColor)
	if !loc.Valid() {
		t.Fatalf("UniformLocation(%q) invalid", UniformColor)
	}
	if name, ok := p.uniformName(loc); !ok || name != UniformColor {
		t.Errorf("uniformName(%d) = %q, %v", loc, name, ok)
	}
	if got := p.UniformLocation("u_missing"); got.Valid() || got != InvalidUniform {
		t.Errorf("UniformLocation(missing) = %d, want InvalidUniform", got)
	}
}

func TestShaderCacheCompilesOnce(t *testing.T) {
	c := NewShaderCache()
	compiles := 0
	c.compile = func([]byte) (*ebiten.Shader, error) {
		compiles++
		return nil, nil
	}
	a, _ := c.ProgramForKey(ShaderPositionTextureUColor)
	b, _ := c.ProgramForKey(ShaderPositionTextureUColor)
	if a != b || compiles != 1 {
		t.Errorf("compiles = %d, same program = %v; want 1 and true", compiles, a == b)
	}
}

func TestShaderCacheUnknownKey(t *testing.T) {
	_, err := testShaders().ProgramForKey("nope")
	if !errors.Is(err, ErrUnknownShader) {
		t.Errorf("err = %v, want ErrUnknownShader", err)
	}
}

func TestShaderCacheCompileError(t *testing.T) {
	c := NewShaderCache()
	boom := errors.New("boom")
	c.compile = func([]byte) (*ebiten.Shader, error) { return nil, boom }
	if _, err := c.ProgramForKey(ShaderPositionTextureUColor); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped compile error", err)
	}
}

func TestShaderCacheRegisterReplaces(t *testing.T) {
	c := testShaders()
	old, _ := c.ProgramForKey(ShaderPositionTextureUColor)
	c.Register(ShaderPositionTextureUColor, []byte("package main"), "Tint", UniformColor)
	p, err := c.ProgramForKey(ShaderPositionTextureUColor)
	if err != nil {
		t.Fatalf("ProgramForKey: %v", err)
	}
	if p == old {
		t.Error("Register should discard the compiled program")
	}
	if got := p.UniformLocation(UniformColor); got != 1 {
		t.Errorf("UniformLocation = %d, want 1", got)
	}
}
