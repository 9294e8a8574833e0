package vulkanboot

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/packr"
	vk "github.com/vulkan-go/vulkan"
)

// ShaderLoader reads a whole shader file.
type ShaderLoader interface {
	Load(name string) ([]byte, error)
}

// BoxLoader reads shaders from a packr box rooted at a directory. Builds made
// with the packr tool carry the files inside the binary.
type BoxLoader struct {
	box packr.Box
}

// NewBoxLoader roots the box at dir. Relative paths are taken from the
// working directory, not from this source file.
func NewBoxLoader(dir string) (*BoxLoader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "shader directory %s", dir)
	}
	return &BoxLoader{box: packr.NewBox(abs)}, nil
}

func (l *BoxLoader) Load(name string) ([]byte, error) {
	return l.box.Find(name)
}

type Shader struct {
	Stage vk.ShaderStageFlagBits
	Name  string
	Code  []uint32
}

// LoadShaders reads the vertex and fragment shaders. Any unreadable or empty
// file is an ErrShaderLoad.
func LoadShaders(l ShaderLoader, cfg ShaderConfiguration) ([]Shader, error) {
	files := []struct {
		stage vk.ShaderStageFlagBits
		name  string
	}{
		{vk.ShaderStageVertexBit, cfg.Vertex},
		{vk.ShaderStageFragmentBit, cfg.Fragment},
	}
	shaders := make([]Shader, 0, len(files))
	for _, f := range files {
		data, err := l.Load(f.name)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "read %s", f.name), ErrShaderLoad)
		}
		code, err := Bytecode(data)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", f.name)
		}
		shaders = append(shaders, Shader{Stage: f.stage, Name: f.name, Code: code})
	}
	return shaders, nil
}

// Bytecode repacks SPIR-V bytes into little-endian words.
func Bytecode(b []byte) ([]uint32, error) {
	if len(b) == 0 {
		return nil, errors.Wrap(ErrShaderLoad, "empty shader")
	}
	if len(b)%4 != 0 {
		return nil, errors.Wrapf(ErrShaderLoad, "truncated shader: %d bytes", len(b))
	}
	code := make([]uint32, len(b)/4)
	for i := range code {
		code[i] = uint32(b[4*i]) | uint32(b[4*i+1])<<8 | uint32(b[4*i+2])<<16 | uint32(b[4*i+3])<<24
	}
	return code, nil
}
