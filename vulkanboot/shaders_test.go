package vulkanboot

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestBytecode(t *testing.T) {
	code, err := Bytecode(spirv())
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x07230203, 0x00010000}, code)

	_, err = Bytecode(nil)
	assert.True(t, errors.Is(err, ErrShaderLoad))
	_, err = Bytecode([]byte{1, 2, 3, 4, 5})
	assert.True(t, errors.Is(err, ErrShaderLoad))
}

func TestLoadShaders(t *testing.T) {
	cfg := DefaultConfiguration().Shaders
	shaders, err := LoadShaders(shaderFiles(), cfg)
	require.NoError(t, err)
	require.Len(t, shaders, 2)
	assert.Equal(t, vk.ShaderStageVertexBit, shaders[0].Stage)
	assert.Equal(t, "vert.spv", shaders[0].Name)
	assert.Equal(t, vk.ShaderStageFragmentBit, shaders[1].Stage)

	_, err = LoadShaders(mapLoader{"frag.spv": spirv()}, cfg)
	assert.True(t, errors.Is(err, ErrShaderLoad))
	assert.Contains(t, err.Error(), "vert.spv")
}

func TestBoxLoaderMissingFile(t *testing.T) {
	l, err := NewBoxLoader(filepath.Join(t.TempDir(), "shaders"))
	require.NoError(t, err)
	_, err = l.Load("vert.spv")
	assert.Error(t, err)

	_, err = LoadShaders(l, DefaultConfiguration().Shaders)
	assert.True(t, errors.Is(err, ErrShaderLoad))
}
