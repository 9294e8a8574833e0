package vulkanboot

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	vk "github.com/vulkan-go/vulkan"
)

type Configuration struct {
	Application ApplicationConfiguration
	Window      WindowConfiguration
	Validation  ValidationConfiguration
	Device      DeviceConfiguration
	Shaders     ShaderConfiguration
	LogLevel    string
}

type ApplicationConfiguration struct {
	Name          string
	Version       vk.Version
	EngineName    string
	EngineVersion vk.Version
	APIVersion    vk.Version
}

type WindowConfiguration struct {
	Title  string
	Width  int
	Height int
}

type ValidationConfiguration struct {
	Enabled bool
	Layers  []string
}

type DeviceConfiguration struct {
	Extensions []string
	Features   Features
}

type ShaderConfiguration struct {
	Directory string
	Vertex    string
	Fragment  string
}

func DefaultConfiguration() Configuration {
	return Configuration{
		Application: ApplicationConfiguration{
			Name:          "Hello Triangle",
			Version:       vk.Version(vk.MakeVersion(1, 0, 0)),
			EngineName:    "tjtech1",
			EngineVersion: vk.Version(vk.MakeVersion(1, 0, 0)),
			APIVersion:    vk.Version(vk.MakeVersion(1, 0, 0)),
		},
		Window: WindowConfiguration{
			Title:  "Vulkan",
			Width:  800,
			Height: 600,
		},
		Validation: ValidationConfiguration{
			Enabled: ValidationBuild,
			Layers:  []string{"VK_LAYER_LUNARG_standard_validation"},
		},
		Device: DeviceConfiguration{
			Extensions: []string{"VK_KHR_swapchain"},
			Features:   FeatureShaderInt16,
		},
		Shaders: ShaderConfiguration{
			Directory: "shaders",
			Vertex:    "vert.spv",
			Fragment:  "frag.spv",
		},
		LogLevel: "info",
	}
}

// LoadEnvFile merges a dotenv file into the environment seen by FromEnv.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	envy.Reload()
	return nil
}

// FromEnv overrides c with VKBOOT_* variables. Validation can be switched off
// by the environment but never on in a release build.
func (c Configuration) FromEnv() (Configuration, error) {
	c.Application.Name = envy.Get("VKBOOT_APP_NAME", c.Application.Name)
	c.Window.Title = envy.Get("VKBOOT_TITLE", c.Window.Title)
	c.Shaders.Directory = envy.Get("VKBOOT_SHADER_DIR", c.Shaders.Directory)
	c.Shaders.Vertex = envy.Get("VKBOOT_VERTEX_SHADER", c.Shaders.Vertex)
	c.Shaders.Fragment = envy.Get("VKBOOT_FRAGMENT_SHADER", c.Shaders.Fragment)
	c.LogLevel = envy.Get("VKBOOT_LOG_LEVEL", c.LogLevel)

	var err error
	if c.Window.Width, err = envInt("VKBOOT_WIDTH", c.Window.Width); err != nil {
		return c, err
	}
	if c.Window.Height, err = envInt("VKBOOT_HEIGHT", c.Window.Height); err != nil {
		return c, err
	}
	if v := envy.Get("VKBOOT_VALIDATION", ""); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return c, errors.Wrap(err, "VKBOOT_VALIDATION")
		}
		c.Validation.Enabled = on && ValidationBuild
	}
	if v := envy.Get("VKBOOT_VALIDATION_LAYERS", ""); v != "" {
		c.Validation.Layers = splitList(v)
	}
	if v := envy.Get("VKBOOT_DEVICE_EXTENSIONS", ""); v != "" {
		c.Device.Extensions = splitList(v)
	}
	if v := envy.Get("VKBOOT_DEVICE_FEATURES", ""); v != "" {
		if c.Device.Features, err = ParseFeatures(v); err != nil {
			return c, errors.Wrap(err, "VKBOOT_DEVICE_FEATURES")
		}
	}
	return c, nil
}

func envInt(key string, def int) (int, error) {
	v := envy.Get(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, errors.Wrap(err, key)
	}
	if n <= 0 {
		return def, errors.Newf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
