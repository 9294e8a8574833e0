package vulkanboot

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// PhysicalDevice is the position of a GPU in the platform enumeration order.
type PhysicalDevice int

// Resource is one owned platform handle. Destroy releases exactly that handle.
type Resource interface {
	Destroy()
}

// ResourceFunc adapts a plain function to Resource.
type ResourceFunc func()

func (f ResourceFunc) Destroy() {
	f()
}

type DeviceInfo struct {
	Name          string
	VendorID      uint32
	Type          vk.PhysicalDeviceType
	APIVersion    vk.Version
	DriverVersion vk.Version
}

type QueueFamily struct {
	Index uint32
	Flags vk.QueueFlags
	Count uint32
}

func (q QueueFamily) Graphics() bool {
	return q.Flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0
}

type Extent struct {
	Width  uint32
	Height uint32
}

type SurfaceFormat struct {
	Format     vk.Format
	ColorSpace vk.ColorSpace
}

type SurfaceCapabilities struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent
	MinImageExtent          Extent
	MaxImageExtent          Extent
	MaxImageArrayLayers     uint32
	SupportedTransforms     vk.SurfaceTransformFlags
	CurrentTransform        vk.SurfaceTransformFlagBits
	SupportedCompositeAlpha vk.CompositeAlphaFlags
	SupportedUsageFlags     vk.ImageUsageFlags
}

// SurfaceSupport is what one device can do with one surface.
type SurfaceSupport struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []vk.PresentMode
}

// Usable reports whether a swapchain could be negotiated at all.
func (s SurfaceSupport) Usable() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// Features is a set of optional device features.
type Features uint32

const (
	FeatureShaderInt16 Features = 1 << iota
	FeatureShaderInt64
	FeatureShaderFloat64
	FeatureGeometryShader
	FeatureTessellationShader
	FeatureSamplerAnisotropy
	FeatureFillModeNonSolid
	FeatureWideLines
)

var featureNames = map[Features]string{
	FeatureShaderInt16:        "shaderInt16",
	FeatureShaderInt64:        "shaderInt64",
	FeatureShaderFloat64:      "shaderFloat64",
	FeatureGeometryShader:     "geometryShader",
	FeatureTessellationShader: "tessellationShader",
	FeatureSamplerAnisotropy:  "samplerAnisotropy",
	FeatureFillModeNonSolid:   "fillModeNonSolid",
	FeatureWideLines:          "wideLines",
}

// Has reports whether every feature in want is present in f.
func (f Features) Has(want Features) bool {
	return f&want == want
}

func (f Features) Names() []string {
	var names []string
	for bit, name := range featureNames {
		if f&bit != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (f Features) String() string {
	return strings.Join(f.Names(), ",")
}

// ParseFeatures reads a comma separated list of feature names.
func ParseFeatures(s string) (Features, error) {
	var f Features
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var found bool
		for bit, known := range featureNames {
			if known == name {
				f |= bit
				found = true
				break
			}
		}
		if !found {
			return 0, errors.Newf("unknown device feature %q", name)
		}
	}
	return f, nil
}

// CapabilityQuery enumerates what the platform and its GPUs offer. All methods
// are reads; an empty result means the capability is unavailable.
type CapabilityQuery interface {
	InstanceLayers() ([]string, error)
	InstanceExtensions() ([]string, error)
	PhysicalDevices() ([]PhysicalDevice, error)
	DeviceInfo(gpu PhysicalDevice) (DeviceInfo, error)
	DeviceFeatures(gpu PhysicalDevice) (Features, error)
	DeviceExtensions(gpu PhysicalDevice) ([]string, error)
	QueueFamilies(gpu PhysicalDevice) ([]QueueFamily, error)
	PresentSupport(gpu PhysicalDevice, family uint32, surface Resource) (bool, error)
	SurfaceSupport(gpu PhysicalDevice, surface Resource) (SurfaceSupport, error)
}

type CapabilitySnapshot struct {
	InstanceLayers     []string
	InstanceExtensions []string
	Devices            []DeviceSnapshot
}

type DeviceSnapshot struct {
	Device        PhysicalDevice
	Info          DeviceInfo
	Features      Features
	Extensions    []string
	QueueFamilies []QueueFamily
	Surface       SurfaceSupport
}

// Capture queries everything the platform reports for the instance and every
// physical device against surface.
func Capture(q CapabilityQuery, surface Resource) (CapabilitySnapshot, error) {
	var snap CapabilitySnapshot
	var err error
	if snap.InstanceLayers, err = q.InstanceLayers(); err != nil {
		return snap, errors.Wrap(err, "list instance layers")
	}
	if snap.InstanceExtensions, err = q.InstanceExtensions(); err != nil {
		return snap, errors.Wrap(err, "list instance extensions")
	}
	gpus, err := q.PhysicalDevices()
	if err != nil {
		return snap, errors.Wrap(err, "list physical devices")
	}
	for _, gpu := range gpus {
		dev := DeviceSnapshot{Device: gpu}
		if dev.Info, err = q.DeviceInfo(gpu); err != nil {
			return snap, errors.Wrapf(err, "device %d properties", gpu)
		}
		if dev.Features, err = q.DeviceFeatures(gpu); err != nil {
			return snap, errors.Wrapf(err, "device %d features", gpu)
		}
		if dev.Extensions, err = q.DeviceExtensions(gpu); err != nil {
			return snap, errors.Wrapf(err, "device %d extensions", gpu)
		}
		if dev.QueueFamilies, err = q.QueueFamilies(gpu); err != nil {
			return snap, errors.Wrapf(err, "device %d queue families", gpu)
		}
		if surface != nil {
			if dev.Surface, err = q.SurfaceSupport(gpu, surface); err != nil {
				return snap, errors.Wrapf(err, "device %d surface support", gpu)
			}
		}
		snap.Devices = append(snap.Devices, dev)
	}
	return snap, nil
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// missing returns the names in want that are absent from have, in want order.
func missing(have, want []string) []string {
	var out []string
	for _, name := range want {
		if !contains(have, name) {
			out = append(out, name)
		}
	}
	return out
}
