package vulkanboot

import (
	"math"

	vk "github.com/vulkan-go/vulkan"
)

// SwapchainConfig is the negotiated swapchain for one device and surface.
type SwapchainConfig struct {
	Format             SurfaceFormat
	PresentMode        vk.PresentMode
	Extent             Extent
	ImageCount         uint32
	SharingMode        vk.SharingMode
	QueueFamilyIndices []uint32
	PreTransform       vk.SurfaceTransformFlagBits
	CompositeAlpha     vk.CompositeAlphaFlagBits
}

var defaultSurfaceFormat = SurfaceFormat{
	Format:     vk.FormatB8g8r8a8Unorm,
	ColorSpace: vk.ColorSpaceSrgbNonlinear,
}

// undefinedExtent is what a surface reports when the window decides the size.
const undefinedExtent = math.MaxUint32

// Negotiate computes the swapchain configuration. It does no I/O and gives the
// same answer for the same inputs.
func Negotiate(support SurfaceSupport, window Extent, queues QueueFamilyIndices) (SwapchainConfig, error) {
	if len(support.Formats) == 0 {
		return SwapchainConfig{}, ErrNoSurfaceFormats
	}
	caps := support.Capabilities
	mode, indices := ChooseSharingMode(queues)
	return SwapchainConfig{
		Format:             ChooseSurfaceFormat(support.Formats),
		PresentMode:        ChoosePresentMode(support.PresentModes),
		Extent:             ChooseExtent(caps, window),
		ImageCount:         ChooseImageCount(caps),
		SharingMode:        mode,
		QueueFamilyIndices: indices,
		PreTransform:       caps.CurrentTransform,
		CompositeAlpha:     chooseCompositeAlpha(caps.SupportedCompositeAlpha),
	}, nil
}

// ChooseSurfaceFormat prefers BGRA8 with sRGB nonlinear color space. A lone
// undefined entry means the surface takes anything.
func ChooseSurfaceFormat(formats []SurfaceFormat) SurfaceFormat {
	if len(formats) == 1 && formats[0].Format == vk.FormatUndefined {
		return defaultSurfaceFormat
	}
	for _, f := range formats {
		if f == defaultSurfaceFormat {
			return f
		}
	}
	return formats[0]
}

// ChoosePresentMode picks immediate over mailbox over FIFO.
func ChoosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	best := vk.PresentModeFifo
	for _, m := range modes {
		if m == vk.PresentModeMailbox {
			best = m
		}
	}
	for _, m := range modes {
		if m == vk.PresentModeImmediate {
			best = m
		}
	}
	return best
}

func ChooseExtent(caps SurfaceCapabilities, window Extent) Extent {
	if caps.CurrentExtent.Width != undefinedExtent {
		return caps.CurrentExtent
	}
	return Extent{
		Width:  clamp(window.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(window.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image over the minimum. A zero maximum is unbounded.
func ChooseImageCount(caps SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

func ChooseSharingMode(queues QueueFamilyIndices) (vk.SharingMode, []uint32) {
	if queues.Graphics == queues.Present {
		return vk.SharingModeExclusive, nil
	}
	return vk.SharingModeConcurrent, []uint32{uint32(queues.Graphics), uint32(queues.Present)}
}

func chooseCompositeAlpha(supported vk.CompositeAlphaFlags) vk.CompositeAlphaFlagBits {
	for _, bit := range []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	} {
		if supported&vk.CompositeAlphaFlags(bit) != 0 {
			return bit
		}
	}
	return vk.CompositeAlphaOpaqueBit
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
