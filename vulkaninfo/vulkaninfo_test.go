package vulkaninfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vulkan-go/bootstrap/vulkanboot"
)

func TestReport(t *testing.T) {
	snap := vulkanboot.CapabilitySnapshot{
		InstanceLayers:     []string{"VK_LAYER_KHRONOS_validation"},
		InstanceExtensions: []string{"VK_KHR_surface", "VK_EXT_debug_report"},
		Devices: []vulkanboot.DeviceSnapshot{{
			Device: 0,
			Info: vulkanboot.DeviceInfo{
				Name:     "Test GPU",
				VendorID: 0x10de,
				Type:     vk.PhysicalDeviceTypeDiscreteGpu,
			},
			Features:   vulkanboot.FeatureShaderInt16,
			Extensions: []string{"VK_KHR_swapchain"},
			QueueFamilies: []vulkanboot.QueueFamily{
				{Index: 0, Flags: vk.QueueFlags(vk.QueueGraphicsBit), Count: 16},
			},
			Surface: vulkanboot.SurfaceSupport{
				Capabilities: vulkanboot.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 8},
				Formats:      []vulkanboot.SurfaceFormat{{Format: vk.FormatB8g8r8a8Unorm}},
				PresentModes: []vk.PresentMode{vk.PresentModeMailbox},
			},
		}, {
			Device: 1,
			Info:   vulkanboot.DeviceInfo{Name: "Headless", Type: vk.PhysicalDeviceTypeCpu},
		}},
	}

	out := Report(snap)
	for _, want := range []string{
		"Test GPU", "10de", "Discrete GPU", "shaderInt16", "Mailbox", "2 - 8",
		"VK_KHR_swapchain", "VK_KHR_surface", "VK_LAYER_KHRONOS_validation",
		"Headless", "not supported",
	} {
		assert.Contains(t, out, want)
	}
}

func TestPhysicalDeviceType(t *testing.T) {
	assert.Equal(t, "Integrated GPU", physicalDeviceType(vk.PhysicalDeviceTypeIntegratedGpu))
	assert.Equal(t, "Unknown", physicalDeviceType(vk.PhysicalDeviceType(42)))
}
