// Package vulkaninfo renders a capability snapshot as a table.
package vulkaninfo

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
	"github.com/xlab/tablewriter"

	"github.com/vulkan-go/bootstrap/vulkanboot"
)

// Report renders instance capabilities followed by one section per GPU.
func Report(snap vulkanboot.CapabilitySnapshot) string {
	table := tablewriter.CreateTable()
	table.UTF8Box()
	table.AddTitle("VULKAN PROPERTIES AND SURFACE CAPABILITIES")
	table.AddRow("Physical GPUs", len(snap.Devices))

	for _, dev := range snap.Devices {
		table.AddSeparator()
		for _, row := range deviceRows(dev) {
			table.AddRow(row...)
		}
	}

	table.AddSeparator()
	table.AddRow("INSTANCE EXTENSIONS", "")
	for i, name := range snap.InstanceExtensions {
		table.AddRow(i+1, name)
	}
	if len(snap.InstanceLayers) > 0 {
		table.AddSeparator()
		table.AddRow("INSTANCE LAYERS", "")
		for i, name := range snap.InstanceLayers {
			table.AddRow(i+1, name)
		}
	}
	return table.Render()
}

type row []interface{}

func deviceRows(dev vulkanboot.DeviceSnapshot) []row {
	var rows []row
	add := func(cells ...interface{}) {
		rows = append(rows, cells)
	}
	info := dev.Info
	add("Physical Device", fmt.Sprintf("#%d %s", dev.Device, info.Name))
	add("Physical Device Vendor", fmt.Sprintf("%x", info.VendorID))
	if info.Type != vk.PhysicalDeviceTypeOther {
		add("Physical Device Type", physicalDeviceType(info.Type))
	}
	add("API Version", info.APIVersion)
	add("Driver Version", info.DriverVersion)
	add("Features", dev.Features.String())
	for _, q := range dev.QueueFamilies {
		add(fmt.Sprintf("Queue family %d", q.Index),
			fmt.Sprintf("%d queues, flags %02x", q.Count, q.Flags))
	}

	caps := dev.Surface.Capabilities
	if dev.Surface.Usable() {
		add("Image count", fmt.Sprintf("%d - %d", caps.MinImageCount, caps.MaxImageCount))
		add("Array layers", fmt.Sprintf("%d", caps.MaxImageArrayLayers))
		add("Image size (current)", fmt.Sprintf("%dx%d",
			caps.CurrentExtent.Width, caps.CurrentExtent.Height))
		add("Image size (extent)", fmt.Sprintf("%dx%d - %dx%d",
			caps.MinImageExtent.Width, caps.MinImageExtent.Height,
			caps.MaxImageExtent.Width, caps.MaxImageExtent.Height))
		add("Usage flags", fmt.Sprintf("%02x", caps.SupportedUsageFlags))
		add("Current transform", fmt.Sprintf("%02x", caps.CurrentTransform))
		add("Allowed transforms", fmt.Sprintf("%02x", caps.SupportedTransforms))
		add("Surface formats", fmt.Sprintf("%d of %d", len(dev.Surface.Formats), vk.FormatRangeSize))
		for _, mode := range dev.Surface.PresentModes {
			add("Present mode", presentMode(mode))
		}
	} else {
		add("Surface", "not supported")
	}

	add("DEVICE EXTENSIONS", "")
	for i, name := range dev.Extensions {
		add(i+1, name)
	}
	return rows
}

func physicalDeviceType(dev vk.PhysicalDeviceType) string {
	switch dev {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "Integrated GPU"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "Discrete GPU"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "Virtual GPU"
	case vk.PhysicalDeviceTypeCpu:
		return "CPU"
	case vk.PhysicalDeviceTypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}

func presentMode(mode vk.PresentMode) string {
	switch mode {
	case vk.PresentModeImmediate:
		return "Immediate"
	case vk.PresentModeMailbox:
		return "Mailbox"
	case vk.PresentModeFifo:
		return "FIFO"
	case vk.PresentModeFifoRelaxed:
		return "FIFO relaxed"
	default:
		return fmt.Sprintf("Unknown (%d)", mode)
	}
}
