package vkplatform

import (
	"fmt"
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vulkan-go/bootstrap/vulkanboot"
)

const reportFlags = vk.DebugReportFlags(vk.DebugReportErrorBit |
	vk.DebugReportWarningBit |
	vk.DebugReportPerformanceWarningBit |
	vk.DebugReportInformationBit |
	vk.DebugReportDebugBit)

func (d *Driver) CreateDebugMessenger(sink vulkanboot.DiagnosticSink) (vulkanboot.Resource, error) {
	if d.instance == nil {
		return nil, errors.New("no instance")
	}
	d.sink = sink
	instance := d.instance
	var callback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(instance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       reportFlags,
		PfnCallback: d.debugReport,
	}, nil, &callback)
	if err := vulkanboot.NewResultError(ret); err != nil {
		return nil, err
	}
	return vulkanboot.ResourceFunc(func() {
		vk.DestroyDebugReportCallback(instance, callback, nil)
		d.sink = nil
	}), nil
}

func (d *Driver) debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	if d.sink != nil {
		severity, category := classify(flags)
		d.sink(severity, category, fmt.Sprintf("[%s] code %d: %s", pLayerPrefix, messageCode, pMessage))
	}
	return vk.Bool32(vk.False)
}

// classify maps debug report flags onto severity and category.
func classify(flags vk.DebugReportFlags) (vulkanboot.Severity, vulkanboot.Category) {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return vulkanboot.SeverityError, vulkanboot.CategoryValidation
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return vulkanboot.SeverityWarning, vulkanboot.CategoryPerformance
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		return vulkanboot.SeverityWarning, vulkanboot.CategoryValidation
	default:
		return vulkanboot.SeverityVerbose, vulkanboot.CategoryGeneral
	}
}
