// Package vkplatform implements vulkanboot.Driver on top of vulkan-go.
package vkplatform

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vulkan-go/bootstrap/vulkanboot"
)

var _ vulkanboot.Driver = (*Driver)(nil)

// Init binds the loader entry point provided by the windowing library.
func Init(getInstanceProcAddr unsafe.Pointer) error {
	if getInstanceProcAddr == nil {
		return vulkanboot.ErrVulkanUnsupported
	}
	vk.SetGetInstanceProcAddr(getInstanceProcAddr)
	if err := vk.Init(); err != nil {
		return errors.Mark(errors.Wrap(err, "vk.Init"), vulkanboot.ErrVulkanUnsupported)
	}
	return nil
}

// SurfaceFactory creates a presentation surface for a window.
type SurfaceFactory interface {
	CreateSurface(instance vk.Instance) (vk.Surface, error)
}

// Driver holds the live handles of one bootstrap. Handles are created and
// released through the resources it returns.
type Driver struct {
	windows SurfaceFactory

	instance vk.Instance
	gpus     []vk.PhysicalDevice
	sink     vulkanboot.DiagnosticSink

	device        vk.Device
	graphicsQueue vk.Queue
	presentQueue  vk.Queue

	swapchain vk.Swapchain
	images    []vk.Image
}

func NewDriver(windows SurfaceFactory) *Driver {
	return &Driver{windows: windows}
}

// Queues returns the graphics and present queues of the current device.
func (d *Driver) Queues() (graphics, present vk.Queue) {
	return d.graphicsQueue, d.presentQueue
}

func (d *Driver) CreateInstance(cfg vulkanboot.InstanceConfig) (vulkanboot.Resource, error) {
	app := cfg.Application
	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   safeString(app.Name),
			ApplicationVersion: uint32(app.Version),
			PEngineName:        safeString(app.EngineName),
			EngineVersion:      uint32(app.EngineVersion),
			ApiVersion:         uint32(app.APIVersion),
		},
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: safeStrings(cfg.Extensions),
		EnabledLayerCount:       uint32(len(cfg.Layers)),
		PpEnabledLayerNames:     safeStrings(cfg.Layers),
	}, nil, &instance)
	if err := vulkanboot.NewResultError(ret); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.Wrap(err, "vk.InitInstance")
	}
	d.instance = instance
	return vulkanboot.ResourceFunc(func() {
		vk.DestroyInstance(instance, nil)
		d.instance = nil
		d.gpus = nil
	}), nil
}

func (d *Driver) CreateSurface() (vulkanboot.Resource, error) {
	if d.instance == nil {
		return nil, errors.New("no instance")
	}
	handle, err := d.windows.CreateSurface(d.instance)
	if err != nil {
		return nil, err
	}
	return &surface{instance: d.instance, handle: handle}, nil
}

type surface struct {
	instance vk.Instance
	handle   vk.Surface
}

func (s *surface) Destroy() {
	vk.DestroySurface(s.instance, s.handle, nil)
}

func surfaceHandle(r vulkanboot.Resource) (vk.Surface, error) {
	s, ok := r.(*surface)
	if !ok || s == nil {
		return vk.NullSurface, errors.Newf("not a surface: %T", r)
	}
	return s.handle, nil
}

func safeString(s string) string {
	return s + "\x00"
}

func safeStrings(list []string) []string {
	safe := make([]string, 0, len(list))
	for _, s := range list {
		safe = append(safe, safeString(s))
	}
	return safe
}
