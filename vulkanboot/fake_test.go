package vulkanboot

import (
	"fmt"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

type fakeDevice struct {
	info         DeviceInfo
	features     Features
	extensions   []string
	families     []QueueFamily
	presentable  map[uint32]bool
	surface      SurfaceSupport
	extensionErr error
}

// fakeDriver records every create and destroy in order. failAt makes the
// failIndex-th creation (zero based) of that stage fail.
type fakeDriver struct {
	layers             []string
	instanceExtensions []string
	devices            []fakeDevice
	images             int

	failAt    Stage
	failIndex int

	created   map[Stage]int
	events    []string
	instance  InstanceConfig
	device    DeviceConfig
	swapchain SwapchainConfig
	shaders   []Shader
	sink      DiagnosticSink

	viewImages  []int
	viewFormats []vk.Format
}

func goodSurface() SurfaceSupport {
	return SurfaceSupport{
		Capabilities: SurfaceCapabilities{
			MinImageCount:           2,
			MaxImageCount:           8,
			CurrentExtent:           Extent{Width: 800, Height: 600},
			MinImageExtent:          Extent{Width: 1, Height: 1},
			MaxImageExtent:          Extent{Width: 4096, Height: 4096},
			CurrentTransform:        vk.SurfaceTransformIdentityBit,
			SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit),
		},
		Formats:      []SurfaceFormat{{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox},
	}
}

func goodDevice(name string) fakeDevice {
	return fakeDevice{
		info:       DeviceInfo{Name: name, Type: vk.PhysicalDeviceTypeDiscreteGpu},
		features:   FeatureShaderInt16 | FeatureGeometryShader,
		extensions: []string{"VK_KHR_maintenance1", "VK_KHR_swapchain"},
		families: []QueueFamily{
			{Index: 0, Flags: vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit), Count: 16},
			{Index: 1, Flags: vk.QueueFlags(vk.QueueTransferBit), Count: 2},
		},
		presentable: map[uint32]bool{0: true},
		surface:     goodSurface(),
	}
}

func newFakeDriver(devices ...fakeDevice) *fakeDriver {
	return &fakeDriver{
		layers:             []string{"VK_LAYER_LUNARG_standard_validation"},
		instanceExtensions: []string{"VK_KHR_surface", "VK_KHR_xcb_surface", DiagnosticExtension},
		devices:            devices,
		images:             3,
		created:            make(map[Stage]int),
	}
}

func (f *fakeDriver) gpu(gpu PhysicalDevice) (*fakeDevice, error) {
	if int(gpu) < 0 || int(gpu) >= len(f.devices) {
		return nil, errors.Newf("no device %d", gpu)
	}
	return &f.devices[gpu], nil
}

func (f *fakeDriver) InstanceLayers() ([]string, error)     { return f.layers, nil }
func (f *fakeDriver) InstanceExtensions() ([]string, error) { return f.instanceExtensions, nil }

func (f *fakeDriver) PhysicalDevices() ([]PhysicalDevice, error) {
	gpus := make([]PhysicalDevice, len(f.devices))
	for i := range gpus {
		gpus[i] = PhysicalDevice(i)
	}
	return gpus, nil
}

func (f *fakeDriver) DeviceInfo(gpu PhysicalDevice) (DeviceInfo, error) {
	d, err := f.gpu(gpu)
	if err != nil {
		return DeviceInfo{}, err
	}
	return d.info, nil
}

func (f *fakeDriver) DeviceFeatures(gpu PhysicalDevice) (Features, error) {
	d, err := f.gpu(gpu)
	if err != nil {
		return 0, err
	}
	return d.features, nil
}

func (f *fakeDriver) DeviceExtensions(gpu PhysicalDevice) ([]string, error) {
	d, err := f.gpu(gpu)
	if err != nil {
		return nil, err
	}
	return d.extensions, d.extensionErr
}

func (f *fakeDriver) QueueFamilies(gpu PhysicalDevice) ([]QueueFamily, error) {
	d, err := f.gpu(gpu)
	if err != nil {
		return nil, err
	}
	return d.families, nil
}

func (f *fakeDriver) PresentSupport(gpu PhysicalDevice, family uint32, _ Resource) (bool, error) {
	d, err := f.gpu(gpu)
	if err != nil {
		return false, err
	}
	return d.presentable[family], nil
}

func (f *fakeDriver) SurfaceSupport(gpu PhysicalDevice, _ Resource) (SurfaceSupport, error) {
	d, err := f.gpu(gpu)
	if err != nil {
		return SurfaceSupport{}, err
	}
	return d.surface, nil
}

func (f *fakeDriver) create(stage Stage) (Resource, error) {
	n := f.created[stage]
	if stage == f.failAt && n == f.failIndex {
		f.events = append(f.events, fmt.Sprintf("fail %s %d", stage, n))
		return nil, NewResultError(vk.ErrorInitializationFailed)
	}
	f.created[stage] = n + 1
	name := fmt.Sprintf("%s %d", stage, n)
	f.events = append(f.events, "create "+name)
	return ResourceFunc(func() {
		f.events = append(f.events, "destroy "+name)
	}), nil
}

func (f *fakeDriver) CreateInstance(cfg InstanceConfig) (Resource, error) {
	f.instance = cfg
	return f.create(StageInstance)
}

func (f *fakeDriver) CreateDebugMessenger(sink DiagnosticSink) (Resource, error) {
	f.sink = sink
	return f.create(StageDebugMessenger)
}

func (f *fakeDriver) CreateSurface() (Resource, error) {
	return f.create(StageSurface)
}

func (f *fakeDriver) CreateDevice(cfg DeviceConfig) (Resource, error) {
	f.device = cfg
	return f.create(StageDevice)
}

func (f *fakeDriver) CreateSwapchain(_ Resource, cfg SwapchainConfig) (Resource, error) {
	f.swapchain = cfg
	return f.create(StageSwapchain)
}

func (f *fakeDriver) SwapchainImages() (int, error) {
	return f.images, nil
}

func (f *fakeDriver) CreateImageView(image int, format vk.Format) (Resource, error) {
	f.viewImages = append(f.viewImages, image)
	f.viewFormats = append(f.viewFormats, format)
	return f.create(StageImageViews)
}

func (f *fakeDriver) CreatePipelineLayout() (Resource, error) {
	return f.create(StagePipelineLayout)
}

func (f *fakeDriver) CreateShaderModule(shader Shader) (Resource, error) {
	f.shaders = append(f.shaders, shader)
	return f.create(StageShaderModules)
}

type fakeWindow struct {
	extensions    []string
	width, height int
	closeAfter    int
	waits         int
	onWait        func(waits int)
}

func (w *fakeWindow) RequiredInstanceExtensions() []string { return w.extensions }
func (w *fakeWindow) FramebufferSize() (int, int)          { return w.width, w.height }
func (w *fakeWindow) ShouldClose() bool                    { return w.waits >= w.closeAfter }

func (w *fakeWindow) WaitEvents() {
	w.waits++
	if w.onWait != nil {
		w.onWait(w.waits)
	}
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{
		extensions: []string{"VK_KHR_surface", "VK_KHR_xcb_surface"},
		width:      800,
		height:     600,
		closeAfter: 2,
	}
}

type mapLoader map[string][]byte

func (m mapLoader) Load(name string) ([]byte, error) {
	b, ok := m[name]
	if !ok {
		return nil, errors.Newf("%s: no such file", name)
	}
	return b, nil
}

func spirv() []byte {
	return []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}
}

func shaderFiles() mapLoader {
	return mapLoader{"vert.spv": spirv(), "frag.spv": spirv()}
}
