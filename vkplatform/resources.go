package vkplatform

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vulkan-go/bootstrap/vulkanboot"
)

func (d *Driver) CreateDevice(cfg vulkanboot.DeviceConfig) (vulkanboot.Resource, error) {
	pd, err := d.physical(cfg.Device)
	if err != nil {
		return nil, err
	}
	families := cfg.QueueFamilies.Unique()
	if len(families) == 0 {
		return nil, errors.New("incomplete queue families")
	}
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(families))
	for _, family := range families {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}
	var device vk.Device
	ret := vk.CreateDevice(pd, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: safeStrings(cfg.Extensions),
		EnabledLayerCount:       uint32(len(cfg.Layers)),
		PpEnabledLayerNames:     safeStrings(cfg.Layers),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{featuresTo(cfg.Features)},
	}, nil, &device)
	if err := vulkanboot.NewResultError(ret); err != nil {
		return nil, err
	}
	d.device = device
	vk.GetDeviceQueue(device, uint32(cfg.QueueFamilies.Graphics), 0, &d.graphicsQueue)
	vk.GetDeviceQueue(device, uint32(cfg.QueueFamilies.Present), 0, &d.presentQueue)
	return vulkanboot.ResourceFunc(func() {
		vk.DeviceWaitIdle(device)
		vk.DestroyDevice(device, nil)
		d.device = nil
		d.graphicsQueue = nil
		d.presentQueue = nil
	}), nil
}

func (d *Driver) CreateSwapchain(s vulkanboot.Resource, cfg vulkanboot.SwapchainConfig) (vulkanboot.Resource, error) {
	if d.device == nil {
		return nil, errors.New("no device")
	}
	handle, err := surfaceHandle(s)
	if err != nil {
		return nil, err
	}
	device := d.device
	var swapchain vk.Swapchain
	ret := vk.CreateSwapchain(device, &vk.SwapchainCreateInfo{
		SType:           vk.StructureTypeSwapchainCreateInfo,
		Surface:         handle,
		MinImageCount:   cfg.ImageCount,
		ImageFormat:     cfg.Format.Format,
		ImageColorSpace: cfg.Format.ColorSpace,
		ImageExtent: vk.Extent2D{
			Width:  cfg.Extent.Width,
			Height: cfg.Extent.Height,
		},
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      cfg.SharingMode,
		QueueFamilyIndexCount: uint32(len(cfg.QueueFamilyIndices)),
		PQueueFamilyIndices:   cfg.QueueFamilyIndices,
		PreTransform:          cfg.PreTransform,
		CompositeAlpha:        cfg.CompositeAlpha,
		PresentMode:           cfg.PresentMode,
		Clipped:               vk.True,
		OldSwapchain:          vk.NullSwapchain,
	}, nil, &swapchain)
	if err := vulkanboot.NewResultError(ret); err != nil {
		return nil, err
	}
	d.swapchain = swapchain
	d.images = nil
	return vulkanboot.ResourceFunc(func() {
		vk.DestroySwapchain(device, swapchain, nil)
		d.swapchain = vk.NullSwapchain
		d.images = nil
	}), nil
}

func (d *Driver) SwapchainImages() (int, error) {
	if d.device == nil || d.swapchain == vk.NullSwapchain {
		return 0, errors.New("no swapchain")
	}
	var count uint32
	if err := vulkanboot.NewResultError(vk.GetSwapchainImages(d.device, d.swapchain, &count, nil)); err != nil {
		return 0, err
	}
	images := make([]vk.Image, count)
	if err := vulkanboot.NewResultError(vk.GetSwapchainImages(d.device, d.swapchain, &count, images)); err != nil {
		return 0, err
	}
	d.images = images[:count]
	return len(d.images), nil
}

func (d *Driver) CreateImageView(image int, format vk.Format) (vulkanboot.Resource, error) {
	if image < 0 || image >= len(d.images) {
		return nil, errors.Newf("no swapchain image %d", image)
	}
	device := d.device
	var view vk.ImageView
	ret := vk.CreateImageView(device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    d.images[image],
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}, nil, &view)
	if err := vulkanboot.NewResultError(ret); err != nil {
		return nil, err
	}
	return vulkanboot.ResourceFunc(func() {
		vk.DestroyImageView(device, view, nil)
	}), nil
}

func (d *Driver) CreatePipelineLayout() (vulkanboot.Resource, error) {
	if d.device == nil {
		return nil, errors.New("no device")
	}
	device := d.device
	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(device, &vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}, nil, &layout)
	if err := vulkanboot.NewResultError(ret); err != nil {
		return nil, err
	}
	return vulkanboot.ResourceFunc(func() {
		vk.DestroyPipelineLayout(device, layout, nil)
	}), nil
}

func (d *Driver) CreateShaderModule(shader vulkanboot.Shader) (vulkanboot.Resource, error) {
	if d.device == nil {
		return nil, errors.New("no device")
	}
	device := d.device
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(device, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(shader.Code) * 4),
		PCode:    shader.Code,
	}, nil, &module)
	if err := vulkanboot.NewResultError(ret); err != nil {
		return nil, errors.Wrapf(err, "%s", shader.Name)
	}
	return vulkanboot.ResourceFunc(func() {
		vk.DestroyShaderModule(device, module, nil)
	}), nil
}
