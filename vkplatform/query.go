package vkplatform

import (
	"github.com/cockroachdb/errors"
	as "github.com/vulkan-go/asche"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vulkan-go/bootstrap/vulkanboot"
)

func (d *Driver) InstanceLayers() ([]string, error) {
	return as.ValidationLayers()
}

func (d *Driver) InstanceExtensions() ([]string, error) {
	return as.InstanceExtensions()
}

func (d *Driver) PhysicalDevices() ([]vulkanboot.PhysicalDevice, error) {
	if d.instance == nil {
		return nil, errors.New("no instance")
	}
	if d.gpus == nil {
		var count uint32
		if err := vulkanboot.NewResultError(vk.EnumeratePhysicalDevices(d.instance, &count, nil)); err != nil {
			return nil, err
		}
		gpus := make([]vk.PhysicalDevice, count)
		if err := vulkanboot.NewResultError(vk.EnumeratePhysicalDevices(d.instance, &count, gpus)); err != nil {
			return nil, err
		}
		d.gpus = gpus[:count]
	}
	list := make([]vulkanboot.PhysicalDevice, len(d.gpus))
	for i := range list {
		list[i] = vulkanboot.PhysicalDevice(i)
	}
	return list, nil
}

func (d *Driver) physical(gpu vulkanboot.PhysicalDevice) (vk.PhysicalDevice, error) {
	if int(gpu) < 0 || int(gpu) >= len(d.gpus) {
		return nil, errors.Newf("unknown physical device %d", gpu)
	}
	return d.gpus[gpu], nil
}

func (d *Driver) DeviceInfo(gpu vulkanboot.PhysicalDevice) (vulkanboot.DeviceInfo, error) {
	pd, err := d.physical(gpu)
	if err != nil {
		return vulkanboot.DeviceInfo{}, err
	}
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &props)
	props.Deref()
	return vulkanboot.DeviceInfo{
		Name:          vk.ToString(props.DeviceName[:]),
		VendorID:      props.VendorID,
		Type:          props.DeviceType,
		APIVersion:    vk.Version(props.ApiVersion),
		DriverVersion: vk.Version(props.DriverVersion),
	}, nil
}

func (d *Driver) DeviceFeatures(gpu vulkanboot.PhysicalDevice) (vulkanboot.Features, error) {
	pd, err := d.physical(gpu)
	if err != nil {
		return 0, err
	}
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(pd, &features)
	features.Deref()
	return featuresFrom(features), nil
}

func (d *Driver) DeviceExtensions(gpu vulkanboot.PhysicalDevice) ([]string, error) {
	pd, err := d.physical(gpu)
	if err != nil {
		return nil, err
	}
	return as.DeviceExtensions(pd)
}

func (d *Driver) QueueFamilies(gpu vulkanboot.PhysicalDevice) ([]vulkanboot.QueueFamily, error) {
	pd, err := d.physical(gpu)
	if err != nil {
		return nil, err
	}
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &count, props)
	families := make([]vulkanboot.QueueFamily, 0, count)
	for i := uint32(0); i < count; i++ {
		props[i].Deref()
		families = append(families, vulkanboot.QueueFamily{
			Index: i,
			Flags: props[i].QueueFlags,
			Count: props[i].QueueCount,
		})
	}
	return families, nil
}

func (d *Driver) PresentSupport(gpu vulkanboot.PhysicalDevice, family uint32, s vulkanboot.Resource) (bool, error) {
	pd, err := d.physical(gpu)
	if err != nil {
		return false, err
	}
	handle, err := surfaceHandle(s)
	if err != nil {
		return false, err
	}
	var supported vk.Bool32
	ret := vk.GetPhysicalDeviceSurfaceSupport(pd, family, handle, &supported)
	if err := vulkanboot.NewResultError(ret); err != nil {
		return false, err
	}
	return supported.B(), nil
}

func (d *Driver) SurfaceSupport(gpu vulkanboot.PhysicalDevice, s vulkanboot.Resource) (vulkanboot.SurfaceSupport, error) {
	var support vulkanboot.SurfaceSupport
	pd, err := d.physical(gpu)
	if err != nil {
		return support, err
	}
	handle, err := surfaceHandle(s)
	if err != nil {
		return support, err
	}

	var caps vk.SurfaceCapabilities
	if err := vulkanboot.NewResultError(vk.GetPhysicalDeviceSurfaceCapabilities(pd, handle, &caps)); err != nil {
		return support, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	support.Capabilities = vulkanboot.SurfaceCapabilities{
		MinImageCount:           caps.MinImageCount,
		MaxImageCount:           caps.MaxImageCount,
		CurrentExtent:           extentFrom(caps.CurrentExtent),
		MinImageExtent:          extentFrom(caps.MinImageExtent),
		MaxImageExtent:          extentFrom(caps.MaxImageExtent),
		MaxImageArrayLayers:     caps.MaxImageArrayLayers,
		SupportedTransforms:     caps.SupportedTransforms,
		CurrentTransform:        caps.CurrentTransform,
		SupportedCompositeAlpha: caps.SupportedCompositeAlpha,
		SupportedUsageFlags:     caps.SupportedUsageFlags,
	}

	var formatCount uint32
	if err := vulkanboot.NewResultError(vk.GetPhysicalDeviceSurfaceFormats(pd, handle, &formatCount, nil)); err != nil {
		return support, err
	}
	formats := make([]vk.SurfaceFormat, formatCount)
	if err := vulkanboot.NewResultError(vk.GetPhysicalDeviceSurfaceFormats(pd, handle, &formatCount, formats)); err != nil {
		return support, err
	}
	for i := uint32(0); i < formatCount; i++ {
		formats[i].Deref()
		support.Formats = append(support.Formats, vulkanboot.SurfaceFormat{
			Format:     formats[i].Format,
			ColorSpace: formats[i].ColorSpace,
		})
	}

	var modeCount uint32
	if err := vulkanboot.NewResultError(vk.GetPhysicalDeviceSurfacePresentModes(pd, handle, &modeCount, nil)); err != nil {
		return support, err
	}
	modes := make([]vk.PresentMode, modeCount)
	if err := vulkanboot.NewResultError(vk.GetPhysicalDeviceSurfacePresentModes(pd, handle, &modeCount, modes)); err != nil {
		return support, err
	}
	support.PresentModes = modes[:modeCount]
	return support, nil
}

func extentFrom(e vk.Extent2D) vulkanboot.Extent {
	return vulkanboot.Extent{Width: e.Width, Height: e.Height}
}

func featuresFrom(f vk.PhysicalDeviceFeatures) vulkanboot.Features {
	var out vulkanboot.Features
	for bit, on := range map[vulkanboot.Features]vk.Bool32{
		vulkanboot.FeatureShaderInt16:        f.ShaderInt16,
		vulkanboot.FeatureShaderInt64:        f.ShaderInt64,
		vulkanboot.FeatureShaderFloat64:      f.ShaderFloat64,
		vulkanboot.FeatureGeometryShader:     f.GeometryShader,
		vulkanboot.FeatureTessellationShader: f.TessellationShader,
		vulkanboot.FeatureSamplerAnisotropy:  f.SamplerAnisotropy,
		vulkanboot.FeatureFillModeNonSolid:   f.FillModeNonSolid,
		vulkanboot.FeatureWideLines:          f.WideLines,
	} {
		if on.B() {
			out |= bit
		}
	}
	return out
}

func featuresTo(f vulkanboot.Features) vk.PhysicalDeviceFeatures {
	b := func(want vulkanboot.Features) vk.Bool32 {
		if f.Has(want) {
			return vk.True
		}
		return vk.False
	}
	return vk.PhysicalDeviceFeatures{
		ShaderInt16:        b(vulkanboot.FeatureShaderInt16),
		ShaderInt64:        b(vulkanboot.FeatureShaderInt64),
		ShaderFloat64:      b(vulkanboot.FeatureShaderFloat64),
		GeometryShader:     b(vulkanboot.FeatureGeometryShader),
		TessellationShader: b(vulkanboot.FeatureTessellationShader),
		SamplerAnisotropy:  b(vulkanboot.FeatureSamplerAnisotropy),
		FillModeNonSolid:   b(vulkanboot.FeatureFillModeNonSolid),
		WideLines:          b(vulkanboot.FeatureWideLines),
	}
}
