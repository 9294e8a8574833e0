package vulkanboot

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// Window is the part of the windowing library the bootstrap reads.
type Window interface {
	RequiredInstanceExtensions() []string
	FramebufferSize() (width, height int)
	ShouldClose() bool
	WaitEvents()
}

type InstanceConfig struct {
	Application ApplicationConfiguration
	Layers      []string
	Extensions  []string
}

type DeviceConfig struct {
	Device        PhysicalDevice
	QueueFamilies QueueFamilyIndices
	Extensions    []string
	Layers        []string
	Features      Features
}

// Driver creates platform resources. It is stateful: device creation uses the
// last instance, image views use the last swapchain and so on. Every returned
// Resource releases only its own handle.
type Driver interface {
	CapabilityQuery
	CreateInstance(cfg InstanceConfig) (Resource, error)
	CreateDebugMessenger(sink DiagnosticSink) (Resource, error)
	CreateSurface() (Resource, error)
	CreateDevice(cfg DeviceConfig) (Resource, error)
	CreateSwapchain(surface Resource, cfg SwapchainConfig) (Resource, error)
	SwapchainImages() (int, error)
	CreateImageView(image int, format vk.Format) (Resource, error)
	CreatePipelineLayout() (Resource, error)
	CreateShaderModule(shader Shader) (Resource, error)
}

// Backend is a fully built resource chain.
type Backend struct {
	RunID      string
	Validation ValidationState
	Device     SelectedDevice
	Swapchain  SwapchainConfig
	ImageViews int

	chain *Chain
}

// Stages lists what is currently alive, in creation order.
func (b *Backend) Stages() []Stage {
	return b.chain.Stages()
}

// Destroy tears the chain down in reverse creation order.
func (b *Backend) Destroy() {
	if b == nil {
		return
	}
	b.chain.Teardown()
}

type Builder struct {
	Driver Driver
	Window Window
	Shader ShaderLoader
	Config Configuration
	Logger log.FieldLogger
}

type builder struct {
	*Builder
	logger log.FieldLogger
	chain  *Chain
}

// Build creates the chain instance, debug messenger, surface, device,
// swapchain, image views, pipeline layout, shader modules. On any failure
// everything already created is destroyed before the error is returned.
func (b *Builder) Build() (backend *Backend, err error) {
	logger := b.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	runID := uuid.New().String()
	bb := &builder{
		Builder: b,
		logger:  logger.WithField("run", runID),
	}
	bb.chain = NewChain(bb.logger)
	defer func() {
		if err != nil {
			bb.chain.Teardown()
		}
	}()

	validation, err := CheckValidation(b.Driver, b.Config.Validation.Enabled, b.Config.Validation.Layers)
	if err != nil {
		return nil, err
	}
	bb.logger.WithFields(log.Fields{
		"enabled":  validation.Enabled,
		"possible": validation.Possible,
	}).Debug("validation checked")

	extensions := validation.InstanceExtensions(b.Window.RequiredInstanceExtensions())
	available, err := b.Driver.InstanceExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "list instance extensions")
	}
	if absent := missing(available, extensions); len(absent) > 0 {
		return nil, errors.Wrapf(ErrMissingInstanceExtension, "%v", absent)
	}

	err = bb.create(StageInstance, func() (Resource, error) {
		return b.Driver.CreateInstance(InstanceConfig{
			Application: b.Config.Application,
			Layers:      validation.InstanceLayers(),
			Extensions:  extensions,
		})
	})
	if err != nil {
		return nil, err
	}
	if validation.Active() {
		err = bb.create(StageDebugMessenger, func() (Resource, error) {
			return b.Driver.CreateDebugMessenger(LogSink(bb.logger))
		})
		if err != nil {
			return nil, err
		}
	}
	var surface Resource
	err = bb.create(StageSurface, func() (Resource, error) {
		var cerr error
		surface, cerr = b.Driver.CreateSurface()
		return surface, cerr
	})
	if err != nil {
		return nil, err
	}

	selected, err := SelectDevice(b.Driver, surface, Requirements{
		Extensions: b.Config.Device.Extensions,
		Features:   b.Config.Device.Features,
	}, bb.logger)
	if err != nil {
		return nil, err
	}
	err = bb.create(StageDevice, func() (Resource, error) {
		return b.Driver.CreateDevice(DeviceConfig{
			Device:        selected.Device,
			QueueFamilies: selected.Queues,
			Extensions:    b.Config.Device.Extensions,
			Layers:        validation.InstanceLayers(),
			Features:      b.Config.Device.Features,
		})
	})
	if err != nil {
		return nil, err
	}

	width, height := b.Window.FramebufferSize()
	swapchain, err := Negotiate(selected.Surface, Extent{
		Width:  nonNegative(width),
		Height: nonNegative(height),
	}, selected.Queues)
	if err != nil {
		return nil, err
	}
	err = bb.create(StageSwapchain, func() (Resource, error) {
		return b.Driver.CreateSwapchain(surface, swapchain)
	})
	if err != nil {
		return nil, err
	}
	images, err := b.Driver.SwapchainImages()
	if err != nil {
		return nil, stageFailed(StageSwapchain, err)
	}
	for i := 0; i < images; i++ {
		err = bb.create(StageImageViews, func() (Resource, error) {
			return b.Driver.CreateImageView(i, swapchain.Format.Format)
		})
		if err != nil {
			return nil, err
		}
	}

	shaders, err := LoadShaders(b.Shader, b.Config.Shaders)
	if err != nil {
		return nil, err
	}
	err = bb.create(StagePipelineLayout, b.Driver.CreatePipelineLayout)
	if err != nil {
		return nil, err
	}
	for _, shader := range shaders {
		shader := shader
		err = bb.create(StageShaderModules, func() (Resource, error) {
			return b.Driver.CreateShaderModule(shader)
		})
		if err != nil {
			return nil, err
		}
	}

	bb.logger.WithFields(log.Fields{
		"device":       selected.Info.Name,
		"format":       swapchain.Format.Format,
		"present_mode": swapchain.PresentMode,
		"extent":       swapchain.Extent,
		"images":       images,
	}).Info("backend ready")
	return &Backend{
		RunID:      runID,
		Validation: validation,
		Device:     selected,
		Swapchain:  swapchain,
		ImageViews: images,
		chain:      bb.chain,
	}, nil
}

func (bb *builder) create(stage Stage, fn func() (Resource, error)) error {
	start := hrtime.Now()
	res, err := fn()
	if err != nil {
		return stageFailed(stage, err)
	}
	bb.chain.Push(stage, res)
	bb.logger.WithFields(log.Fields{
		"stage":   stage.String(),
		"elapsed": hrtime.Since(start),
	}).Debug("created")
	return nil
}

// Probe creates only an instance and a surface, captures every capability the
// platform reports, then tears both down.
func Probe(d Driver, win Window, cfg Configuration) (CapabilitySnapshot, error) {
	chain := NewChain(nil)
	defer chain.Teardown()

	instance, err := d.CreateInstance(InstanceConfig{
		Application: cfg.Application,
		Extensions:  win.RequiredInstanceExtensions(),
	})
	if err != nil {
		return CapabilitySnapshot{}, stageFailed(StageInstance, err)
	}
	chain.Push(StageInstance, instance)
	surface, err := d.CreateSurface()
	if err != nil {
		return CapabilitySnapshot{}, stageFailed(StageSurface, err)
	}
	chain.Push(StageSurface, surface)
	return Capture(d, surface)
}

// Run builds the backend, waits until the window asks to close or quit
// receives, and tears down on the calling goroutine.
func (b *Builder) Run(quit <-chan struct{}) error {
	backend, err := b.Build()
	if err != nil {
		return err
	}
	defer backend.Destroy()
	for !b.Window.ShouldClose() {
		select {
		case <-quit:
			return nil
		default:
		}
		b.Window.WaitEvents()
	}
	return nil
}

func nonNegative(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
