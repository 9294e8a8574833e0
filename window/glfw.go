// Package window provides the windowing collaborators of the bootstrap.
package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vulkan-go/bootstrap/vkplatform"
	"github.com/vulkan-go/bootstrap/vulkanboot"
)

var (
	_ vulkanboot.Window         = (*GLFW)(nil)
	_ vkplatform.SurfaceFactory = (*GLFW)(nil)
	_ vulkanboot.Window         = (*SDL)(nil)
	_ vkplatform.SurfaceFactory = (*SDL)(nil)
	_ vulkanboot.Waker          = (*GLFW)(nil)
	_ vulkanboot.Waker          = (*SDL)(nil)
)

// GLFW is a fixed-size window without a client API, for Vulkan presentation.
type GLFW struct {
	handle *glfw.Window
}

func NewGLFW(cfg vulkanboot.WindowConfiguration) (*GLFW, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw.Init")
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, vulkanboot.ErrVulkanUnsupported
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	handle, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "glfw.CreateWindow")
	}
	handle.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	return &GLFW{handle: handle}, nil
}

// ProcAddr is the loader entry point for vkplatform.Init.
func (w *GLFW) ProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (w *GLFW) RequiredInstanceExtensions() []string {
	return w.handle.GetRequiredInstanceExtensions()
}

func (w *GLFW) FramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

func (w *GLFW) ShouldClose() bool {
	return w.handle.ShouldClose()
}

func (w *GLFW) WaitEvents() {
	glfw.WaitEvents()
}

// Wake unblocks WaitEvents. Safe from any goroutine while the window lives.
func (w *GLFW) Wake() {
	glfw.PostEmptyEvent()
}

func (w *GLFW) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	ptr, err := w.handle.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, errors.Wrap(err, "glfw surface")
	}
	return vk.SurfaceFromPointer(ptr), nil
}

func (w *GLFW) Destroy() {
	w.handle.Destroy()
	glfw.Terminate()
}
