package window

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	vk "github.com/vulkan-go/vulkan"

	"github.com/vulkan-go/bootstrap/vulkanboot"
)

// SDL is a Vulkan capable SDL2 window.
type SDL struct {
	handle *sdl.Window
	closed bool
}

func NewSDL(cfg vulkanboot.WindowConfiguration) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, errors.Wrap(err, "sdl.Init")
	}
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		sdl.Quit()
		return nil, errors.Mark(errors.Wrap(err, "sdl.VulkanLoadLibrary"), vulkanboot.ErrVulkanUnsupported)
	}
	handle, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height),
		sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.VulkanUnloadLibrary()
		sdl.Quit()
		return nil, errors.Wrap(err, "sdl.CreateWindow")
	}
	return &SDL{handle: handle}, nil
}

func (w *SDL) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

func (w *SDL) RequiredInstanceExtensions() []string {
	return w.handle.VulkanGetInstanceExtensions()
}

func (w *SDL) FramebufferSize() (int, int) {
	width, height := w.handle.VulkanGetDrawableSize()
	return int(width), int(height)
}

func (w *SDL) ShouldClose() bool {
	return w.closed
}

// WaitEvents blocks for one event, then drains the queue. A failed wait
// closes the window.
func (w *SDL) WaitEvents() {
	w.drain(sdl.WaitEvent(), sdl.PollEvent, sdl.GetError)
}

func (w *SDL) drain(event sdl.Event, next func() sdl.Event, lastError func() error) {
	if event == nil {
		log.WithError(lastError()).Error("sdl.WaitEvent failed")
		w.closed = true
		return
	}
	for ; event != nil; event = next() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			w.closed = true
		case *sdl.KeyboardEvent:
			if t.Keysym.Sym == sdl.K_ESCAPE {
				w.closed = true
			}
		}
	}
}

// Wake unblocks WaitEvents. Safe from any goroutine while the window lives.
func (w *SDL) Wake() {
	if _, err := sdl.PushEvent(&sdl.UserEvent{Type: sdl.USEREVENT}); err != nil {
		log.WithError(err).Warningln("sdl.PushEvent failed")
	}
}

func (w *SDL) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	ptr, err := w.handle.VulkanCreateSurface(instance)
	if err != nil {
		return vk.NullSurface, errors.Wrap(err, "sdl surface")
	}
	return vk.SurfaceFromPointer(ptr), nil
}

func (w *SDL) Destroy() {
	w.handle.Destroy()
	sdl.VulkanUnloadLibrary()
	sdl.Quit()
}
