package main

import (
	"flag"
	"runtime"

	"github.com/xlab/closer"

	"github.com/vulkan-go/bootstrap/vkplatform"
	"github.com/vulkan-go/bootstrap/vulkanboot"
	"github.com/vulkan-go/bootstrap/window"
)

var envFile = flag.String("env", "", "dotenv file with VKBOOT_* settings")

func init() {
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	defer closer.Close()

	if err := vulkanboot.Supervise(run); err != nil {
		vulkanboot.Fail(nil, err)
		closer.Exit(1)
	}
}

// run owns the window and the backend; both are destroyed here, on the
// locked main thread, before closer is allowed to exit.
func run(s *vulkanboot.Supervisor) error {
	cfg, err := vulkanboot.Setup(*envFile)
	if err != nil {
		return err
	}
	win, err := window.NewGLFW(cfg.Window)
	if err != nil {
		return err
	}
	s.Attach(win)
	defer func() {
		s.Attach(nil)
		win.Destroy()
	}()

	if err := vkplatform.Init(win.ProcAddr()); err != nil {
		return err
	}
	shaders, err := vulkanboot.NewBoxLoader(cfg.Shaders.Directory)
	if err != nil {
		return err
	}
	b := &vulkanboot.Builder{
		Driver: vkplatform.NewDriver(win),
		Window: win,
		Shader: shaders,
		Config: cfg,
	}
	return b.Run(s.Quit())
}
