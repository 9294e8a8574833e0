package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/xlab/closer"

	"github.com/vulkan-go/bootstrap/vkplatform"
	"github.com/vulkan-go/bootstrap/vulkanboot"
	"github.com/vulkan-go/bootstrap/vulkaninfo"
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

func run(s *vulkanboot.Supervisor) error {
	cfg, err := vulkanboot.Setup(*envFile)
	if err != nil {
		return err
	}
	cfg.Application.Name = "VulkanInfo"
	cfg.Window.Title = "Vulkan Info"

	win, err := window.NewGLFW(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Destroy()
	if err := vkplatform.Init(win.ProcAddr()); err != nil {
		return err
	}

	snap, err := vulkanboot.Probe(vkplatform.NewDriver(win), win, cfg)
	if err != nil {
		return err
	}
	fmt.Println("\n\n" + vulkaninfo.Report(snap))
	return nil
}
