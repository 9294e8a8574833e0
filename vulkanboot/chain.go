package vulkanboot

import (
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
)

// Stage is one link of the resource chain, in creation order.
type Stage int

const (
	StageInstance Stage = iota + 1
	StageDebugMessenger
	StageSurface
	StageDevice
	StageSwapchain
	StageImageViews
	StagePipelineLayout
	StageShaderModules
)

func (s Stage) String() string {
	switch s {
	case StageInstance:
		return "instance"
	case StageDebugMessenger:
		return "debug messenger"
	case StageSurface:
		return "surface"
	case StageDevice:
		return "device"
	case StageSwapchain:
		return "swapchain"
	case StageImageViews:
		return "image view"
	case StagePipelineLayout:
		return "pipeline layout"
	case StageShaderModules:
		return "shader module"
	default:
		return "unknown stage"
	}
}

type link struct {
	stage Stage
	res   Resource
}

// Chain is an undo stack of created resources. Teardown pops it in reverse
// creation order; success and failure paths both end there.
type Chain struct {
	links  []link
	logger log.FieldLogger
}

func NewChain(logger log.FieldLogger) *Chain {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Chain{logger: logger}
}

// Push records res as created. A nil resource is ignored.
func (c *Chain) Push(stage Stage, res Resource) {
	if res == nil {
		return
	}
	c.links = append(c.links, link{stage: stage, res: res})
}

func (c *Chain) Len() int {
	return len(c.links)
}

// Stages lists the recorded links in creation order.
func (c *Chain) Stages() []Stage {
	stages := make([]Stage, 0, len(c.links))
	for _, l := range c.links {
		stages = append(stages, l.stage)
	}
	return stages
}

// Teardown destroys everything in reverse order. Calling it again is a no-op.
func (c *Chain) Teardown() {
	for i := len(c.links) - 1; i >= 0; i-- {
		l := c.links[i]
		c.links = c.links[:i]
		start := hrtime.Now()
		l.res.Destroy()
		c.logger.WithFields(log.Fields{
			"stage":   l.stage.String(),
			"elapsed": hrtime.Since(start),
		}).Debug("destroyed")
	}
}
