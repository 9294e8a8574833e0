package vulkanboot

import (
	"strings"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// Requirements are the hard filters a GPU has to pass.
type Requirements struct {
	Extensions []string
	Features   Features
}

// Candidate is one physical device and the facts gathered while judging it.
type Candidate struct {
	Device        PhysicalDevice
	Info          DeviceInfo
	Features      Features
	ExtensionsMet bool
	Queues        QueueFamilyIndices
	Surface       SurfaceSupport
}

// SelectedDevice is the accepted candidate.
type SelectedDevice Candidate

type rejection struct {
	device PhysicalDevice
	name   string
	reason string
}

// SelectDevice accepts the first device, in enumeration order, that passes every
// filter. There is no ranking among qualifying devices.
func SelectDevice(q CapabilityQuery, surface Resource, req Requirements, logger log.FieldLogger) (SelectedDevice, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	gpus, err := q.PhysicalDevices()
	if err != nil {
		return SelectedDevice{}, errors.Wrap(err, "list physical devices")
	}
	if len(gpus) == 0 {
		return SelectedDevice{}, errors.Wrap(ErrNoSuitableDevice, "no GPUs found on the system")
	}
	var rejected []rejection
	for _, gpu := range gpus {
		c, reason := judge(q, gpu, surface, req)
		if reason != "" {
			logger.WithFields(log.Fields{
				"device": int(gpu),
				"name":   c.Info.Name,
				"reason": reason,
			}).Info("device rejected")
			rejected = append(rejected, rejection{device: gpu, name: c.Info.Name, reason: reason})
			continue
		}
		logger.WithFields(log.Fields{
			"device":   int(gpu),
			"name":     c.Info.Name,
			"graphics": c.Queues.Graphics,
			"present":  c.Queues.Present,
		}).Info("device selected")
		return SelectedDevice(c), nil
	}
	reasons := make([]string, 0, len(rejected))
	for _, r := range rejected {
		reasons = append(reasons, r.name+": "+r.reason)
	}
	return SelectedDevice{}, errors.Wrapf(ErrNoSuitableDevice, "%d rejected (%s)",
		len(rejected), strings.Join(reasons, "; "))
}

// judge builds the candidate lazily and stops at the first failed filter.
func judge(q CapabilityQuery, gpu PhysicalDevice, surface Resource, req Requirements) (Candidate, string) {
	c := Candidate{
		Device: gpu,
		Queues: QueueFamilyIndices{Graphics: NoQueueFamily, Present: NoQueueFamily},
	}
	var err error
	if c.Info, err = q.DeviceInfo(gpu); err != nil {
		return c, "properties query failed: " + err.Error()
	}
	if c.Features, err = q.DeviceFeatures(gpu); err != nil {
		return c, "features query failed: " + err.Error()
	}
	if !c.Features.Has(req.Features) {
		return c, "missing features " + (req.Features &^ c.Features).String()
	}
	extensions, err := q.DeviceExtensions(gpu)
	if err != nil {
		return c, "extensions query failed: " + err.Error()
	}
	if absent := missing(extensions, req.Extensions); len(absent) > 0 {
		return c, "missing extensions " + strings.Join(absent, ",")
	}
	c.ExtensionsMet = true
	if c.Surface, err = q.SurfaceSupport(gpu, surface); err != nil {
		return c, "surface query failed: " + err.Error()
	}
	if len(c.Surface.Formats) == 0 {
		return c, "no surface formats"
	}
	if len(c.Surface.PresentModes) == 0 {
		return c, "no present modes"
	}
	if c.Queues, err = FindQueueFamilies(q, gpu, surface); err != nil {
		return c, "queue family query failed: " + err.Error()
	}
	if c.Queues.Graphics == NoQueueFamily {
		return c, "no graphics queue family"
	}
	if c.Queues.Present == NoQueueFamily {
		return c, "no present queue family"
	}
	return c, ""
}
