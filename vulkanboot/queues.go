package vulkanboot

import "github.com/cockroachdb/errors"

// NoQueueFamily marks a family search that found nothing.
const NoQueueFamily = -1

type QueueFamilyIndices struct {
	Graphics int
	Present  int
}

func (i QueueFamilyIndices) IsComplete() bool {
	return i.Graphics != NoQueueFamily && i.Present != NoQueueFamily
}

// Unique returns the distinct family indices, graphics first.
func (i QueueFamilyIndices) Unique() []uint32 {
	if !i.IsComplete() {
		return nil
	}
	if i.Graphics == i.Present {
		return []uint32{uint32(i.Graphics)}
	}
	return []uint32{uint32(i.Graphics), uint32(i.Present)}
}

// FindGraphicsFamily returns the first family with the graphics bit, or NoQueueFamily.
func FindGraphicsFamily(families []QueueFamily) int {
	for _, f := range families {
		if f.Count > 0 && f.Graphics() {
			return int(f.Index)
		}
	}
	return NoQueueFamily
}

// FindPresentFamily returns the first family the platform confirms can present
// to surface, or NoQueueFamily.
func FindPresentFamily(q CapabilityQuery, gpu PhysicalDevice, families []QueueFamily, surface Resource) (int, error) {
	for _, f := range families {
		if f.Count == 0 {
			continue
		}
		ok, err := q.PresentSupport(gpu, f.Index, surface)
		if err != nil {
			return NoQueueFamily, errors.Wrapf(err, "present support of family %d", f.Index)
		}
		if ok {
			return int(f.Index), nil
		}
	}
	return NoQueueFamily, nil
}

// FindQueueFamilies runs both searches for one device.
func FindQueueFamilies(q CapabilityQuery, gpu PhysicalDevice, surface Resource) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{Graphics: NoQueueFamily, Present: NoQueueFamily}
	families, err := q.QueueFamilies(gpu)
	if err != nil {
		return indices, err
	}
	indices.Graphics = FindGraphicsFamily(families)
	indices.Present, err = FindPresentFamily(q, gpu, families, surface)
	return indices, err
}
