package vulkanboot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainTeardownReverse(t *testing.T) {
	var order []string
	c := NewChain(nil)
	for _, s := range []Stage{StageInstance, StageSurface, StageDevice} {
		s := s
		c.Push(s, ResourceFunc(func() { order = append(order, s.String()) }))
	}
	c.Push(StageSwapchain, nil)

	assert.Equal(t, []Stage{StageInstance, StageSurface, StageDevice}, c.Stages())
	c.Teardown()
	assert.Equal(t, []string{"device", "surface", "instance"}, order)
	assert.Zero(t, c.Len())

	c.Teardown()
	assert.Len(t, order, 3)
}
