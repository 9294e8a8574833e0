package vulkanboot

import (
	"fmt"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

var (
	ErrVulkanUnsupported        = errors.New("vulkan is not supported on this system")
	ErrValidationUnavailable    = errors.New("validation layers requested, but not available")
	ErrMissingInstanceExtension = errors.New("required instance extension is not available")
	ErrNoSuitableDevice         = errors.New("failed to find a suitable GPU")
	ErrNoSurfaceFormats         = errors.New("surface reports no formats")
	ErrShaderLoad               = errors.New("failed to load shader bytecode")
	ErrPanic                    = errors.New("bootstrap panicked")
)

// ResultError carries a non-success status returned by the platform.
type ResultError struct {
	Result vk.Result
}

func NewResultError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return &ResultError{Result: ret}
}

func (e *ResultError) Error() string {
	if err := vk.Error(e.Result); err != nil {
		return fmt.Sprintf("%s (status %d)", err, int32(e.Result))
	}
	return fmt.Sprintf("status %d", int32(e.Result))
}

// StageError reports which link of the resource chain failed to build.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Status returns the platform status code behind the failure, if there is one.
func (e *StageError) Status() (vk.Result, bool) {
	var re *ResultError
	if errors.As(e.Err, &re) {
		return re.Result, true
	}
	return vk.Success, false
}

func stageFailed(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
