package errclass_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trajlog-project/trajlog/pkg/errclass"
)

func TestTrajlogError_Error_WithoutMessage(t *testing.T) {
	err := &errclass.TrajlogError{Code: "E_TEST_ERROR"}
	assert.Equal(t, "E_TEST_ERROR", err.Error())
}

func TestTrajlogError_Error_WithMessage(t *testing.T) {
	err := errclass.ErrTrajectoryMissing.WithMessage("no traj_comp.xtc in RUN0/CLONE1")
	assert.Equal(t, "E_TRAJECTORY_MISSING: no traj_comp.xtc in RUN0/CLONE1", err.Error())
}

func TestTrajlogError_Is_MatchesOnCode(t *testing.T) {
	err := errclass.ErrOutputUnwritable.WithMessage("permission denied")
	require.True(t, errors.Is(err, errclass.ErrOutputUnwritable))
	require.False(t, errors.Is(err, errclass.ErrTrajectoryMissing))
}

func TestTrajlogError_Is_WithStandardError(t *testing.T) {
	err := errclass.ErrNoRuns.WithMessage("test")
	require.False(t, errors.Is(err, errors.New("some error")))
}

func TestTrajlogError_WithMessage_PreservesClass(t *testing.T) {
	err := errclass.ErrConverterFailed.WithMessagef("exit status %d", 1)
	assert.Equal(t, errclass.ClassRecoverable, err.Class)
	assert.Equal(t, "exit status 1", err.Message)
	assert.Empty(t, errclass.ErrConverterFailed.Message, "base error should be unchanged")
}

func TestIsFatal_Classified(t *testing.T) {
	assert.True(t, errclass.IsFatal(errclass.ErrProjectIDMissing))
	assert.False(t, errclass.IsFatal(errclass.ErrTrajectoryMissing))
}

func TestIsFatal_Wrapped(t *testing.T) {
	err := fmt.Errorf("process clone: %w", errclass.ErrConverterFailed.WithMessage("exit status 2"))
	assert.False(t, errclass.IsFatal(err))
	assert.True(t, errclass.IsRecoverable(err))

	fatal := fmt.Errorf("open output: %w", errclass.ErrOutputUnwritable)
	assert.True(t, errclass.IsFatal(fatal))
}

func TestIsFatal_UnclassifiedDefaultsFatal(t *testing.T) {
	assert.True(t, errclass.IsFatal(errors.New("disk on fire")))
	assert.False(t, errclass.IsRecoverable(nil))
}
