package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrBuild matches every *BuildError.
	ErrBuild = errors.New("range table build failed")

	// ErrLocked reports another process publishing to the same artifact.
	ErrLocked = errors.New("artifact is locked by another build")
)

type Stage string

const (
	StageFetch    Stage = "fetch"
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
	StageWrite    Stage = "write"
)

// BuildError is a failed build or publish. The previous artifact is left in
// place whenever one is returned.
type BuildError struct {
	Stage Stage
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %v", e.Stage, e.Err)
}

func (e *BuildError) Unwrap() []error {
	return []error{ErrBuild, e.Err}
}

func stageErr(stage Stage, err error) error {
	return &BuildError{Stage: stage, Err: err}
}
