package domain

import "go.trai.ch/zerr"

// BuildState identifies a stage of the image build pipeline.
type BuildState string

const (
	// StatePending is the initial state of every build.
	StatePending BuildState = "PENDING"
	// StateBaseSelected indicates the base runtime pin has been resolved.
	StateBaseSelected BuildState = "BASE_SELECTED"
	// StateWorkdirSet indicates the image working directory has been established.
	StateWorkdirSet BuildState = "WORKDIR_SET"
	// StateManifestStaged indicates the dependency manifest has been read and hashed.
	StateManifestStaged BuildState = "MANIFEST_STAGED"
	// StateDepsInstalled indicates the dependency layer exists (installed or cached).
	StateDepsInstalled BuildState = "DEPS_INSTALLED"
	// StateCodeStaged indicates the source layer exists (staged or cached).
	StateCodeStaged BuildState = "CODE_STAGED"
	// StateEnvBound indicates the module search-path variable has been bound.
	StateEnvBound BuildState = "ENV_BOUND"
	// StateCommandDeclared indicates the default command has been recorded.
	StateCommandDeclared BuildState = "COMMAND_DECLARED"
	// StateBuilt is the terminal success state.
	StateBuilt BuildState = "BUILT"
	// StateFailed is the terminal failure state, reachable from any non-terminal state.
	StateFailed BuildState = "FAILED"
)

// buildOrder is the only legal forward path through the pipeline.
var buildOrder = []BuildState{
	StatePending,
	StateBaseSelected,
	StateWorkdirSet,
	StateManifestStaged,
	StateDepsInstalled,
	StateCodeStaged,
	StateEnvBound,
	StateCommandDeclared,
	StateBuilt,
}

// Terminal reports whether the state ends a build.
func (s BuildState) Terminal() bool {
	return s == StateBuilt || s == StateFailed
}

// BuildProgress tracks the state machine of a single build invocation.
// Transitions are strictly linear; no transition returns to an earlier state.
type BuildProgress struct {
	current BuildState
}

// NewBuildProgress creates a BuildProgress in StatePending.
func NewBuildProgress() *BuildProgress {
	return &BuildProgress{current: StatePending}
}

// Current returns the current state.
func (p *BuildProgress) Current() BuildState {
	return p.current
}

// Advance moves the build to next. It returns ErrInvalidTransition unless next
// is the immediate successor of the current state in the pipeline order.
func (p *BuildProgress) Advance(next BuildState) error {
	if p.current.Terminal() {
		return transitionError(p.current, next)
	}
	for i, s := range buildOrder {
		if s != p.current {
			continue
		}
		if i+1 < len(buildOrder) && buildOrder[i+1] == next {
			p.current = next
			return nil
		}
		break
	}
	return transitionError(p.current, next)
}

// Fail moves the build to StateFailed. Failing a terminal build is itself
// an invalid transition.
func (p *BuildProgress) Fail() error {
	if p.current.Terminal() {
		return transitionError(p.current, StateFailed)
	}
	p.current = StateFailed
	return nil
}

func transitionError(from, to BuildState) error {
	err := zerr.With(ErrInvalidTransition, "from", string(from))
	return zerr.With(err, "to", string(to))
}
