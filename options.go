package tackify

import "github.com/charmbracelet/log"

// runOptions holds configuration for a transformation run.
type runOptions struct {
	designLevel  int
	contentLevel int
	seed         *int64
	logger       *log.Logger
}

// defaultOptions returns the default run configuration. Both dials default
// to 7, a solidly tacky middle-high setting.
func defaultOptions() runOptions {
	return runOptions{
		designLevel:  7,
		contentLevel: 7,
	}
}

// clone creates a deep copy of runOptions.
func (o runOptions) clone() runOptions {
	newOpts := runOptions{
		designLevel:  o.designLevel,
		contentLevel: o.contentLevel,
		logger:       o.logger,
	}
	if o.seed != nil {
		s := *o.seed
		newOpts.seed = &s
	}
	return newOpts
}
