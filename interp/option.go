package interp

import "github.com/sgostarter/i/l"

type Options struct {
	timing Timing
	logger l.Wrapper
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{}
	for _, o := range option {
		o(opts)
	}

	if opts.logger == nil {
		opts.logger = l.NewNopLoggerWrapper()
	}

	return opts
}

func (opts *Options) options() []Option {
	return []Option{TimingOption(opts.timing), LoggerOption(opts.logger)}
}

func TimingOption(timing Timing) Option {
	return func(o *Options) {
		o.timing = timing
	}
}

func LoggerOption(logger l.Wrapper) Option {
	return func(o *Options) {
		o.logger = logger
	}
}
