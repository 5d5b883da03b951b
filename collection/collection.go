package collection

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libtrajectory/interp"
	"github.com/sgostarter/libtrajectory/piecewise"
	"github.com/sgostarter/libtrajectory/trajstg"
	"golang.org/x/exp/slices"
)

type Config struct {
	CacheExpiration time.Duration `yaml:"cacheExpiration" json:"cacheExpiration"`
	CleanupInterval time.Duration `yaml:"cleanupInterval" json:"cleanupInterval"`
	// DefaultTiming applies to stored records without a timing.
	DefaultTiming string `yaml:"defaultTiming" json:"defaultTiming"`
}

// Collection is a set of named trajectories. Interpolators are built from
// the storage on first use and cached.
type Collection[T interp.Differentiable[T, U], U interp.Tangent[U]] struct {
	logger l.Wrapper

	cfg     Config
	storage trajstg.Storage[T]

	cachedIPs *cache.Cache
}

func NewCollection[T interp.Differentiable[T, U], U interp.Tangent[U]](storage trajstg.Storage[T], cfg *Config,
	logger l.Wrapper) *Collection[T, U] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "Collection"))

	if storage == nil {
		logger.Fatal("no storage")
	}

	if cfg == nil {
		cfg = &Config{}
	}

	c := *cfg

	if c.CacheExpiration == 0 {
		c.CacheExpiration = 10 * time.Minute
	}

	if c.CleanupInterval == 0 {
		c.CleanupInterval = c.CacheExpiration * 2
	}

	if _, err := interp.ParseTiming(c.DefaultTiming); err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("invalid default timing")
	}

	return &Collection[T, U]{
		logger:    logger,
		cfg:       c,
		storage:   storage,
		cachedIPs: cache.New(c.CacheExpiration, c.CleanupInterval),
	}
}

// Put validates samples by building them, then stores and caches the result.
func (impl *Collection[T, U]) Put(key string, samples []*interp.Sample[T], timing interp.Timing) (err error) {
	ip, err := interp.NewInterpolatorFromSamples[T, U](samples, interp.TimingOption(timing),
		interp.LoggerOption(impl.logger))
	if err != nil {
		return
	}

	err = impl.storage.Save(key, trajstg.FromInterpolator(ip))
	if err != nil {
		impl.logger.WithFields(l.StringField("key", key), l.ErrorField(err)).Error("save failed")

		return
	}

	impl.cachedIPs.SetDefault(key, ip)

	return
}

func (impl *Collection[T, U]) Get(key string) (*interp.Interpolator[T, U], error) {
	if i, ok := impl.cachedIPs.Get(key); ok {
		return i.(*interp.Interpolator[T, U]), nil
	}

	record, err := impl.storage.Load(key)
	if err != nil {
		return nil, err
	}

	if record.Timing == "" {
		record.Timing = impl.cfg.DefaultTiming
	}

	ip, err := trajstg.Build[T, U](record, interp.LoggerOption(impl.logger))
	if err != nil {
		impl.logger.WithFields(l.StringField("key", key), l.ErrorField(err)).Error("bad stored record")

		return nil, err
	}

	impl.cachedIPs.SetDefault(key, ip)

	return ip, nil
}

func (impl *Collection[T, U]) Evaluate(key string, t float64) (v T, err error) {
	ip, err := impl.Get(key)
	if err != nil {
		return
	}

	return ip.Evaluate(t)
}

func (impl *Collection[T, U]) EvaluateDerivative(key string, t float64, order int) (u U, err error) {
	ip, err := impl.Get(key)
	if err != nil {
		return
	}

	return ip.EvaluateDerivative(t, order)
}

func (impl *Collection[T, U]) Remove(key string) error {
	impl.cachedIPs.Delete(key)

	return impl.storage.Remove(key)
}

func (impl *Collection[T, U]) Keys() ([]string, error) {
	return impl.storage.Keys()
}

func (impl *Collection[T, U]) CachedKeys() []string {
	items := impl.cachedIPs.Items()

	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// Flush drops every cached interpolator.
func (impl *Collection[T, U]) Flush() {
	impl.cachedIPs.Flush()
}

// Piecewise chains the trajectories stored under keys, in order, labelling
// each segment with its key.
func (impl *Collection[T, U]) Piecewise(keys ...string) (*piecewise.PiecewiseFunc[T, U], error) {
	segments := make([]piecewise.Segment[T, U], 0, len(keys))

	for _, key := range keys {
		ip, err := impl.Get(key)
		if err != nil {
			return nil, err
		}

		segments = append(segments, piecewise.Segment[T, U]{
			Label: key,
			Func:  ip,
		})
	}

	return piecewise.NewPiecewiseFunc(segments, piecewise.LoggerOption(impl.logger))
}
