package trajstg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"golang.org/x/exp/slices"
)

// NewRedisStorage keeps records as json fields of the hash <keyPre>:trajectories.
func NewRedisStorage[T any](redisCli *redis.Client, keyPre string, logger l.Wrapper) Storage[T] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "redisStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &redisStorage[T]{
		logger:   logger,
		redisCli: redisCli,
		keyPre:   keyPre,
	}
}

type redisStorage[T any] struct {
	logger   l.Wrapper
	redisCli *redis.Client
	keyPre   string
}

func (impl *redisStorage[T]) hashKey() string {
	return impl.keyPre + ":trajectories"
}

func (impl *redisStorage[T]) Load(key string) (record *Record[T], err error) {
	if err = checkKey(key); err != nil {
		return
	}

	d, err := impl.redisCli.HGet(context.Background(), impl.hashKey(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = fmt.Errorf("%w: %s", commerr.ErrNotFound, key)
		}

		return
	}

	record = &Record[T]{}

	err = json.Unmarshal(d, record)
	if err != nil {
		impl.logger.WithFields(l.StringField("key", key), l.ErrorField(err)).Error("bad record")

		record = nil
	}

	return
}

func (impl *redisStorage[T]) Save(key string, record *Record[T]) error {
	if err := checkKey(key); err != nil {
		return err
	}

	if record == nil {
		return ErrNilRecord
	}

	d, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return impl.redisCli.HSet(context.Background(), impl.hashKey(), key, d).Err()
}

func (impl *redisStorage[T]) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	return impl.redisCli.HDel(context.Background(), impl.hashKey(), key).Err()
}

func (impl *redisStorage[T]) Keys() (keys []string, err error) {
	keys, err = impl.redisCli.HKeys(context.Background(), impl.hashKey()).Result()
	if err != nil {
		return
	}

	slices.Sort(keys)

	return
}
