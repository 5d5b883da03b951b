package trajstg

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libeasygo/stg/mwf"
	"golang.org/x/exp/slices"
)

func NewDefaultMFStorage[T any](root string) Storage[T] {
	return NewMFStorage[T](root, nil, "trajectories.json")
}

// NewMFStorage keeps every record in memory, mirrored to one json file.
func NewMFStorage[T any](root string, storage stg.FileStorage, fileName string) Storage[T] {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &mfStorage[T]{
		storage: mwf.NewMemWithFile[map[string]*Record[T], mwf.Serial, mwf.Lock](
			make(map[string]*Record[T]), &mwf.JSONSerial{}, &sync.RWMutex{}, filepath.Join(root, fileName), storage),
	}
}

type mfStorage[T any] struct {
	storage *mwf.MemWithFile[map[string]*Record[T], mwf.Serial, mwf.Lock]
}

func (impl *mfStorage[T]) Load(key string) (record *Record[T], err error) {
	if err = checkKey(key); err != nil {
		return
	}

	impl.storage.Read(func(v map[string]*Record[T]) {
		record = v[key].clone()
	})

	if record == nil {
		err = fmt.Errorf("%w: %s", commerr.ErrNotFound, key)
	}

	return
}

func (impl *mfStorage[T]) Save(key string, record *Record[T]) error {
	if err := checkKey(key); err != nil {
		return err
	}

	if record == nil {
		return ErrNilRecord
	}

	return impl.storage.Change(func(oldV map[string]*Record[T]) (newV map[string]*Record[T], err error) {
		newV = oldV
		if newV == nil {
			newV = make(map[string]*Record[T])
		}

		newV[key] = record.clone()

		return
	})
}

func (impl *mfStorage[T]) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	return impl.storage.Change(func(oldV map[string]*Record[T]) (newV map[string]*Record[T], err error) {
		newV = oldV

		delete(newV, key)

		return
	})
}

func (impl *mfStorage[T]) Keys() (keys []string, err error) {
	impl.storage.Read(func(v map[string]*Record[T]) {
		keys = make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
	})

	slices.Sort(keys)

	return
}
