package trajstg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libeasygo/pathutils"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const yamlExt = ".yaml"

// NewYAMLStorage keeps one <key>.yaml file per record under root.
func NewYAMLStorage[T any](root string) Storage[T] {
	return &yamlStorage[T]{
		root: root,
	}
}

type yamlStorage[T any] struct {
	root string
}

func (stg *yamlStorage[T]) fileNameByKey(key string) string {
	return filepath.Join(stg.root, key+yamlExt)
}

func (stg *yamlStorage[T]) Load(key string) (record *Record[T], err error) {
	if err = checkKey(key); err != nil {
		return
	}

	d, err := os.ReadFile(stg.fileNameByKey(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", commerr.ErrNotFound, key)
		}

		return
	}

	record = &Record[T]{}

	err = yaml.Unmarshal(d, record)
	if err != nil {
		record = nil
	}

	return
}

func (stg *yamlStorage[T]) Save(key string, record *Record[T]) (err error) {
	if err = checkKey(key); err != nil {
		return
	}

	if record == nil {
		err = ErrNilRecord

		return
	}

	if err = pathutils.MustDirExists(stg.root); err != nil {
		return
	}

	d, err := yaml.Marshal(record)
	if err != nil {
		return
	}

	err = os.WriteFile(stg.fileNameByKey(key), d, 0600)

	return
}

func (stg *yamlStorage[T]) Remove(key string) (err error) {
	if err = checkKey(key); err != nil {
		return
	}

	err = os.Remove(stg.fileNameByKey(key))
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}

	return
}

func (stg *yamlStorage[T]) Keys() (keys []string, err error) {
	entries, err := os.ReadDir(stg.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}

		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), yamlExt) {
			continue
		}

		keys = append(keys, strings.TrimSuffix(entry.Name(), yamlExt))
	}

	slices.Sort(keys)

	return
}
