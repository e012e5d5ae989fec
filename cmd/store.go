package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/storage"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// session is one read-mutate-write pass over the store file.
type session struct {
	data *todo.Data
	log  *log.Logger
}

// withStore opens and reads the store, runs fn on the decoded data and
// rewrites the whole store. The store is not rewritten when fn fails.
func withStore(cfg *config.Config, logger *log.Logger, fn func(*session) error) error {
	file, err := storage.Open(cfg.StoreFile, storage.Options{
		Lock:   cfg.Lock,
		Atomic: cfg.AtomicWrite,
	})
	if err != nil {
		return err
	}
	defer file.Close()
	logger.Debug("store opened", "path", file.Path(), "lock", cfg.Lock, "atomic", cfg.AtomicWrite)

	raw, err := file.ReadAll()
	if err != nil {
		return err
	}

	codec := todo.CodecForPath(file.Path())
	sess := &session{
		data: decodeOrEmpty(codec, raw, logger),
		log:  logger,
	}

	if err := fn(sess); err != nil {
		return err
	}

	encoded, err := codec.Encode(sess.data)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := file.Overwrite(encoded); err != nil {
		return err
	}
	logger.Debug("store written", "path", file.Path(), "tasks", len(sess.data.Tasks), "bytes", len(encoded))
	return file.Close()
}

// decodeOrEmpty decodes raw, falling back to an empty store when the content
// is empty or malformed.
func decodeOrEmpty(codec todo.Codec, raw []byte, logger *log.Logger) *todo.Data {
	data, err := codec.Decode(raw)
	if err == nil {
		return data
	}
	if errors.Is(err, todo.ErrEmptyStore) {
		logger.Debug("store is empty, starting fresh")
	} else {
		logger.Warn("store could not be decoded, starting fresh", "err", err)
	}
	return todo.NewData()
}

// loadStore reads and decodes the store without taking the lock or writing.
func loadStore(path string) (*todo.Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return todo.NewData(), nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	data, err := todo.CodecForPath(path).Decode(raw)
	if errors.Is(err, todo.ErrEmptyStore) {
		return todo.NewData(), nil
	}
	return data, err
}
