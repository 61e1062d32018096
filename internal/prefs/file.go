package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// FileStore persists preferences as a single JSON object on disk. Every Set
// rewrites the file immediately rather than batching writes, so a preference
// survives an ungraceful session end. Write failures are logged and swallowed:
// losing a preference is never fatal to the widget.
type FileStore struct {
	path   string
	values map[string]string
}

// OpenFileStore loads the preference file at path, creating parent
// directories as needed. A missing file yields an empty store; a corrupt file
// is discarded and overwritten on the next Set.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating preferences directory")
	}

	fs := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, errors.Wrapf(err, "reading preferences file %s", path)
	}

	if err := json.Unmarshal(data, &fs.values); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("discarding corrupt preferences file")
		fs.values = make(map[string]string)
	}

	return fs, nil
}

func (f *FileStore) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *FileStore) Set(key, value string) {
	f.values[key] = value
	if err := f.flush(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("failed to persist preference")
	}
}

func (f *FileStore) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding preferences")
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing preferences file %s", f.path)
	}
	return nil
}
