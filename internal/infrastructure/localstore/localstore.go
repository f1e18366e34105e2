package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
)

const ownerFile = "owner.json"

// Store persists the owner's credentials to a local JSON file. Credentials
// deliberately never travel through the cloud sync path.
type Store struct {
	dir string
}

// New returns a local store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// LoadOwner reads the saved credentials. The second return is false when no
// credentials have been saved yet.
func (s *Store) LoadOwner() (entity.Owner, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, ownerFile))
	if errors.Is(err, fs.ErrNotExist) {
		return entity.Owner{}, false, nil
	}
	if err != nil {
		return entity.Owner{}, false, fmt.Errorf("read owner file: %w", err)
	}
	var owner entity.Owner
	if err := json.Unmarshal(data, &owner); err != nil {
		return entity.Owner{}, false, fmt.Errorf("decode owner file: %w", err)
	}
	return owner, true, nil
}

// SaveOwner writes the credentials atomically via a rename.
func (s *Store) SaveOwner(owner entity.Owner) error {
	data, err := json.MarshalIndent(owner, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(s.dir, ownerFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write owner file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, ownerFile)); err != nil {
		return fmt.Errorf("replace owner file: %w", err)
	}
	return nil
}
