package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/authvault/internal/common"
	"github.com/dmitrijs2005/authvault/internal/filex"
	"github.com/dmitrijs2005/authvault/internal/logging"
	"github.com/dmitrijs2005/authvault/internal/server/models"
)

// FileRepository stores the whole user collection in one JSON file. Every
// operation reloads the file before acting and every insert rewrites it in
// full, so a single process always reads its own writes. A missing file is
// seeded with the demo record on first access.
//
// The mutex serializes load/persist pairs within this instance; it does not
// protect against other processes writing the same file.
type FileRepository struct {
	path     string
	failOpen bool
	logger   logging.Logger
	mu       sync.Mutex
}

// NewFileRepository creates a file-backed store at path, ensuring the parent
// directory exists. With failOpen set, an unreadable or corrupt file behaves
// like an empty store (logged, never surfaced); otherwise such a file fails
// the operation with common.ErrInternal.
func NewFileRepository(path string, failOpen bool, logger logging.Logger) (*FileRepository, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	return &FileRepository{
		path:     path,
		failOpen: failOpen,
		logger:   logger.With("module", "file_store", "path", path),
	}, nil
}

func (r *FileRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Email == email {
			return &records[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *FileRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *FileRepository) Exists(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range records {
		if records[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *FileRepository) Insert(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, *user)
	if err := r.persist(records); err != nil {
		return err
	}

	r.logger.Info(ctx, "user added to storage",
		"id", user.ID, "email", user.Email, "total_users", len(records))
	return nil
}

func (r *FileRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// load reads the full collection from disk, seeding the file with the demo
// record if it does not exist yet.
func (r *FileRepository) load(ctx context.Context) ([]models.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			seed := []models.User{demoUser}
			if err := r.persist(seed); err != nil {
				return nil, err
			}
			r.logger.Info(ctx, "users file absent, seeded demo record")
			return seed, nil
		}
		return r.degrade(ctx, fmt.Errorf("read users file: %w", err))
	}

	var records []models.User
	if err := json.Unmarshal(data, &records); err != nil {
		return r.degrade(ctx, fmt.Errorf("parse users file: %w", err))
	}
	return records, nil
}

// degrade applies the configured policy for an unreadable store: fail open
// to an empty collection, or surface an internal error.
func (r *FileRepository) degrade(ctx context.Context, err error) ([]models.User, error) {
	if r.failOpen {
		r.logger.Warn(ctx, "treating unreadable users file as empty", "error", err.Error())
		return []models.User{}, nil
	}
	r.logger.Error(ctx, "users file unreadable", "error", err.Error())
	return nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
}

func (r *FileRepository) persist(records []models.User) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := filex.WriteFileAtomic(r.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write users file: %v", common.ErrInternal, err)
	}
	return nil
}
