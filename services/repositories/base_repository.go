package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository carries the gorm handle the catalogue, ledger and
// enrollment repositories share. Repositories hold no state beyond the
// handle, so the submission endpoint rebuilds them on its transaction
// handle and the keyed-upsert guarantees hold either way.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB exposes the underlying handle for callers outside the repository
// methods, admin tooling mostly.
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}
