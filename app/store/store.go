// Package store provides key-value storage for user preferences.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key is not found in the store.
var ErrNotFound = errors.New("key not found")

// Pref is a single stored preference.
type Pref struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DBType identifies the database backend.
type DBType int

// supported backends
const (
	DBTypeSQLite DBType = iota
	DBTypePostgres
)

// RWLocker is the subset of sync.RWMutex used by Store.
// Postgres handles concurrency itself and gets a no-op locker.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}
