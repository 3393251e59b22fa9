// Package storage aggregates the backing stores: the relational database,
// the object store for attachments and the message bus.
package storage

import (
	"context"
	"sync"

	dbc "github.com/grupovilla/gestprocesos/pkg/internal/storage/db"
	mqc "github.com/grupovilla/gestprocesos/pkg/internal/storage/mq"
	s3c "github.com/grupovilla/gestprocesos/pkg/internal/storage/s3"
	nlog "github.com/grupovilla/gestprocesos/pkg/log"
)

// Manager aggregates all storage resources.
type Manager struct {
	DB *dbc.Client
	S3 *s3c.Client
	MQ *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init initialises the default storage manager from the global config.
// Repeated calls return the already initialised instance.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		m := &Manager{}

		if dbi, e := dbc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.DB = dbi
		}

		if s3i, e := s3c.New(ctx); e != nil {
			err = e
			return
		} else {
			m.S3 = s3i
		}

		if mqi, e := mqc.New(ctx); e != nil {
			err = e
			return
		} else {
			m.MQ = mqi
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetDBClient returns the DB client.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetS3Client returns the S3 client.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetMQClient returns the MQ client.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close releases every storage resource that supports closing.
func (m *Manager) Close() error {
	var err error

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.S3 != nil {
		if e := m.S3.Close(); e != nil {
			err = e
		}
	}

	if m.DB != nil {
		if sqlDB, e := m.DB.DB.DB(); e == nil {
			if e := sqlDB.Close(); e != nil {
				err = e
			}
		}
	}

	return err
}
