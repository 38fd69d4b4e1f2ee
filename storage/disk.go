// Package storage bridges bus traffic to the local Badger records.
package storage

import (
	"log/slog"

	"sync-lab/domain/event"
	"sync-lab/repositories"
)

// DiskSink keeps this context's persisted session in step with the bus:
// every snapshot overwrites the stored record, a teardown deletes it.
// Messages never pass through here.
type DiskSink struct {
	repository repositories.ISessionRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.ISessionRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Consume(e event.NetworkEvent) {
	switch evt := e.(type) {
	case event.SyncSession:
		if err := d.repository.SaveSession(evt.Session); err != nil {
			d.log.Error(err.Error())
		}
	case event.SessionEnded:
		if err := d.repository.DeleteSession(); err != nil {
			d.log.Error(err.Error())
		}
	}
}
