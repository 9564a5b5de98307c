package storage

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch calls onChange each time the document file is written or replaced.
// It watches the parent directory because atomic saves swap the inode.
// Watch blocks until ctx is canceled.
func (f *File) Watch(ctx context.Context, log logrus.FieldLogger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	log = log.WithField("path", f.path)
	log.Info("Watching settings document for changes")

	target := filepath.Clean(f.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != target {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			log.WithField("op", event.Op.String()).Debug("Settings document changed on disk")
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WithError(err).Error("Watcher error")
		}
	}
}
