// Package ingest reads batches of user-picked files concurrently and feeds
// them into the working photo collection.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Paralinkz/ParaTrackz/internal/media"
	"github.com/Paralinkz/ParaTrackz/internal/models"
	"github.com/Paralinkz/ParaTrackz/internal/session"
)

// Result is one file read outcome
type Result struct {
	Name string
	Data []byte
	Err  error
}

// Files reads every path concurrently and yields (name, data) pairs as each
// read completes. The channel closes once all reads finish.
func Files(paths []string) <-chan Result {
	out := make(chan Result, len(paths))
	var wg sync.WaitGroup
	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			data, err := os.ReadFile(path)
			if err != nil {
				out <- Result{Name: filepath.Base(path), Err: fmt.Errorf("read %s: %w", path, err)}
				return
			}
			out <- Result{Name: filepath.Base(path), Data: data}
		}(path)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Photos ingests image files into the working collection: each completed read
// is written to the blob store and appended as a Photo. Appends go through
// the store one at a time, so concurrent completions never lose updates.
// Unreadable files are skipped and reported in errs; the rest still land.
func Photos(store *session.Store, blobs *media.Store, paths []string) (added []models.Photo, errs []error) {
	for res := range Files(paths) {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}

		url, err := blobs.Put(res.Data, strings.TrimPrefix(filepath.Ext(res.Name), "."))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, err))
			continue
		}

		photo, err := store.AddPhoto(res.Name, url)
		if err != nil {
			blobs.Release(url)
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, err))
			continue
		}
		added = append(added, photo)
	}
	return added, errs
}
