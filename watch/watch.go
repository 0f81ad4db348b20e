// ABOUTME: Hot-reload watcher that refits the rater from a ratings dataset on disk
// ABOUTME: Publishes refitted models on a non-blocking buffered channel, mirroring progressTracker.sendUpdate

// Package watch watches a ratings dataset file (JSON-lines of
// train.Sample) and re-invokes train.Fit whenever the file changes, so a
// long-running process can absorb new user ratings without restarting.
package watch

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"fretwork/rater"
	"fretwork/train"
)

// Event is published whenever the watched ratings file changes and is
// successfully refit.
type Event struct {
	Path  string
	Model rater.Model
}

// RatingsWatcher watches a single ratings file for writes, refits a
// rater.Model from its contents on each change, and publishes an Event
// for each successful refit on Events(). It never blocks the underlying
// fsnotify goroutine: if the consumer isn't keeping up, events are
// dropped rather than backing up the watcher.
type RatingsWatcher struct {
	watcher   *fsnotify.Watcher
	path      string
	alpha     float64
	events    chan Event
	errors    chan error
	done      chan struct{}
	closeOnce sync.Once
}

// New starts watching path for write events, refitting with the given
// ridge alpha on each change. Callers must call Close when done.
func New(path string, alpha float64) (*RatingsWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}

	rw := &RatingsWatcher{
		watcher: fsw,
		path:    path,
		alpha:   alpha,
		events:  make(chan Event, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}

	go rw.run()

	return rw, nil
}

func (rw *RatingsWatcher) run() {
	for {
		select {
		case ev, ok := <-rw.watcher.Events:
			if !ok {
				return
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			model, err := rw.refit()
			if err != nil {
				select {
				case rw.errors <- err:
				default:
				}

				continue
			}

			select {
			case rw.events <- Event{Path: rw.path, Model: model}:
			default:
				// consumer isn't keeping up; drop rather than block fsnotify
			}
		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}

			select {
			case rw.errors <- err:
			default:
			}
		case <-rw.done:
			return
		}
	}
}

// refit reads the ratings file as JSON-lines of train.Sample and fits a
// fresh rater.Model from it.
func (rw *RatingsWatcher) refit() (rater.Model, error) {
	samples, err := loadSamples(rw.path)
	if err != nil {
		return rater.Model{}, err
	}

	result, err := train.Fit(samples, rw.alpha)
	if err != nil {
		return rater.Model{}, err
	}

	return result.Model, nil
}

func loadSamples(path string) ([]train.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []train.Sample

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var s train.Sample
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			return nil, err
		}

		samples = append(samples, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// Events returns the channel of refitted models.
func (rw *RatingsWatcher) Events() <-chan Event {
	return rw.events
}

// Errors returns the channel of watcher and refit errors.
func (rw *RatingsWatcher) Errors() <-chan error {
	return rw.errors
}

// Close stops the watcher. Safe to call multiple times.
func (rw *RatingsWatcher) Close() error {
	var err error

	rw.closeOnce.Do(func() {
		close(rw.done)
		err = rw.watcher.Close()
	})

	return err
}
