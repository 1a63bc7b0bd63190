// Package status renders room occupancy to an HTML page on a filesystem.
// Rendering happens on its own goroutine; the coordinator only hands over
// snapshots and never waits for the disk.
package status

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dkeye/Relay/internal/core"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type FilePublisher struct {
	fs    afero.Fs
	dir   string
	title string
	now   func() time.Time

	// updates holds at most the latest pending snapshot.
	updates chan []core.RoomInfo

	mu      sync.Mutex
	written int
}

func NewFilePublisher(fs afero.Fs, dir, title string) *FilePublisher {
	return &FilePublisher{
		fs:      fs,
		dir:     dir,
		title:   title,
		now:     time.Now,
		updates: make(chan []core.RoomInfo, 1),
	}
}

// Prepare creates the output directory, writes the stylesheet and renders
// an empty page so the sink is valid before the first client shows up.
func (p *FilePublisher) Prepare() error {
	if err := p.fs.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("create status dir: %w", err)
	}
	if err := p.writeAtomic(StyleFile, Stylesheet()); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return p.render(nil)
}

// Publish queues rooms for rendering, replacing any snapshot that has not
// been rendered yet. It never blocks.
func (p *FilePublisher) Publish(rooms []core.RoomInfo) {
	select {
	case p.updates <- rooms:
		return
	default:
	}
	select {
	case <-p.updates:
	default:
	}
	select {
	case p.updates <- rooms:
	default:
		log.Debug().Str("module", "status").Msg("snapshot superseded")
	}
}

// Run renders queued snapshots until ctx is done. The last pending snapshot
// is flushed before returning.
func (p *FilePublisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			select {
			case rooms := <-p.updates:
				p.renderLogged(rooms)
			default:
			}
			return
		case rooms := <-p.updates:
			p.renderLogged(rooms)
		}
	}
}

func (p *FilePublisher) renderLogged(rooms []core.RoomInfo) {
	if err := p.render(rooms); err != nil {
		log.Error().Err(err).Str("module", "status").Msg("status render failed")
		return
	}
	log.Debug().Str("module", "status").Int("rooms", len(rooms)).Msg("status page written")
}

func (p *FilePublisher) render(rooms []core.RoomInfo) error {
	body, err := Render(p.title, rooms, p.now())
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}
	if err := p.writeAtomic(PageFile, body); err != nil {
		return err
	}
	p.mu.Lock()
	p.written++
	p.mu.Unlock()
	return nil
}

func (p *FilePublisher) writeAtomic(name string, data []byte) error {
	final := filepath.Join(p.dir, name)
	tmp := final + ".tmp"
	if err := afero.WriteFile(p.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := p.fs.Rename(tmp, final); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// PagePath is where the rendered page lives on the publisher's filesystem.
func (p *FilePublisher) PagePath() string { return filepath.Join(p.dir, PageFile) }

func (p *FilePublisher) StylePath() string { return filepath.Join(p.dir, StyleFile) }

// Written reports how many pages have been rendered so far.
func (p *FilePublisher) Written() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written
}

// Page reads back the current page.
func (p *FilePublisher) Page() ([]byte, error) {
	return afero.ReadFile(p.fs, p.PagePath())
}
