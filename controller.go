package evergreen

import (
	"errors"
	"log/slog"
	"sync"
)

// BatchResult reports a finished photo upload.
type BatchResult struct {
	// Added is the number of photos that joined the set.
	Added int
	// Total is the set size after the batch.
	Total int
	// Failed holds one *DecodeError per skipped file.
	Failed []error
}

// Controller owns the display mode and turns user actions into state
// changes. Every call updates state synchronously and returns; the scene
// animates toward the new state on the following frames.
//
// Mode and rotation calls belong on the frame goroutine. SubmitPhotos may
// be called from anywhere.
type Controller struct {
	mode     Mode
	scene    *Scene
	pipeline *Pipeline
	ingestMu sync.Mutex
	inflight sync.WaitGroup
	log      *slog.Logger
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetMode switches to m. Setting the active mode again is a no-op.
func (c *Controller) SetMode(m Mode) {
	if m == c.mode {
		return
	}
	prev := c.mode
	c.mode = m
	c.log.Info("mode changed", "from", prev, "to", m)
	c.scene.modeChanged(prev, m)
}

// ToggleChaos scatters the scene, or re-forms the tree when already
// scattered.
func (c *Controller) ToggleChaos() {
	if c.mode == ModeChaos {
		c.SetMode(ModeTree)
		return
	}
	c.SetMode(ModeChaos)
}

// ToggleGallery spreads photos onto the spiral, or returns them to the
// tree when the gallery is already open.
func (c *Controller) ToggleGallery() {
	if c.mode == ModeGallery {
		c.SetMode(ModeTree)
		return
	}
	c.SetMode(ModeGallery)
}

// Toggle is the single-button variant: formed and chaos only.
func (c *Controller) Toggle() {
	c.ToggleChaos()
}

// Rotate adds amount to the spin velocity, as the rotate buttons do.
func (c *Controller) Rotate(amount float64) {
	c.scene.rotator.AddVelocity(amount)
}

// SubmitPhotos decodes blobs off the frame goroutine and appends the
// photos that decoded to the scene. It returns at once; the channel
// receives exactly one BatchResult and is then closed. In-flight batches
// cannot be cancelled.
func (c *Controller) SubmitPhotos(blobs []Blob) <-chan BatchResult {
	done := make(chan BatchResult, 1)
	if len(blobs) == 0 {
		done <- BatchResult{Total: c.scene.photos.Len()}
		close(done)
		return done
	}
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		res := c.ingest(blobs)
		done <- res
		close(done)
	}()
	return done
}

// AddPhotos is the blocking form of SubmitPhotos.
func (c *Controller) AddPhotos(blobs []Blob) BatchResult {
	if len(blobs) == 0 {
		return BatchResult{Total: c.scene.photos.Len()}
	}
	return c.ingest(blobs)
}

// Wait blocks until every submitted batch has been appended.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) ingest(blobs []Blob) BatchResult {
	// The pipeline's jitter source is not safe for concurrent batches.
	c.ingestMu.Lock()
	photos, failed := c.pipeline.Ingest(blobs)
	c.ingestMu.Unlock()

	total := c.scene.photos.Append(photos)
	res := BatchResult{Added: len(photos), Total: total, Failed: failed}

	for _, err := range failed {
		ev := SceneEvent{Type: EventPhotoRejected, Err: err}
		var derr *DecodeError
		if errors.As(err, &derr) {
			ev.Name = derr.Name
		}
		c.scene.post(ev)
	}
	if res.Added > 0 {
		c.scene.post(SceneEvent{Type: EventPhotosAdded, Count: res.Added, Total: total})
	}
	c.log.Info("photo batch processed",
		"submitted", len(blobs),
		"added", res.Added,
		"failed", len(failed),
		"total", total,
	)
	return res
}
