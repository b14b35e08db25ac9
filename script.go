package evergreen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSteps is returned by LoadScript for a script without steps.
var ErrNoSteps = errors.New("no steps")

// scriptStep represents a single action in a scenario script.
type scriptStep struct {
	Action string   `json:"action"`
	Mode   string   `json:"mode,omitempty"`
	Amount float64  `json:"amount,omitempty"`
	FromX  float64  `json:"fromX,omitempty"`
	FromY  float64  `json:"fromY,omitempty"`
	ToX    float64  `json:"toX,omitempty"`
	ToY    float64  `json:"toY,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Paths  []string `json:"paths,omitempty"`
}

// scenario is the top-level JSON structure for a script.
type scenario struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner plays a scenario against a scene, one step per frame.
// Attach it with Scene.SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	upload    <-chan BatchResult
	results   []BatchResult
	baseDir   string
	done      bool
}

// LoadScript parses a JSON scenario. Relative upload paths are resolved
// against baseDir.
func LoadScript(jsonData []byte, baseDir string) (*ScriptRunner, error) {
	var sc scenario
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrNoSteps)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "toggleChaos", "toggleGallery", "toggle", "rotate", "drag", "upload", "wait":
		case "mode":
			if _, ok := parseMode(st.Mode); !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown mode %q", i, st.Mode)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps, baseDir: baseDir}, nil
}

// SetScript attaches a runner to the scene. Its step method is called from
// Scene.Update before input processing each frame.
func (s *Scene) SetScript(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether every step has run and its effects have drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Uploads returns the results of finished upload steps, in order.
func (r *ScriptRunner) Uploads() []BatchResult {
	return r.results
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections and uploads before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.upload != nil {
		select {
		case res := <-r.upload:
			r.results = append(r.results, res)
			r.upload = nil
		default:
			return
		}
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	ctrl := s.Controller()
	switch st.Action {
	case "toggleChaos":
		ctrl.ToggleChaos()
	case "toggleGallery":
		ctrl.ToggleGallery()
	case "toggle":
		ctrl.Toggle()
	case "mode":
		m, _ := parseMode(st.Mode)
		ctrl.SetMode(m)
	case "rotate":
		ctrl.Rotate(st.Amount)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "upload":
		r.upload = ctrl.SubmitPhotos(r.readBlobs(s, st.Paths))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
}

// readBlobs loads the upload files. Unreadable files become empty blobs so
// they are reported as rejected like any other bad file.
func (r *ScriptRunner) readBlobs(s *Scene, paths []string) []Blob {
	blobs := make([]Blob, 0, len(paths))
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(full) && r.baseDir != "" {
			full = filepath.Join(r.baseDir, p)
		}
		data, err := os.ReadFile(full)
		if err != nil {
			s.log.Warn("script upload unreadable", "path", full, "err", err)
		}
		blobs = append(blobs, Blob{Name: filepath.Base(p), Data: data})
	}
	return blobs
}

func parseMode(name string) (Mode, bool) {
	switch name {
	case "tree", "formed":
		return ModeTree, true
	case "chaos":
		return ModeChaos, true
	case "gallery":
		return ModeGallery, true
	}
	return ModeTree, false
}
