package session

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/forcegraph/audio"
	"github.com/lixenwraith/forcegraph/input"
	"github.com/lixenwraith/forcegraph/physics"
	"github.com/lixenwraith/forcegraph/snapshot"
)

// panFraction is the share of the canvas one pan key moves the view
const panFraction = 0.1

// HandleEvent processes one terminal event and returns true when the session should quit
func (s *Session) HandleEvent(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventFocus); ok {
		s.machine.Reset()
		return false
	}

	it := s.machine.Process(ev)
	if it == nil {
		return false
	}

	switch it.Type {
	case input.IntentQuit:
		return true

	case input.IntentResize:
		s.resize()

	case input.IntentPointer:
		s.pointerX, s.pointerY, s.pointerSeen = it.Pointer.X, it.Pointer.Y, true
		s.ctrl.Handle(it.Pointer)

	case input.IntentToggleCollision:
		s.togglePhysics("collision", func(c *physics.Config) *bool { return &c.Collision })

	case input.IntentToggleWiggle:
		s.togglePhysics("wiggle", func(c *physics.Config) *bool { return &c.Wiggle })

	case input.IntentToggleFreeze:
		s.togglePhysics("freeze", func(c *physics.Config) *bool { return &c.Freeze })

	case input.IntentToggleLabels:
		st := s.renderer.Style()
		st.ShowLabels = !st.ShowLabels
		s.renderer.SetStyle(st)
		s.toggled("labels", st.ShowLabels)

	case input.IntentToggleMute:
		if !s.audible {
			s.note("audio disabled")
			break
		}
		muted := !s.cues.Muted()
		s.cues.SetMuted(muted)
		s.toggled("sound", !muted)

	case input.IntentFit:
		s.Fit()

	case input.IntentZoomIn, input.IntentZoomOut:
		steps := 1
		if it.Type == input.IntentZoomOut {
			steps = -1
		}
		w, h := s.canvas.Size()
		s.ctrl.ZoomAt(float64(w)/2, float64(h)/2, steps)
		s.afterViewChange()

	case input.IntentPanLeft, input.IntentPanRight, input.IntentPanUp, input.IntentPanDown:
		s.pan(it.Type)

	case input.IntentSnapshot:
		if path, err := s.SaveSnapshot(); err != nil {
			log.Printf("session: snapshot: %v", err)
			s.note("snapshot failed: %v", err)
		} else {
			s.note("saved %s", path)
		}
	}
	return false
}

// togglePhysics flips one boolean of the simulation config and reheats the layout
func (s *Session) togglePhysics(name string, field func(*physics.Config) *bool) {
	cfg := s.sim.Config()
	p := field(&cfg)
	*p = !*p
	s.sim.SetConfig(cfg)
	if name != "freeze" {
		s.reheat()
	}
	s.toggled(name, *p)
}

func (s *Session) toggled(name string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	s.cues.Play(audio.CueToggle)
	s.note("%s %s", name, state)
}

func (s *Session) pan(dir input.IntentType) {
	w, h := s.canvas.Size()
	dx, dy := float64(w)*panFraction, float64(h)*panFraction
	// Keys move the camera, so the scene shifts the other way
	switch dir {
	case input.IntentPanLeft:
		s.view.ApplyPan(dx, 0)
	case input.IntentPanRight:
		s.view.ApplyPan(-dx, 0)
	case input.IntentPanUp:
		s.view.ApplyPan(0, dy)
	case input.IntentPanDown:
		s.view.ApplyPan(0, -dy)
	}
	s.afterViewChange()
}

// Snapshot captures the current drawing
func (s *Session) Snapshot() snapshot.Snapshot {
	w, h := s.canvas.Size()
	return snapshot.Build(snapshot.Scene{
		Nodes:     s.sim.Nodes(),
		Links:     s.sim.Links(),
		Transform: s.view.Transform(),
		Style:     s.renderer.Style(),
		Width:     w,
		Height:    h,
		Iteration: s.sim.Iteration(),
	})
}

// SaveSnapshot writes the current drawing into the snapshot directory and returns its path
func (s *Session) SaveSnapshot() (string, error) {
	snap := s.Snapshot()
	format := s.cfg.SnapshotFormat()
	name := fmt.Sprintf("forcegraph-%s-%s.%s", snap.Captured.Format("20060102-150405"), snap.ID[:8], format)
	path := filepath.Join(s.cfg.Snapshot.Dir, name)
	if err := snapshot.WriteFile(path, snap); err != nil {
		return "", err
	}
	log.Printf("session: snapshot %s (%d nodes)", path, len(snap.Nodes))
	return path, nil
}
