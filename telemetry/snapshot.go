package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/swarm/swarm"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete swarm state at one tick.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	WorldWidth  float32 `json:"world_width"`
	WorldHeight float32 `json:"world_height"`

	Tick  int32   `json:"tick"`
	Clock float32 `json:"clock"`

	Targets   []swarm.Point   `json:"targets"`
	Particles []ParticleState `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// ParticleState holds one particle's complete state.
type ParticleState struct {
	Type    string  `json:"type"`
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	VelX    float32 `json:"vel_x"`
	VelY    float32 `json:"vel_y"`
	TargetX float32 `json:"target_x"`
	TargetY float32 `json:"target_y"`
	Forming bool    `json:"forming"`

	Size       float32 `json:"size"`
	Friction   float32 `json:"friction"`
	Ease       float32 `json:"ease"`
	MaxSpeed   float32 `json:"max_speed"`
	Attraction float32 `json:"attraction"`
}

// SnapshotSource is a simulation that can be captured.
type SnapshotSource interface {
	Source
	Bounds() swarm.Bounds
	Targets() []swarm.Point
}

// NewSnapshot captures src at tick.
func NewSnapshot(src SnapshotSource, seed int64, tick int32, bm *Bookmark) *Snapshot {
	b := src.Bounds()
	particles := src.Particles()

	snap := &Snapshot{
		Version:     SnapshotVersion,
		RNGSeed:     seed,
		WorldWidth:  b.Width,
		WorldHeight: b.Height,
		Tick:        tick,
		Clock:       src.Clock(),
		Targets:     append([]swarm.Point(nil), src.Targets()...),
		Particles:   make([]ParticleState, len(particles)),
		Bookmark:    bm,
	}
	for i, p := range particles {
		snap.Particles[i] = ParticleState{
			Type:       p.Type.String(),
			X:          p.X,
			Y:          p.Y,
			VelX:       p.VX,
			VelY:       p.VY,
			TargetX:    p.TargetX,
			TargetY:    p.TargetY,
			Forming:    p.Forming,
			Size:       p.Size,
			Friction:   p.Friction,
			Ease:       p.Ease,
			MaxSpeed:   p.MaxSpeed,
			Attraction: p.Attraction,
		}
	}
	return snap
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}

// FormingCount returns how many captured particles were forming.
func (s *Snapshot) FormingCount() int {
	n := 0
	for _, p := range s.Particles {
		if p.Forming {
			n++
		}
	}
	return n
}
