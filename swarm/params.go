package swarm

// Default simulation constants.
const (
	DefaultStepDT             = 0.02
	DefaultGridCellSize       = 50.0
	DefaultSearchReach        = 2 // cells on each side: 5x5 block
	DefaultMouseRadius        = 150.0
	DefaultRepulsionGain      = 5.0
	DefaultFormingGain        = 0.1
	DefaultFloatingRepulsion  = 0.5
	DefaultBreathingAmplitude = 2.0
	DefaultBreathingPhase     = 0.05
)

// Params holds the fixed constants of assignment and integration.
type Params struct {
	StepDT             float32 // clock advance per Step
	GridCellSize       float32 // target grid cell edge
	SearchReach        int     // neighbor cells searched around a particle's cell
	MouseRadius        float32 // pointer repulsion radius
	RepulsionGain      float32 // repulsion force at zero distance
	FormingGain        float32 // velocity gain while forming
	FloatingRepulsion  float32 // repulsion scale while floating
	BreathingAmplitude float32
	BreathingPhase     float32 // clock phase shift per unit of y
}

// DefaultParams returns the default simulation constants.
func DefaultParams() Params {
	return Params{
		StepDT:             DefaultStepDT,
		GridCellSize:       DefaultGridCellSize,
		SearchReach:        DefaultSearchReach,
		MouseRadius:        DefaultMouseRadius,
		RepulsionGain:      DefaultRepulsionGain,
		FormingGain:        DefaultFormingGain,
		FloatingRepulsion:  DefaultFloatingRepulsion,
		BreathingAmplitude: DefaultBreathingAmplitude,
		BreathingPhase:     DefaultBreathingPhase,
	}
}

// normalized replaces values that would break the grid with defaults.
func (p Params) normalized() Params {
	if p.GridCellSize <= 0 {
		p.GridCellSize = DefaultGridCellSize
	}
	if p.SearchReach < 0 {
		p.SearchReach = 0
	}
	return p
}
