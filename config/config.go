package config

// Role selects which behavior set an agent type runs.
type Role int

const (
	RoleGuard Role = iota
	RoleCustomer
)

func (r Role) String() string {
	switch r {
	case RoleGuard:
		return "guard"
	case RoleCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

// AgentTypeConfig contains configuration for a specific agent type.
// Distances are world units, durations are seconds.
type AgentTypeConfig struct {
	Name string `yaml:"name"`
	Role Role   `yaml:"role"`

	// Movement
	PatrolSpeed      float64 `yaml:"patrol_speed"`
	InvestigateSpeed float64 `yaml:"investigate_speed"`
	ChaseSpeed       float64 `yaml:"chase_speed"`
	FleeSpeed        float64 `yaml:"flee_speed"`
	PromoSpeed       float64 `yaml:"promo_speed"`
	SpeedRampTime    float64 `yaml:"speed_ramp_time"` // Seconds to reach full chase/flee speed
	WaitTime         float64 `yaml:"wait_time"`       // Dwell at each patrol point
	ArriveDistance   float64 `yaml:"arrive_distance"`
	BodyRadius       float64 `yaml:"body_radius"`

	// Senses
	DetectionRange     float64 `yaml:"detection_range"`
	FieldOfView        float64 `yaml:"field_of_view"` // Full cone in degrees
	HearingRange       float64 `yaml:"hearing_range"`
	HearingSensitivity float64 `yaml:"hearing_sensitivity"`
	ListenRadius       float64 `yaml:"listen_radius"` // Bus events further than this are ignored

	// Suspicion growth
	GrowthRate float64 `yaml:"growth_rate"` // Per second while the target is seen
	SeenScale  float64 `yaml:"seen_scale"`
	HeardScale float64 `yaml:"heard_scale"`

	// Behavior thresholds (suspicion score)
	LowThreshold float64 `yaml:"low_threshold"` // Idle -> Patrol
	MidThreshold float64 `yaml:"mid_threshold"` // Patrol -> Investigate
	StartIdle    bool    `yaml:"start_idle"`    // Stationary types begin in Idle
	IdleWhenCalm bool    `yaml:"idle_when_calm"`

	// Investigate
	InvestigateTime  float64 `yaml:"investigate_time"` // Countdown before giving up
	InvestigateDwell float64 `yaml:"investigate_dwell"`
	GiveUpReduction  float64 `yaml:"give_up_reduction"`
	LookAroundAngle  float64 `yaml:"look_around_angle"` // Degrees either side of facing

	// Chase
	CatchDistance  float64 `yaml:"catch_distance"`
	LoseSightGrace float64 `yaml:"lose_sight_grace"` // Unseen time before the target counts as lost
	CallsBackup    bool    `yaml:"calls_backup"`

	// Distraction
	DistractionDuration   float64 `yaml:"distraction_duration"`
	DistractionResistance float64 `yaml:"distraction_resistance"` // Multiplies the duration
	DistractionCalm       float64 `yaml:"distraction_calm"`       // Suspicion removed on distraction

	// Customer reactions
	FleeDuration     float64 `yaml:"flee_duration"`
	FleeDistance     float64 `yaml:"flee_distance"`
	ReportsTheft     bool    `yaml:"reports_theft"`
	ReportDuration   float64 `yaml:"report_duration"`
	ReportDistance   float64 `yaml:"report_distance"`
	ReportMagnitude  float64 `yaml:"report_magnitude"`
	WitnessMagnitude float64 `yaml:"witness_magnitude"`
	PromoInterest    float64 `yaml:"promo_interest"`
}

// AgentConfig contains agent system configuration
type AgentConfig struct {
	Types map[string]AgentTypeConfig `yaml:"types"`

	DefaultType string `yaml:"default_type"` // Used when a spawn names an unknown type
}

// SuspicionConfig holds the band thresholds shared by every suspicion model.
type SuspicionConfig struct {
	Clear         float64 `yaml:"clear"`      // At or below: calm, above: suspicious
	Alert         float64 `yaml:"alert"`      // Crossed from below: alerted
	DecayRate     float64 `yaml:"decay_rate"` // Per second while not alerted
	AlertDuration float64 `yaml:"alert_duration"`
}

// PerceptionConfig holds sense tuning that applies to every observer.
type PerceptionConfig struct {
	EyeOffsetX float64 `yaml:"eye_offset_x"`
	EyeOffsetY float64 `yaml:"eye_offset_y"`

	StealthDetectionMultiplier float64 `yaml:"stealth_detection_multiplier"`
	StealthBonusPerLevel       float64 `yaml:"stealth_bonus_per_level"`

	// Target noise
	BaseNoise       float64 `yaml:"base_noise"`
	RunningNoise    float64 `yaml:"running_noise"`
	CrouchNoise     float64 `yaml:"crouch_noise"` // Multiplier
	OverloadedNoise float64 `yaml:"overloaded_noise"`
}

// BusConfig tunes event dispatch and how listeners weigh events.
type BusConfig struct {
	MaxDepth        int                `yaml:"max_depth"`
	MagnitudeScale  float64            `yaml:"magnitude_scale"` // Magnitude units to suspicion units
	Falloff         float64            `yaml:"falloff"`         // 0 = no distance attenuation
	Weights         map[string]float64 `yaml:"weights"`
	RequiresSight   map[string]bool    `yaml:"requires_sight"`
	TheftMagnitude  float64            `yaml:"theft_magnitude"`
	SprintMagnitude float64            `yaml:"sprint_magnitude"`
	BackupMagnitude float64            `yaml:"backup_magnitude"`
}

// SimConfig contains headless simulation loop values
type SimConfig struct {
	TickRate int   `yaml:"tick_rate"`
	Seed     int64 `yaml:"seed"`
	MaxTicks int   `yaml:"max_ticks"`
}

// PlayerConfig tunes the tracked shoplifter and the detectors it triggers.
type PlayerConfig struct {
	WalkSpeed           float64 `yaml:"walk_speed"`
	RunSpeed            float64 `yaml:"run_speed"`
	BodyRadius          float64 `yaml:"body_radius"`
	StealthLevel        int     `yaml:"stealth_level"`
	ReachDistance       float64 `yaml:"reach_distance"` // How close an item must be to take it
	CarryLimit          int     `yaml:"carry_limit"`    // More items than this and the player is overloaded
	ThrowRange          float64 `yaml:"throw_range"`    // Coin toss distracts agents this close to the player
	ShoutRange          float64 `yaml:"shout_range"`    // Sale shout reaches customers this close
	DistractionCooldown float64 `yaml:"distraction_cooldown"`
	ExitRadius          float64 `yaml:"exit_radius"`
	MinLoot             int     `yaml:"min_loot"` // Items needed before the exit counts
	BotReactionDelay    float64 `yaml:"bot_reaction_delay"`
	BotLayLowTime       float64 `yaml:"bot_lay_low_time"`
}

// LevelConfig names the Tiled object groups a shop level uses.
type LevelConfig struct {
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	WallsGroup    string  `yaml:"walls_group"`
	ShelvesGroup  string  `yaml:"shelves_group"`
	SpawnGroup    string  `yaml:"spawn_group"`
	PatrolGroup   string  `yaml:"patrol_group"`
	ItemsGroup    string  `yaml:"items_group"`
	PlayerGroup   string  `yaml:"player_group"`
	DefaultWidth  float64 `yaml:"default_width"`
	DefaultHeight float64 `yaml:"default_height"`
}

// NavConfig contains grid navigation values
type NavConfig struct {
	CellSize       float64 `yaml:"cell_size"`
	RepathDistance float64 `yaml:"repath_distance"` // Destination shift that forces a new path
	SearchRadius   int     `yaml:"search_radius"`   // Cells searched for the nearest walkable node
	SpaceCellSize  int     `yaml:"space_cell_size"`
}

var Agents AgentConfig
var Suspicion SuspicionConfig
var Perception PerceptionConfig
var Bus BusConfig
var Sim SimConfig
var Level LevelConfig
var Player PlayerConfig
var Nav NavConfig

func init() {
	guardType := AgentTypeConfig{
		Name:             "Guard",
		Role:             RoleGuard,
		PatrolSpeed:      2.0,
		InvestigateSpeed: 3.0,
		ChaseSpeed:       5.0,
		FleeSpeed:        5.0,
		PromoSpeed:       2.0,
		SpeedRampTime:    0.5,
		WaitTime:         2.0,
		ArriveDistance:   0.5,
		BodyRadius:       0.4,

		DetectionRange:     10.0,
		FieldOfView:        90.0,
		HearingRange:       15.0,
		HearingSensitivity: 1.5,
		ListenRadius:       20.0,

		GrowthRate: 0.2,
		SeenScale:  1.0,
		HeardScale: 0.5,

		LowThreshold: 0.15,
		MidThreshold: 0.5,
		StartIdle:    false,
		IdleWhenCalm: false,

		InvestigateTime:  5.0,
		InvestigateDwell: 4.0,
		GiveUpReduction:  0.3,
		LookAroundAngle:  90.0,

		CatchDistance:  1.5,
		LoseSightGrace: 3.0,
		CallsBackup:    true,

		DistractionDuration:   3.0,
		DistractionResistance: 1.0,
		DistractionCalm:       0.0,
	}

	// Cashiers stand at the till, see wider and calm down when distracted
	cashierType := guardType
	cashierType.Name = "Cashier"
	cashierType.PatrolSpeed = 1.5
	cashierType.ChaseSpeed = 4.0
	cashierType.DetectionRange = 12.0
	cashierType.FieldOfView = 120.0
	cashierType.HearingSensitivity = 1.0
	cashierType.StartIdle = true
	cashierType.IdleWhenCalm = true
	cashierType.CallsBackup = false
	cashierType.DistractionResistance = 0.8
	cashierType.DistractionCalm = 1.0

	customerType := AgentTypeConfig{
		Name:             "Customer",
		Role:             RoleCustomer,
		PatrolSpeed:      1.5,
		InvestigateSpeed: 1.5,
		ChaseSpeed:       1.5,
		FleeSpeed:        4.0,
		PromoSpeed:       3.0,
		SpeedRampTime:    0.3,
		WaitTime:         2.0,
		ArriveDistance:   0.5,
		BodyRadius:       0.4,

		DetectionRange:     10.0, // View radius for witnessing
		FieldOfView:        90.0,
		HearingRange:       0,
		HearingSensitivity: 0,
		ListenRadius:       10.0,

		DistractionDuration:   3.0,
		DistractionResistance: 1.0,

		FleeDuration:     10.0,
		FleeDistance:     15.0,
		ReportsTheft:     true,
		ReportDuration:   15.0,
		ReportDistance:   2.0,
		ReportMagnitude:  50.0,
		WitnessMagnitude: 75.0,
		PromoInterest:    15.0,
	}

	Agents = AgentConfig{
		Types: map[string]AgentTypeConfig{
			"Guard":    guardType,
			"Cashier":  cashierType,
			"Customer": customerType,
		},
		DefaultType: "Guard",
	}

	Suspicion = SuspicionConfig{
		Clear:         0.1,
		Alert:         0.8,
		DecayRate:     0.1,
		AlertDuration: 10.0,
	}

	Perception = PerceptionConfig{
		EyeOffsetX: 0,
		EyeOffsetY: 0,

		StealthDetectionMultiplier: 0.5,
		StealthBonusPerLevel:       0.1,

		BaseNoise:       1.0,
		RunningNoise:    2.0,
		CrouchNoise:     0.3,
		OverloadedNoise: 1.5,
	}

	Bus = BusConfig{
		MaxDepth:       8,
		MagnitudeScale: 0.01,
		Falloff:        0.5,
		Weights: map[string]float64{
			"Theft":       1.0,
			"LoudNoise":   0.6,
			"Sprinting":   0.3,
			"WeaponDrawn": 1.5,
			"BackupCall":  1.0,
		},
		RequiresSight: map[string]bool{
			"Theft":       true,
			"WeaponDrawn": true,
		},
		TheftMagnitude:  30.0,
		SprintMagnitude: 20.0,
		BackupMagnitude: 60.0,
	}

	Sim = SimConfig{
		TickRate: 60,
		Seed:     1,
		MaxTicks: 60 * 120,
	}

	Player = PlayerConfig{
		WalkSpeed:           3.0,
		RunSpeed:            5.0,
		BodyRadius:          0.4,
		StealthLevel:        0,
		ReachDistance:       1.5,
		CarryLimit:          3,
		ThrowRange:          5.0,
		ShoutRange:          8.0,
		DistractionCooldown: 3.0,
		ExitRadius:          1.5,
		MinLoot:             1,
		BotReactionDelay:    0.5,
		BotLayLowTime:       4.0,
	}

	Level = LevelConfig{
		PixelsPerUnit: 16.0,
		WallsGroup:    "Walls",
		ShelvesGroup:  "Shelves",
		SpawnGroup:    "AgentSpawn",
		PatrolGroup:   "PatrolPaths",
		ItemsGroup:    "Items",
		PlayerGroup:   "PlayerSpawn",
		DefaultWidth:  40.0,
		DefaultHeight: 30.0,
	}

	Nav = NavConfig{
		CellSize:       0.5,
		RepathDistance: 1.0,
		SearchRadius:   10,
		SpaceCellSize:  2,
	}
}

// AgentType returns the config for name, falling back to the default type.
// The second return reports whether name was known.
func AgentType(name string) (AgentTypeConfig, bool) {
	if t, ok := Agents.Types[name]; ok {
		return t, true
	}
	return Agents.Types[Agents.DefaultType], false
}
