package nav

// Params holds the tunable constants of the area graph.
type Params struct {
	// Mesh geometry
	GridCellSize       float64 // Spatial index cell size
	GenerationStepSize float64 // Sampling stride used when the mesh was generated
	HalfHumanHeight    float64 // Crouched eye height above the floor
	StandEyeHeight     float64 // Standing eye height above the floor
	StepHeight         float64 // Height tolerance when resolving stacked areas

	// Editing
	SplitMargin          float64 // Minimum distance of a split line from the area boundary
	MergeTolerance       float64 // Alignment tolerance for merges
	CoplanarThreshold    float64 // Minimum normal dot product for co-planar areas
	RequireCoplanarMerge bool    // Reject merges of non-co-planar areas
	MaxAspect            float64 // IsRoughlySquare aspect limit

	// Hiding spots
	HidingCornerSize     float64 // Wall discontinuity needed on each side of a corner
	HidingInset          float64 // Spot offset inward from the corner
	HidingCollisionRange float64 // Minimum spacing between spots of one area
	CoverRange           float64 // Length of horizontal cover rays
	CoverCeilingCheck    float64 // Length of the straight-up cover ray
	CoverRays            int     // Number of horizontal cover rays
	CoverRequired        int     // Blocked rays needed for a spot to be in cover

	// Sniper spots
	SniperMinRange   float64 // Visible range that makes a spot a sniper spot
	SniperIdealRange float64 // Visible range that makes a sniper spot ideal
	SniperIdealSize  float64 // Side of the square visible far-area that makes a spot ideal

	// Spot encounters
	EncounterStepSize float64 // Stride along the traversal segment
	EncounterSeeRange float64 // Maximum spot distance considered
	EncounterFrontDot float64 // Minimum travel/bearing dot product to record a spot

	// Danger
	DangerDecayRate float64 // Danger units forgotten per second
}

// DefaultParams returns the stock navigation constants.
func DefaultParams() Params {
	return Params{
		GridCellSize:       300.0,
		GenerationStepSize: 25.0,
		HalfHumanHeight:    35.5,
		StandEyeHeight:     64.0,
		StepHeight:         18.0,

		SplitMargin:          1.0,
		MergeTolerance:       1.0,
		CoplanarThreshold:    0.99,
		RequireCoplanarMerge: true,
		MaxAspect:            3.01,

		HidingCornerSize:     20.0,
		HidingInset:          12.5,
		HidingCollisionRange: 30.0,
		CoverRange:           100.0,
		CoverCeilingCheck:    20.0,
		CoverRays:            16,
		CoverRequired:        8,

		SniperMinRange:   1000.0,
		SniperIdealRange: 1500.0,
		SniperIdealSize:  200.0,

		EncounterStepSize: 25.0,
		EncounterSeeRange: 2000.0,
		EncounterFrontDot: 0.7071,

		DangerDecayRate: 1.0 / 120.0,
	}
}
