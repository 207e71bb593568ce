package world

import (
	"github.com/pthm-cable/navarea/config"
	"github.com/pthm-cable/navarea/nav"
)

// Params converts loaded configuration into mesh parameters.
func Params(cfg *config.Config) nav.Params {
	return nav.Params{
		GridCellSize:       cfg.Mesh.GridCellSize,
		GenerationStepSize: cfg.Mesh.GenerationStepSize,
		HalfHumanHeight:    cfg.Mesh.HalfHumanHeight,
		StandEyeHeight:     cfg.Mesh.StandEyeHeight,
		StepHeight:         cfg.Mesh.StepHeight,

		SplitMargin:          cfg.Editing.SplitMargin,
		MergeTolerance:       cfg.Editing.MergeTolerance,
		CoplanarThreshold:    cfg.Editing.CoplanarThreshold,
		RequireCoplanarMerge: cfg.Editing.RequireCoplanarMerge,
		MaxAspect:            cfg.Editing.MaxAspect,

		HidingCornerSize:     cfg.Hiding.CornerSize,
		HidingInset:          cfg.Hiding.Inset,
		HidingCollisionRange: cfg.Hiding.CollisionRange,
		CoverRange:           cfg.Hiding.CoverRange,
		CoverCeilingCheck:    cfg.Hiding.CeilingCheck,
		CoverRays:            cfg.Hiding.CoverRays,
		CoverRequired:        cfg.Hiding.CoverRequired,

		SniperMinRange:   cfg.Sniper.MinRange,
		SniperIdealRange: cfg.Sniper.IdealRange,
		SniperIdealSize:  cfg.Sniper.IdealSize,

		EncounterStepSize: cfg.Encounter.StepSize,
		EncounterSeeRange: cfg.Encounter.SeeRange,
		EncounterFrontDot: cfg.Encounter.FrontDot,

		DangerDecayRate: cfg.Danger.DecayRate,
	}
}
