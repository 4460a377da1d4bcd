package cpsolver

// Objective weights, named by intent per §9 Design Notes ("keep them in one
// place so a deployment can re-tune without touching logic"). Values are the
// canonical order-of-magnitude weights from §4.4's objective table.
const (
	weightUnderMinCoverage   = 100000
	weightUnderTargetCoverage = 500
	weightMissedSpecialReq   = 100000 // kept for documentation; enforced as a hard constraint, see model.go
	weightPerHourUnderTarget = 2000
	weightOvertimeTier1      = 300  // 0-2h above target
	weightOvertimeTier2Extra = 200  // beyond +2h
	weightOvertimeTier3Extra = 500  // beyond +5h
	weightOvertimeTier4Extra = 1000 // beyond +10h
	weightOverCoverage       = 20
	weightCrossShop          = 30
	weightFullAtSmallShop    = 300
	weightFullAtLargeShop    = 3000
	weightAMPMImbalance      = 500
	weightPMExceedsAM        = 300
)

// Overtime tier breakpoints, in hours above weekly target.
const (
	tier1Cap = 2
	tier2Cap = 3 // hours within (+2h, +5h]
	tier3Cap = 5 // hours within (+5h, +10h]
	// tier4 is uncapped
)
