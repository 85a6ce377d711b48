package model

// OverlapCase tells how a new absence relates to existing ones of the same person.
type OverlapCase string

const (
	NoOverlapping     OverlapCase = "NO_OVERLAPPING"
	PartlyOverlapping OverlapCase = "PARTLY_OVERLAPPING"
	FullyOverlapping  OverlapCase = "FULLY_OVERLAPPING"
)
