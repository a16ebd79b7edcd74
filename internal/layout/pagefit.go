package layout

// Strategy is the terminal layout decision for one table.
type Strategy int

const (
	// FitPortrait: the table fits the portrait content width unchanged.
	FitPortrait Strategy = iota
	// FitLandscape: switch orientation, no scaling.
	FitLandscape
	// ScaleLandscape: switch orientation and uniformly shrink column
	// widths and font size by the overflow ratio.
	ScaleLandscape
	// SplitLandscape: switch orientation and split the table column-wise
	// into "Part i of N" sub-tables.
	SplitLandscape
)

func (s Strategy) String() string {
	switch s {
	case FitPortrait:
		return "fit_portrait"
	case FitLandscape:
		return "fit_landscape"
	case ScaleLandscape:
		return "scale_landscape"
	case SplitLandscape:
		return "split_landscape"
	default:
		return "unknown"
	}
}

const (
	// DefaultScaleTolerance is how far over the landscape width a table
	// may run before splitting is preferred over shrinking.
	DefaultScaleTolerance = 1.25

	// MinFontSize floors uniform scaling so shrunk text stays legible.
	MinFontSize = 6.0
)

// Decision carries the chosen strategy plus the uniform scale factor to
// apply to column widths and font size (1.0 unless ScaleLandscape).
type Decision struct {
	Strategy Strategy
	Scale    float64
}

// Decide picks a layout strategy for a table of the given total width. The
// four strategies are evaluated in order: fitting as-is (portrait then
// landscape) is preferred, then shrinking within tolerance, and splitting is
// the last resort — shrinking past the tolerance would make text illegible.
// fontSize bounds the scale so the effective size never drops below
// MinFontSize.
func Decide(totalWidth, portraitAvail, landscapeAvail, tolerance, fontSize float64) Decision {
	if tolerance <= 1 {
		tolerance = DefaultScaleTolerance
	}

	switch {
	case totalWidth <= portraitAvail:
		return Decision{Strategy: FitPortrait, Scale: 1}
	case totalWidth <= landscapeAvail:
		return Decision{Strategy: FitLandscape, Scale: 1}
	case totalWidth <= landscapeAvail*tolerance:
		scale := landscapeAvail / totalWidth
		if fontSize > 0 && fontSize*scale < MinFontSize {
			scale = MinFontSize / fontSize
		}
		return Decision{Strategy: ScaleLandscape, Scale: scale}
	default:
		return Decision{Strategy: SplitLandscape, Scale: 1}
	}
}
