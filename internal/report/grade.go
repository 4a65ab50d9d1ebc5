package report

import "github.com/KaramelBytes/edaexport/internal/render"

// Band is an ordinal quality classification; higher is better.
type Band int

const (
	BandNeedsWork Band = iota
	BandAverage
	BandGood
	BandExcellent
)

// Grade is the presentation of a quality band.
type Grade struct {
	Band       Band
	Symbol     string
	Label      string
	Color      render.Color
	Background render.Color
}

// Grade thresholds, lower bound inclusive.
const (
	ExcellentFrom = 90.0
	GoodFrom      = 75.0
	AverageFrom   = 60.0
)

var grades = map[Band]Grade{
	BandExcellent: {BandExcellent, "🟢", "EXCELLENT", render.MustHex("#27AE60"), render.MustHex("#D5F4E6")},
	BandGood:      {BandGood, "🟡", "BON", render.MustHex("#F1C40F"), render.MustHex("#FCF3CF")},
	BandAverage:   {BandAverage, "🟠", "MOYEN", render.MustHex("#E67E22"), render.MustHex("#FAE5D3")},
	BandNeedsWork: {BandNeedsWork, "🔴", "À AMÉLIORER", render.MustHex("#E74C3C"), render.MustHex("#FADBD8")},
}

// Classify maps a quality score to its grade. Out-of-range scores land in the
// top or bottom band; NaN is treated as the bottom band.
func Classify(score float64) Grade {
	switch {
	case score >= ExcellentFrom:
		return grades[BandExcellent]
	case score >= GoodFrom:
		return grades[BandGood]
	case score >= AverageFrom:
		return grades[BandAverage]
	default:
		return grades[BandNeedsWork]
	}
}

func (b Band) String() string {
	return grades[b].Label
}
