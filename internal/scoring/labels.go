package scoring

// Label is the human-readable quality band for a score.
type Label string

const (
	LabelExcellent    Label = "excellent"
	LabelGood         Label = "good"
	LabelAverage      Label = "average"
	LabelBelowAverage Label = "below_average"
	LabelBad          Label = "bad"
)

// LabelFor maps a 0-100 score onto its band.
func LabelFor(score float64) Label {
	switch {
	case score >= 85:
		return LabelExcellent
	case score >= 70:
		return LabelGood
	case score >= 50:
		return LabelAverage
	case score >= 30:
		return LabelBelowAverage
	default:
		return LabelBad
	}
}
