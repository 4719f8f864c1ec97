// Package risk maps a pathology probability to a categorical risk verdict.
package risk

import "fmt"

// Threshold is the probability cutoff above which a scan is classified high
// risk. Strictly greater-than: exactly 0.5 stays low risk.
const Threshold = 0.5

const (
	LabelHigh = "high risk"
	LabelLow  = "low risk"
)

const (
	// AdviceHigh is the cautionary advisory tier shown for high-risk verdicts.
	AdviceHigh = "Pathological markers detected. Consultation recommended."
	// AdviceLow is the reassuring advisory tier shown for low-risk verdicts.
	AdviceLow = "No significant cardiovascular markers found."
)

// Prediction is the immutable per-request classification result.
type Prediction struct {
	Probability float64 `json:"probability"`
	Label       string  `json:"label"`
	IsHigh      bool    `json:"is_high"`
	Percent     string  `json:"percent"`
	Advice      string  `json:"advice"`
}

// Classify is a pure, stateless mapping from a probability in [0,1] to a
// Prediction. The formatted percentage always carries exactly one decimal
// digit.
func Classify(p float64) Prediction {
	isHigh := p > Threshold
	label := LabelLow
	advice := AdviceLow
	if isHigh {
		label = LabelHigh
		advice = AdviceHigh
	}
	return Prediction{
		Probability: p,
		Label:       label,
		IsHigh:      isHigh,
		Percent:     fmt.Sprintf("%.1f", p*100),
		Advice:      advice,
	}
}
