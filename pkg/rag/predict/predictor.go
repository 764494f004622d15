package predict

import (
	"fmt"

	"cet-mentor-be/internal/constant"
	"cet-mentor-be/internal/entity"
	"cet-mentor-be/pkg/rag"
)

// Predictor maps the gap between a user's percentile and a branch's cutoff
// percentile onto a coarse chance label. The step function is deliberately
// blunt: cutoffs move year to year, so fine-grained probabilities would be
// false precision.
type Predictor struct{}

func NewPredictor() *Predictor {
	return &Predictor{}
}

// Predict computes delta = userPercentile - cutoffPercentile and labels it:
//
//	delta >= 5          Very High
//	1 <= delta < 5      High
//	-1 <= delta < 1     Medium
//	-5 <= delta < -1    Low
//	delta < -5          Unlikely
func (p *Predictor) Predict(userPercentile float64, record entity.CollegeRecord) (*entity.PredictionResult, error) {
	if userPercentile <= 0 || userPercentile > 100 {
		return nil, fmt.Errorf("%w: percentile must be in (0,100], got %.2f", rag.ErrInvalidInput, userPercentile)
	}
	if record.CutoffPercentile == nil {
		return nil, fmt.Errorf("%w: no cutoff percentile on record for %s / %s",
			rag.ErrInvalidInput, record.CollegeName, record.Branch)
	}

	delta := userPercentile - *record.CutoffPercentile

	return &entity.PredictionResult{
		Category: categorize(delta),
		Delta:    delta,
		Record:   record,
	}, nil
}

func categorize(delta float64) entity.ChanceCategory {
	switch {
	case delta >= constant.DeltaVeryHigh:
		return entity.ChanceVeryHigh
	case delta >= constant.DeltaHigh:
		return entity.ChanceHigh
	case delta >= constant.DeltaMedium:
		return entity.ChanceMedium
	case delta >= constant.DeltaLow:
		return entity.ChanceLow
	default:
		return entity.ChanceUnlikely
	}
}
