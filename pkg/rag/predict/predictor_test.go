package predict

import (
	"errors"
	"testing"

	"cet-mentor-be/internal/entity"
	"cet-mentor-be/pkg/rag"
)

func floatPtr(f float64) *float64 { return &f }

func TestPredictCategories(t *testing.T) {
	p := NewPredictor()

	tests := []struct {
		name           string
		userPercentile float64
		cutoff         float64
		want           entity.ChanceCategory
	}{
		{"far above cutoff", 99.5, 90.0, entity.ChanceVeryHigh},
		{"exactly very high boundary", 95.0, 90.0, entity.ChanceVeryHigh},
		{"comfortably above", 93.0, 90.0, entity.ChanceHigh},
		{"exactly high boundary", 91.0, 90.0, entity.ChanceHigh},
		{"at the cutoff", 90.0, 90.0, entity.ChanceMedium},
		{"just under cutoff", 89.5, 90.0, entity.ChanceMedium},
		{"exactly medium boundary", 89.0, 90.0, entity.ChanceMedium},
		{"a couple below", 87.8, 90.0, entity.ChanceLow},
		{"exactly low boundary", 85.0, 90.0, entity.ChanceLow},
		{"far below cutoff", 80.0, 90.0, entity.ChanceUnlikely},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := entity.CollegeRecord{
				CollegeName:      "COEP Pune",
				Branch:           "Computer Engineering",
				CutoffPercentile: floatPtr(tt.cutoff),
			}

			got, err := p.Predict(tt.userPercentile, record)
			if err != nil {
				t.Fatalf("Predict returned error: %v", err)
			}
			if got.Category != tt.want {
				t.Errorf("delta %.2f: category = %v, want %v", got.Delta, got.Category, tt.want)
			}
		})
	}
}

func TestPredictDelta(t *testing.T) {
	p := NewPredictor()

	record := entity.CollegeRecord{CollegeName: "COEP Pune", Branch: "Computer Engineering", CutoffPercentile: floatPtr(99.2)}
	got, err := p.Predict(97.0, record)
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if got.Category != entity.ChanceLow {
		t.Errorf("category = %v, want Low", got.Category)
	}
	if got.Delta > -2.19 || got.Delta < -2.21 {
		t.Errorf("delta = %v, want -2.2", got.Delta)
	}
}

func TestPredictInvalidInput(t *testing.T) {
	p := NewPredictor()

	withCutoff := entity.CollegeRecord{CutoffPercentile: floatPtr(90)}
	for _, pct := range []float64{0, -3, 101} {
		if _, err := p.Predict(pct, withCutoff); !errors.Is(err, rag.ErrInvalidInput) {
			t.Errorf("Predict(%v) error = %v, want ErrInvalidInput", pct, err)
		}
	}

	noCutoff := entity.CollegeRecord{CollegeName: "X", Branch: "Y"}
	if _, err := p.Predict(95, noCutoff); !errors.Is(err, rag.ErrInvalidInput) {
		t.Errorf("missing cutoff error = %v, want ErrInvalidInput", err)
	}
}
