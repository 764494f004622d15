package response

import (
	"regexp"
	"strconv"
	"strings"

	"cet-mentor-be/internal/entity"
	ragcontext "cet-mentor-be/pkg/rag/context"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Validator enforces the double-approval rule: a generated answer may only
// contain numbers that exist in the context bundle (or in the user's own
// question). Small integers pass unchecked so list numbering and phrases
// like "top 3" survive.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

const smallNumberCeiling = 10

// Approve reports whether every numeric claim in the answer is backed by the
// bundle. An empty answer is never approved.
func (v *Validator) Approve(answer string, bundle *ragcontext.ContextBundle) bool {
	if strings.TrimSpace(answer) == "" {
		return false
	}

	allowed := allowedNumbers(bundle)

	for _, match := range numberPattern.FindAllString(answer, -1) {
		if _, ok := allowed[canonical(match)]; ok {
			continue
		}
		if isSmallInteger(match) {
			continue
		}
		return false
	}
	return true
}

func isSmallInteger(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= smallNumberCeiling
}

// canonical trims trailing fractional zeros so "99.20" and "99.2" compare
// equal regardless of how either side was formatted.
func canonical(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func allowedNumbers(bundle *ragcontext.ContextBundle) map[string]struct{} {
	allowed := map[string]struct{}{}
	if bundle == nil {
		return allowed
	}

	add := func(s string) {
		allowed[canonical(s)] = struct{}{}
	}
	addFloat := func(f float64) {
		if f < 0 {
			f = -f
		}
		add(strconv.FormatFloat(f, 'f', -1, 64))
		add(strconv.FormatFloat(f, 'f', 2, 64))
		add(strconv.FormatFloat(f, 'f', 1, 64))
		add(strconv.FormatFloat(f, 'f', 0, 64))
	}
	addRecord := func(r entity.CollegeRecord) {
		if r.CutoffRank != nil {
			add(strconv.Itoa(*r.CutoffRank))
		}
		if r.CutoffPercentile != nil {
			addFloat(*r.CutoffPercentile)
		}
	}

	for _, match := range numberPattern.FindAllString(bundle.RawQuery, -1) {
		add(match)
	}
	for _, r := range bundle.RetrievedRecords {
		addRecord(r)
	}
	if s := bundle.Suggestion; s != nil {
		add(strconv.Itoa(s.UserRank))
		addFloat(s.UserPercentile)
		for _, r := range s.Safe {
			addRecord(r)
		}
		for _, r := range s.Ambitious {
			addRecord(r)
		}
	}
	if p := bundle.Prediction; p != nil {
		addRecord(p.Record)
		addFloat(p.Delta)
	}

	return allowed
}
