package entity

// CollegeRecord is one (college, branch, category) cutoff row from the scraped
// knowledge base. A nil CutoffRank or CutoffPercentile means "no data" for that
// metric; rows missing both are dropped at load time.
type CollegeRecord struct {
	CollegeName      string   `json:"college"`
	Branch           string   `json:"branch"`
	CutoffRank       *int     `json:"cutoff_rank"`
	CutoffPercentile *float64 `json:"cutoff_percentile"`
	Category         string   `json:"category"`
	Location         string   `json:"location"`
}

// Key identifies a record for dedup purposes. Later rows with the same key
// replace earlier ones (the scraper appends, newest last).
func (r CollegeRecord) Key() string {
	return r.CollegeName + "|" + r.Branch + "|" + r.Category
}

// SuggestionBucket partitions colleges against a student's rank.
// Both slices are ordered by ascending cutoff rank.
type SuggestionBucket struct {
	Safe           []CollegeRecord `json:"safe"`
	Ambitious      []CollegeRecord `json:"ambitious"`
	UserRank       int             `json:"user_rank"`
	UserPercentile float64         `json:"user_percentile"`
}

// ChanceCategory is the admission probability band for a percentile delta.
type ChanceCategory string

const (
	ChanceVeryHigh ChanceCategory = "Very High"
	ChanceHigh     ChanceCategory = "High"
	ChanceMedium   ChanceCategory = "Medium"
	ChanceLow      ChanceCategory = "Low"
	ChanceUnlikely ChanceCategory = "Unlikely"
)

// PredictionResult is the outcome of comparing a student's percentile against a
// specific college/branch cutoff.
type PredictionResult struct {
	Category ChanceCategory `json:"category"`
	Delta    float64        `json:"delta"`
	Record   CollegeRecord  `json:"record"`
}
