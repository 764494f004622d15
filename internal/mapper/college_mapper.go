package mapper

import (
	"cet-mentor-be/internal/dto"
	"cet-mentor-be/internal/entity"
)

func ToCollegeRecordDTO(r entity.CollegeRecord) dto.CollegeRecordDTO {
	return dto.CollegeRecordDTO{
		College:          r.CollegeName,
		Branch:           r.Branch,
		CutoffRank:       r.CutoffRank,
		CutoffPercentile: r.CutoffPercentile,
		Category:         r.Category,
		Location:         r.Location,
	}
}

func ToCollegeRecordDTOs(records []entity.CollegeRecord) []dto.CollegeRecordDTO {
	out := make([]dto.CollegeRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, ToCollegeRecordDTO(r))
	}
	return out
}

func ToSuggestResponse(bucket *entity.SuggestionBucket) *dto.SuggestResponse {
	return &dto.SuggestResponse{
		Rank:       bucket.UserRank,
		Percentile: bucket.UserPercentile,
		Safe:       ToCollegeRecordDTOs(bucket.Safe),
		Ambitious:  ToCollegeRecordDTOs(bucket.Ambitious),
	}
}

func ToPredictResponse(p *entity.PredictionResult) *dto.PredictResponse {
	return &dto.PredictResponse{
		College:          p.Record.CollegeName,
		Branch:           p.Record.Branch,
		Chance:           string(p.Category),
		Delta:            p.Delta,
		CutoffPercentile: p.Record.CutoffPercentile,
	}
}
