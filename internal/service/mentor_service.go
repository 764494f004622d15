package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cet-mentor-be/internal/dto"
	"cet-mentor-be/internal/entity"
	"cet-mentor-be/internal/mapper"
	"cet-mentor-be/internal/pkg/logger"
	"cet-mentor-be/internal/repository/memory"
	ragcontext "cet-mentor-be/pkg/rag/context"
	"cet-mentor-be/pkg/rag/predict"
	"cet-mentor-be/pkg/rag/response"
	"cet-mentor-be/pkg/rag/search"
	"cet-mentor-be/pkg/rag/session"
	"cet-mentor-be/pkg/rag/suggest"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ErrNotFound marks a lookup for a college the knowledge base doesn't carry.
var ErrNotFound = errors.New("not found")

// IMentorService is the admissions-advice API surface.
type IMentorService interface {
	Suggest(ctx context.Context, request *dto.SuggestRequest) (*dto.SuggestResponse, error)
	Predict(ctx context.Context, request *dto.PredictRequest) (*dto.PredictResponse, error)
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	RecordFeedback(ctx context.Context, request *dto.FeedbackRequest) error
	ReloadKnowledge(ctx context.Context) (*dto.ReloadResponse, error)
}

type mentorService struct {
	knowledge      *memory.KnowledgeRepository
	retriever      *search.Retriever
	suggester      *suggest.Suggester
	predictor      *predict.Predictor
	assembler      *ragcontext.Assembler
	sessionManager *session.Manager
	generator      *response.Generator
	pubSub         *gochannel.GoChannel
	feedbackTopic  string
	dataFilePath   string
	defaultMargin  int
	logger         logger.ILogger
}

func NewMentorService(
	knowledge *memory.KnowledgeRepository,
	retriever *search.Retriever,
	suggester *suggest.Suggester,
	predictor *predict.Predictor,
	assembler *ragcontext.Assembler,
	sessionManager *session.Manager,
	generator *response.Generator,
	pubSub *gochannel.GoChannel,
	feedbackTopic string,
	dataFilePath string,
	defaultMargin int,
	log logger.ILogger,
) IMentorService {
	return &mentorService{
		knowledge:      knowledge,
		retriever:      retriever,
		suggester:      suggester,
		predictor:      predictor,
		assembler:      assembler,
		sessionManager: sessionManager,
		generator:      generator,
		pubSub:         pubSub,
		feedbackTopic:  feedbackTopic,
		dataFilePath:   dataFilePath,
		defaultMargin:  defaultMargin,
		logger:         log,
	}
}

// Suggest returns safe and ambitious college lists for a rank. Structured
// endpoint: no model involvement, pure data.
func (ms *mentorService) Suggest(ctx context.Context, request *dto.SuggestRequest) (*dto.SuggestResponse, error) {
	if !ms.knowledge.Loaded() {
		return nil, memory.ErrDataUnavailable
	}

	margin := request.Margin
	if margin == 0 {
		margin = ms.defaultMargin
	}

	bucket, err := ms.suggester.Suggest(request.Rank, margin)
	if err != nil {
		return nil, err
	}

	return mapper.ToSuggestResponse(bucket), nil
}

// Predict returns the chance category for a percentile against one college
// and branch.
func (ms *mentorService) Predict(ctx context.Context, request *dto.PredictRequest) (*dto.PredictResponse, error) {
	if !ms.knowledge.Loaded() {
		return nil, memory.ErrDataUnavailable
	}

	query := strings.TrimSpace(request.College + " " + request.Branch)
	hits := ms.retriever.Search(query, 1)
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: no cutoff data for %q", ErrNotFound, query)
	}

	prediction, err := ms.predictor.Predict(request.Percentile, hits[0])
	if err != nil {
		return nil, err
	}

	return mapper.ToPredictResponse(prediction), nil
}

// Chat runs the full grounded pipeline for one conversational turn.
func (ms *mentorService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	if !ms.knowledge.Loaded() {
		return nil, memory.ErrDataUnavailable
	}

	now := time.Now()
	sess := ms.sessionManager.LoadOrCreate(request.SessionId, now)

	bundle, err := ms.assembler.Assemble(sess, request.Message, now)
	if err != nil {
		return nil, err
	}

	reply, err := ms.generator.Generate(ctx, request.Message, bundle, nil)
	if err != nil {
		return nil, err
	}

	ms.logger.Info("mentor", "Chat turn completed", map[string]interface{}{
		"session_id": sess.ID,
		"kind":       string(bundle.Kind),
		"grounded":   bundle.Grounded,
	})

	return &dto.ChatResponse{
		SessionId: sess.ID,
		Reply:     reply,
		Grounded:  bundle.Grounded,
		Sources:   mapper.ToCollegeRecordDTOs(bundle.RetrievedRecords),
	}, nil
}

// RecordFeedback accepts the entry and hands it to the feedback topic; the
// consumer persists it. The HTTP path stays fast and never touches disk.
func (ms *mentorService) RecordFeedback(ctx context.Context, request *dto.FeedbackRequest) error {
	fb := entity.Feedback{
		Id:         uuid.New(),
		Type:       request.Type,
		Message:    request.Message,
		Response:   request.Response,
		Correction: request.Correction,
		CreatedAt:  time.Now(),
	}

	payload, err := json.Marshal(dto.FeedbackMessage{
		Id:         fb.Id.String(),
		Type:       fb.Type,
		Message:    fb.Message,
		Response:   fb.Response,
		Correction: fb.Correction,
		CreatedAt:  fb.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(fb.Id.String(), payload)
	if err := ms.pubSub.Publish(ms.feedbackTopic, msg); err != nil {
		ms.logger.Error("mentor", "Failed to publish feedback", map[string]interface{}{
			"feedback_id": fb.Id.String(),
			"error":       err.Error(),
		})
		return err
	}

	return nil
}

// ReloadKnowledge swaps in a fresh snapshot from disk. On failure the
// previous snapshot keeps serving and the error is reported to the caller.
func (ms *mentorService) ReloadKnowledge(ctx context.Context) (*dto.ReloadResponse, error) {
	if err := ms.knowledge.Load(ms.dataFilePath); err != nil {
		ms.logger.Error("mentor", "Knowledge reload failed, keeping previous snapshot", map[string]interface{}{
			"path":  ms.dataFilePath,
			"error": err.Error(),
		})
		return nil, err
	}

	return &dto.ReloadResponse{
		Records:  len(ms.knowledge.AllRecords()),
		LoadedAt: time.Now(),
	}, nil
}
