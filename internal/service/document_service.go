package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rag-iishka-client/internal/client"
	"rag-iishka-client/internal/dto"
	"rag-iishka-client/internal/gateway"
	"rag-iishka-client/internal/models"

	"go.uber.org/zap"
)

// ErrResultNotFound means no processed data could be obtained for a document,
// neither from the cache nor by processing it again.
var ErrResultNotFound = errors.New("processed data not found")

type DocumentOptions struct {
	AutoProcess      bool
	AutoProcessDelay time.Duration
	// ProcessTimeout bounds background processing, which outlives the request
	// that started it.
	ProcessTimeout time.Duration
}

type DocumentService struct {
	api    *client.Client
	cache  *ResultCache
	opts   DocumentOptions
	logger *zap.Logger
	wg     sync.WaitGroup
	now    func() time.Time
}

func NewDocumentService(api *client.Client, cache *ResultCache, opts DocumentOptions, logger *zap.Logger) *DocumentService {
	if opts.ProcessTimeout <= 0 {
		opts.ProcessTimeout = 5 * time.Minute
	}
	return &DocumentService{
		api:    api,
		cache:  cache,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// AutoProcess reports whether uploads are followed by processing.
func (s *DocumentService) AutoProcess() bool {
	return s.opts.AutoProcess
}

// Upload sends a document and, if enabled, schedules its processing after
// AutoProcessDelay. The scheduled call is not tied to ctx.
func (s *DocumentService) Upload(ctx context.Context, sessionID string, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := s.api.UploadDocument(ctx, sessionID, req)
	if err != nil {
		return nil, err
	}

	if s.opts.AutoProcess {
		s.processLater(sessionID, doc.ID)
	}
	return doc, nil
}

func (s *DocumentService) processLater(sessionID, documentID string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.opts.AutoProcessDelay > 0 {
			time.Sleep(s.opts.AutoProcessDelay)
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.opts.ProcessTimeout)
		defer cancel()

		if _, err := s.Process(ctx, sessionID, documentID); err != nil {
			s.logger.Warn("Automatic processing failed",
				zap.String("document_id", documentID),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until scheduled background processing has finished.
func (s *DocumentService) Wait() {
	s.wg.Wait()
}

// List returns the latest documents joined with cached processing results.
func (s *DocumentService) List(ctx context.Context, sessionID string, limit int) ([]models.DocumentView, error) {
	docs, err := s.api.ListDocuments(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]models.DocumentView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, s.view(sessionID, doc))
	}
	return views, nil
}

func (s *DocumentService) view(sessionID string, doc dto.DocumentResponse) models.DocumentView {
	v := models.DocumentView{
		Document:  doc,
		Processed: doc.ExtractedText != "",
		Status:    models.DocumentStatusUploaded,
	}

	if result, ok := s.cache.Get(sessionID, doc.ID); ok {
		v.TransactionCount = len(result.Transactions)
		v.RecommendationCount = len(result.Recommendations)
	}

	switch {
	case v.Processed:
		v.Status = models.DocumentStatusProcessed
	case s.cache.Processing(sessionID, doc.ID):
		v.Status = models.DocumentStatusProcessing
	}

	v.CanProcess = !v.Processed && v.Status != models.DocumentStatusProcessing
	v.HasDetails = v.Processed || v.TransactionCount > 0 || v.RecommendationCount > 0
	v.HasRecommendations = v.RecommendationCount > 0
	if v.Processed {
		v.TextPreview, v.TextTruncated = preview(doc.ExtractedText, previewLimit)
	}
	return v
}

// Process asks the backend to process a document and remembers the result.
func (s *DocumentService) Process(ctx context.Context, sessionID, documentID string) (*models.ProcessedResult, error) {
	done := s.cache.Begin(sessionID, documentID)
	defer done()

	resp, err := s.api.ProcessDocument(ctx, sessionID, documentID)
	if err != nil {
		return nil, err
	}

	result := models.NewProcessedResult(resp, s.now())
	s.cache.Put(sessionID, documentID, result)
	return result, nil
}

// Details returns cached results, repopulating the cache by processing the
// document again when they are missing (e.g. after a restart). The backend
// answers that call with the data it already has.
func (s *DocumentService) Details(ctx context.Context, sessionID, documentID string) (*models.ProcessedResult, error) {
	if result, ok := s.cache.Get(sessionID, documentID); ok {
		return result, nil
	}

	result, err := s.Process(ctx, sessionID, documentID)
	if err != nil {
		if errors.Is(err, gateway.ErrSessionExpired) {
			return nil, err
		}
		s.logger.Warn("Failed to fetch document data", zap.String("document_id", documentID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrResultNotFound, err)
	}
	return result, nil
}

// Recommendations is Details narrowed to recommendations. Unlike Details a
// transport failure is reported as such rather than as ErrResultNotFound.
func (s *DocumentService) Recommendations(ctx context.Context, sessionID, documentID string) ([]dto.RecommendationResponse, error) {
	if result, ok := s.cache.Get(sessionID, documentID); ok {
		return result.Recommendations, nil
	}

	result, err := s.Process(ctx, sessionID, documentID)
	if err != nil {
		if errors.Is(err, gateway.ErrSessionExpired) || errors.Is(err, gateway.ErrNetwork) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrResultNotFound, err)
	}
	return result.Recommendations, nil
}
