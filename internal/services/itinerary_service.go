package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tripgen/internal/models/db_models"
	"tripgen/internal/models/request_models"
	"tripgen/internal/models/response_models"
	"tripgen/internal/repositories"
	"tripgen/pkg/metrics"
	"tripgen/pkg/utils"
)

const ledgerWriteTimeout = 2 * time.Second

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, input request_models.RequestInput) (*response_models.CanonicalItinerary, error)
}

// ItineraryService runs one generation per call: validate, build the
// directive, call the oracle once, sanitize, normalize. It keeps no state
// between calls and never retries; callers retry with a fresh call.
type ItineraryService struct {
	oracle  utils.OracleClientInterface
	logRepo repositories.GenerationLogRepositoryInterface
	logger  *zap.Logger
}

func NewItineraryService(
	oracle utils.OracleClientInterface,
	logRepo repositories.GenerationLogRepositoryInterface,
	logger *zap.Logger,
) ItineraryServiceInterface {
	if logRepo == nil {
		logRepo = repositories.NoopGenerationLogRepository{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ItineraryService{
		oracle:  oracle,
		logRepo: logRepo,
		logger:  logger,
	}
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, input request_models.RequestInput) (*response_models.CanonicalItinerary, error) {
	start := time.Now()
	metrics.GenerationsInFlight.Inc()
	defer metrics.GenerationsInFlight.Dec()

	log := s.logger.With(
		zap.String("trace_id", utils.TraceIDFromContext(ctx)),
		zap.String("provider", s.oracle.Name()),
	)

	itinerary, normalized, err := s.run(ctx, input, log)
	if normalized != nil {
		input = normalized
	}

	s.record(ctx, input, itinerary, err, time.Since(start), log)
	if err != nil {
		var pe *utils.PipelineError
		stage := ""
		if errors.As(err, &pe) {
			stage = pe.Stage
		}
		log.Warn("itinerary generation failed",
			zap.String("stage", stage),
			zap.String("kind", utils.ErrorKindLabel(err)),
			zap.Bool("retryable", utils.IsRetryable(err)),
			zap.Error(err))
		metrics.ItineraryGenerations.WithLabelValues(db_models.OutcomeFailure, utils.ErrorKindLabel(err)).Inc()
		return nil, err
	}

	log.Info("itinerary generated",
		zap.String("destination", itinerary.Destination),
		zap.Int("duration", itinerary.Duration),
		zap.Int("days", len(itinerary.Days)),
		zap.Duration("elapsed", time.Since(start)))
	metrics.ItineraryGenerations.WithLabelValues(db_models.OutcomeSuccess, "").Inc()
	return itinerary, nil
}

// run returns the normalized input alongside the result so the ledger records
// what was actually sent.
func (s *ItineraryService) run(ctx context.Context, raw request_models.RequestInput, log *zap.Logger) (*response_models.CanonicalItinerary, request_models.RequestInput, error) {
	input, err := request_models.NormalizeRequestInput(raw)
	if err != nil {
		return nil, nil, utils.NewPipelineError(utils.StageValidate, utils.ErrInvalidInput, err)
	}

	directive, err := BuildDirective(input)
	if err != nil {
		return nil, input, utils.NewPipelineError(utils.StageDirective, utils.ErrInvalidInput, err)
	}

	oracleStart := time.Now()
	reply, err := s.oracle.Invoke(ctx, directive.Text())
	outcome := db_models.OutcomeSuccess
	if err != nil {
		outcome = db_models.OutcomeFailure
	}
	metrics.OracleCallDuration.WithLabelValues(s.oracle.Name(), outcome).Observe(time.Since(oracleStart).Seconds())
	if err != nil {
		kind := utils.ErrorKind(err)
		if kind == nil {
			kind = utils.ErrOracleTransport
		}
		return nil, input, utils.NewPipelineError(utils.StageOracle, kind, err)
	}
	log.Debug("oracle replied", zap.Int("bytes", len(reply)), zap.Duration("oracle_elapsed", time.Since(oracleStart)))

	// An abandoned request stops here; nothing after the oracle call runs.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, input, utils.NewPipelineError(utils.StageOracle, utils.ErrOracleTransport, ctxErr)
	}

	itinerary, err := NormalizeItineraryWithHints(utils.SanitizeJSONText(reply), hintsFor(input))
	if err != nil {
		return nil, input, utils.NewPipelineError(utils.StageNormalize, utils.ErrMalformedPayload, err)
	}
	return itinerary, input, nil
}

func hintsFor(input request_models.RequestInput) NormalizeHints {
	switch v := input.(type) {
	case request_models.StructuredPreferences:
		return NormalizeHints{Destination: v.Destination, Duration: v.Duration}
	case *request_models.StructuredPreferences:
		if v != nil {
			return NormalizeHints{Destination: v.Destination, Duration: v.Duration}
		}
	}
	return NormalizeHints{}
}

// requestKind tolerates nil and typed-nil inputs.
func requestKind(input request_models.RequestInput) string {
	switch v := input.(type) {
	case request_models.StructuredPreferences, request_models.NaturalLanguageQuery:
		return v.Kind()
	case *request_models.StructuredPreferences:
		if v != nil {
			return v.Kind()
		}
	case *request_models.NaturalLanguageQuery:
		if v != nil {
			return v.Kind()
		}
	}
	return "unknown"
}

// record writes the usage ledger row. Ledger errors are logged only.
func (s *ItineraryService) record(
	ctx context.Context,
	input request_models.RequestInput,
	itinerary *response_models.CanonicalItinerary,
	genErr error,
	elapsed time.Duration,
	log *zap.Logger,
) {
	entry := &db_models.GenerationLog{
		TraceID:   utils.TraceIDFromContext(ctx),
		UserID:    utils.UserIDFromContext(ctx),
		Provider:  s.oracle.Name(),
		Outcome:   db_models.OutcomeSuccess,
		LatencyMs: elapsed.Milliseconds(),
	}
	entry.RequestKind = requestKind(input)
	if hints := hintsFor(input); hints.Destination != "" {
		entry.Destination = hints.Destination
		entry.Duration = hints.Duration
	}
	switch v := input.(type) {
	case request_models.StructuredPreferences:
		entry.Interests = v.Interests
	case *request_models.StructuredPreferences:
		if v != nil {
			entry.Interests = v.Interests
		}
	}

	if genErr != nil {
		entry.Outcome = db_models.OutcomeFailure
		entry.ErrorKind = utils.ErrorKindLabel(genErr)
		var pe *utils.PipelineError
		if errors.As(genErr, &pe) {
			entry.Stage = pe.Stage
		}
	} else if itinerary != nil {
		entry.DaysReturned = len(itinerary.Days)
		if entry.Destination == "" {
			entry.Destination = itinerary.Destination
			entry.Duration = itinerary.Duration
		}
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerWriteTimeout)
	defer cancel()
	if err := s.logRepo.CreateGenerationLog(writeCtx, entry); err != nil {
		log.Warn("failed to record generation log", zap.Error(err))
	}
}
