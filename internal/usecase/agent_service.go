package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/lexicon"
	"github.com/pricelens/backend/internal/observability"
)

const (
	defaultMaxQueryLength = 300
	defaultHistoryLimit   = 12
	defaultMatchTimeout   = 2 * time.Second
)

const chatReply = `Hello! I am your boutique concierge. I can:
- look up a price in our catalog (send a product name or reference)
- search a brand's website for new arrivals (say "search online for <brand> <product>")
How can I help you?`

const otherReply = `Sorry, I did not quite understand your request. You can:
- send a product name, for example "Lady Dior bag"
- send a product reference
- say "search online for Gucci skirt" to search the brand's website`

// AgentConfig holds configuration for the agent service
type AgentConfig struct {
	MaxQueryLength int
	HistoryLimit   int
	RequestTimeout time.Duration
	MatchTimeout   time.Duration
	DisableIndex   bool

	Classifier  ClassifierConfig
	Augmenter   AugmenterConfig
	Synthesizer SynthesizerConfig
}

// AgentService resolves customer queries through the request state machine:
// Start -> Normalize -> Classify -> {Chat | Other | PriceLocal | PriceOnline}
// -> Synthesize -> Respond.
type AgentService struct {
	catalog     domain.CatalogStore
	normalizer  *QueryNormalizer
	classifier  *IntentClassifier
	matcher     *CatalogMatcher
	augmenter   *SearchAugmenter
	synthesizer *ResponseSynthesizer
	metrics     domain.PipelineMetrics
	config      AgentConfig
	log         zerolog.Logger
}

// NewAgentService creates the pipeline. completion, search, cache and metrics
// may be nil; the corresponding stages then use their fallbacks.
func NewAgentService(
	catalog domain.CatalogStore,
	completion domain.CompletionService,
	search domain.SearchService,
	cache domain.CacheRepository,
	lex *lexicon.Lexicon,
	metrics domain.PipelineMetrics,
	config AgentConfig,
	log zerolog.Logger,
) *AgentService {
	if config.MaxQueryLength <= 0 {
		config.MaxQueryLength = defaultMaxQueryLength
	}
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = defaultHistoryLimit
	}
	if config.MatchTimeout <= 0 {
		config.MatchTimeout = defaultMatchTimeout
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if lex == nil {
		lex = lexicon.Default()
	}

	return &AgentService{
		catalog:     catalog,
		normalizer:  NewQueryNormalizer(lex, observability.Component(log, "normalizer")),
		classifier:  NewIntentClassifier(completion, config.Classifier, observability.Component(log, "classifier")),
		matcher:     NewCatalogMatcher(catalog, MatcherConfig{DisableIndex: config.DisableIndex}, observability.Component(log, "matcher")),
		augmenter:   NewSearchAugmenter(search, cache, lex, metrics, config.Augmenter, observability.Component(log, "augmenter")),
		synthesizer: NewResponseSynthesizer(completion, config.Synthesizer, observability.Component(log, "synthesizer")),
		metrics:     metrics,
		config:      config,
		log:         observability.Component(log, "agent"),
	}
}

// pipelineRun carries one request through the state machine.
type pipelineRun struct {
	query      string
	history    []domain.Message
	normalized string
	decision   domain.IntentDecision
	match      domain.MatchResult
	search     *domain.SearchOutcome
	reply      domain.AgentReply
	trace      []State
	started    time.Time
}

// Handle answers one request. The only errors returned are input errors
// (ErrQueryRequired, ErrQueryTooLong); every dependency failure is absorbed.
func (s *AgentService) Handle(ctx context.Context, req domain.AgentRequest) (domain.AgentReply, error) {
	run, err := s.start(req)
	if err != nil {
		return domain.AgentReply{}, err
	}

	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	s.execute(ctx, run)
	return run.reply, nil
}

// start validates the request before the machine runs.
func (s *AgentService) start(req domain.AgentRequest) (*pipelineRun, error) {
	query := ResolveQuery(req)
	if query == "" {
		return nil, domain.ErrQueryRequired
	}
	if n := utf8.RuneCountInString(query); n > s.config.MaxQueryLength {
		return nil, fmt.Errorf("%w: %d characters, at most %d allowed", domain.ErrQueryTooLong, n, s.config.MaxQueryLength)
	}

	return &pipelineRun{
		query:   query,
		history: TrimEchoedTurn(NormalizeHistory(req.History, s.config.HistoryLimit), query),
		started: time.Now(),
	}, nil
}

func (s *AgentService) execute(ctx context.Context, run *pipelineRun) {
	log := observability.FromContext(ctx, s.log)

	state := StateStart
	for {
		run.trace = append(run.trace, state)
		if state == StateRespond {
			s.respond(run)
			log.Info().
				Str("intent", string(run.reply.Intent)).
				Bool("matched", run.reply.Matched).
				Bool("online", run.reply.Online).
				Str("path", tracePath(run.trace)).
				Dur("duration", time.Since(run.started)).
				Msg("request resolved")
			return
		}

		stepStart := time.Now()
		next := s.step(ctx, run, state)
		s.metrics.ObserveStage(state.String(), time.Since(stepStart))
		state = next
	}
}

// step runs one state and returns the next one.
func (s *AgentService) step(ctx context.Context, run *pipelineRun, state State) State {
	switch state {
	case StateStart:
		return StateNormalize

	case StateNormalize:
		run.normalized = s.normalizer.Normalize(run.query)
		return StateClassify

	case StateClassify:
		run.decision = s.classifier.Classify(ctx, run.normalized, run.history)
		if run.decision.Fallback {
			s.metrics.IncFallback("classify")
		}
		run.reply.Intent = run.decision.Intent
		return NextStateForIntent(run.decision.Intent)

	case StateChat:
		run.reply.Message = firstNonEmpty(run.decision.Message, chatReply)
		return StateRespond

	case StateOther:
		run.reply.Message = firstNonEmpty(run.decision.Message, otherReply)
		return StateRespond

	case StatePriceLocal:
		run.match = s.match(ctx, run.decision.Hint)
		return StateSynthesize

	case StatePriceOnline:
		s.fanOut(ctx, run)
		return StateSynthesize

	case StateSynthesize:
		s.synthesize(ctx, run)
		return StateRespond
	}

	s.log.Error().Str("state", state.String()).Msg("unknown state")
	return StateRespond
}

// fanOut runs the catalog match and the online search concurrently, each
// under its own deadline, and joins both before synthesis.
func (s *AgentService) fanOut(ctx context.Context, run *pipelineRun) {
	var (
		match   domain.MatchResult
		outcome domain.SearchOutcome
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		match = s.match(gctx, run.decision.Hint)
		return nil
	})
	g.Go(func() error {
		outcome = s.augmenter.Augment(gctx, run.decision.Hint)
		return nil
	})
	_ = g.Wait()

	if !outcome.OK() {
		s.metrics.IncFallback("search")
	}
	run.match = match
	run.search = &outcome
}

func (s *AgentService) match(ctx context.Context, hint string) domain.MatchResult {
	ctx, cancel := context.WithTimeout(ctx, s.config.MatchTimeout)
	defer cancel()

	result, err := s.matcher.Match(ctx, hint)
	if err != nil {
		s.log.Warn().Err(err).Str("hint", hint).Msg("catalog lookup failed")
		s.metrics.IncFallback("match")
		return noMatch()
	}
	return result
}

func (s *AgentService) synthesize(ctx context.Context, run *pipelineRun) {
	message, fallback := s.synthesizer.Synthesize(ctx, SynthesisInput{
		Query:   run.query,
		History: run.history,
		Intent:  run.decision.Intent,
		Match:   run.match,
		Search:  run.search,
	})
	if fallback {
		s.metrics.IncFallback("synthesis")
	}

	run.reply.Message = message
	run.reply.Online = run.search != nil
	if run.match.Found() {
		item := run.match.Item
		price := item.Price
		run.reply.Matched = true
		run.reply.Product = item.DisplayName()
		run.reply.Price = &price
		run.reply.Reference = item.Reference
		run.reply.Link = item.Link
	}
}

func (s *AgentService) respond(run *pipelineRun) {
	if strings.TrimSpace(run.reply.Message) == "" {
		run.reply.Message = otherReply
	}
	s.metrics.ObserveRequest(run.reply.Intent, run.reply.Matched, run.reply.Online, time.Since(run.started))
}

// GetCatalogItem looks up one catalog item by reference.
func (s *AgentService) GetCatalogItem(ctx context.Context, reference string) (*domain.CatalogItem, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domain.ErrItemNotFound
	}
	return s.catalog.GetByReference(ctx, reference)
}

func tracePath(trace []State) string {
	names := make([]string, len(trace))
	for i, st := range trace {
		names[i] = st.String()
	}
	return strings.Join(names, ">")
}

type nopMetrics struct{}

func (nopMetrics) ObserveRequest(domain.Intent, bool, bool, time.Duration) {}
func (nopMetrics) ObserveStage(string, time.Duration) {}
func (nopMetrics) IncFallback(string) {}
func (nopMetrics) IncSearchCache(bool) {}
