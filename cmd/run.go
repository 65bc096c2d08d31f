package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/config"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/langid"
	"github.com/talentscout/screener/internal/llm"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/phrasing"
	"github.com/talentscout/screener/internal/questions"
	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/screening"
	"github.com/talentscout/screener/internal/sentiment"
	"github.com/talentscout/screener/internal/store"
	"github.com/talentscout/screener/internal/store/redisstore"
)

// runtime is everything a command needs, built from configuration.
type runtime struct {
	cfg     config.Config
	log     *zap.Logger
	catalog *langid.Catalog

	sessions store.SessionRepo
	records  store.RecordRepo
	events   store.EventRepo

	// provider is nil when no LLM is configured.
	provider llm.Provider

	closers []func() error
}

// runtimeOptions adjusts how a runtime is built for one command.
type runtimeOptions struct {
	// logToFile sends logs next to the database so a full-screen UI is
	// not drawn over.
	logToFile bool
	// needLLM makes a missing provider an error instead of a warning.
	needLLM bool
}

// loadConfig reads the config file, env and flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newRuntime opens storage and builds the logger and LLM provider.
func newRuntime(ctx context.Context, opts runtimeOptions) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	logOpts := logger.Options{JSON: cfg.Log.JSON, Debug: cfg.Log.Debug}
	if opts.logToFile {
		logOpts.Output = []string{filepath.Join(filepath.Dir(dbPath), "talentscout.log")}
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log}
	rt.closers = append(rt.closers, func() error {
		_ = log.Sync()
		return nil
	})

	rt.catalog, err = langid.NewCatalog(cfg.Interview.Languages)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("interview.languages: %w", err)
	}

	if err := rt.openStorage(ctx, dbPath); err != nil {
		rt.Close()
		return nil, err
	}

	if err := rt.openProvider(ctx, opts.needLLM); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// resolveDBPath returns storage.db (set by --db, TALENTSCOUT_STORAGE_DB or
// the config file), then TALENTSCOUT_DB, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if p := cfg.Storage.DB; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func (rt *runtime) openStorage(ctx context.Context, dbPath string) error {
	if rt.cfg.Storage.Backend == config.StorageMemory {
		mem := store.NewMemory()
		rt.sessions, rt.records, rt.events = mem.SessionRepo(), mem.RecordRepo(), mem.EventRepo()
		rt.log.Info("using in-memory storage; sessions are lost on exit")
		return nil
	}

	// SQLite always holds records and the LLM event log.
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	rt.closers = append(rt.closers, st.Close)
	rt.sessions, rt.records, rt.events = st.SessionRepo(), st.RecordRepo(), st.EventRepo()

	if rt.cfg.Storage.Backend != config.StorageRedis {
		rt.log.Debug("using sqlite storage", zap.String("path", dbPath))
		return nil
	}

	rc := rt.cfg.Storage.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	rt.closers = append(rt.closers, client.Close)

	repo, err := redisstore.New(ctx, client, rc.Prefix, rc.TTL)
	if err != nil {
		return fmt.Errorf("open redis session store: %w", err)
	}
	rt.sessions = repo
	rt.log.Debug("using redis sessions", zap.String("addr", rc.Addr), zap.Duration("ttl", rc.TTL))
	return nil
}

// openProvider builds the LLM chain from config. When the config names no
// usable provider the conventional *_API_KEY variables are tried.
func (rt *runtime) openProvider(ctx context.Context, required bool) error {
	cfg := rt.cfg.LLM
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			if required {
				return fmt.Errorf("LLM provider: %w", err)
			}
			rt.log.Warn("LLM provider not configured, using offline fallbacks", zap.Error(err))
			return nil
		}
		discovered.Retry, discovered.Timeout = cfg.Retry, cfg.Timeout
		cfg = discovered
	}

	p, err := llm.NewProvider(ctx, cfg, rt.events, rt.log)
	if err != nil {
		if required {
			return fmt.Errorf("LLM provider: %w", err)
		}
		rt.log.Warn("LLM provider unavailable, using offline fallbacks", zap.Error(err))
		return nil
	}
	rt.provider = p
	rt.log.Debug("LLM provider ready", zap.Strings("chain", cfg.Chain()))
	return nil
}

// analyzer selects the sentiment backend. The llm backend degrades to the
// lexicon when no provider is available.
func (rt *runtime) analyzer() (sentiment.Analyzer, error) {
	sc := rt.cfg.Sentiment
	labels := sentiment.NewLabelSet(sc.Labels...)

	switch sc.Backend {
	case config.SentimentLLM:
		if rt.provider != nil {
			return sentiment.NewLLMAnalyzer(rt.provider, labels), nil
		}
		rt.log.Warn("sentiment backend llm needs a provider, using lexicon")
	case config.SentimentHuggingFace:
		hf, err := sentiment.NewHuggingFace(sentiment.HuggingFaceConfig{
			Endpoint: sc.HuggingFace.Endpoint,
			APIKey:   sc.HuggingFace.APIKey,
			Timeout:  sc.HuggingFace.Timeout,
		}, labels, rt.log)
		if err != nil {
			return nil, fmt.Errorf("sentiment backend: %w", err)
		}
		return hf, nil
	}
	return sentiment.NewLexicon(labels), nil
}

func (rt *runtime) questionSource() *questions.Generator {
	qc := rt.cfg.Questions
	return questions.New(rt.provider, questions.Config{
		Min:         qc.Min,
		Max:         qc.Max,
		RetryBudget: qc.RetryBudget,
		MaxTokens:   qc.MaxTokens,
		Temperature: questions.DefaultConfig().Temperature,
	}, rt.log)
}

// service wires the interview engine and the screening service.
func (rt *runtime) service() (*screening.Service, error) {
	analyzer, err := rt.analyzer()
	if err != nil {
		return nil, err
	}

	ic := rt.cfg.Interview
	engine, err := interview.New(interview.Config{
		FallbackThreshold: ic.FallbackThreshold,
		ExitKeywords:      ic.ExitKeywords,
		LanguageThreshold: ic.LanguageThreshold,
		DefaultLanguage:   ic.DefaultLanguage,
		MaxQuestions:      rt.cfg.Questions.Max,
	}, interview.Deps{
		Analyzer:  analyzer,
		Questions: rt.questionSource(),
		Catalog:   rt.catalog,
	}, rt.log)
	if err != nil {
		return nil, fmt.Errorf("create interview engine: %w", err)
	}

	var phraser phrasing.Phraser = phrasing.NewTemplates()
	if rt.cfg.Phrasing.LLM {
		if rt.provider != nil {
			phraser = phrasing.NewLLM(rt.provider, phraser, rt.catalog, rt.log)
		} else {
			rt.log.Warn("phrasing.llm is set but no provider is available, using templates")
		}
	}

	return screening.New(engine, screening.Options{
		Phraser:        phraser,
		Sessions:       rt.sessions,
		Records:        rt.records,
		ShiftThreshold: rt.cfg.Sentiment.ShiftThreshold,
		ExportDir:      rt.cfg.Storage.ExportDir,
		ExportFormat:   record.FormatJSON,
	}, rt.log)
}

// Close releases storage handles in reverse order of opening.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			rt.log.Warn("closing resource", zap.Error(err))
		}
	}
}

// withRuntime builds a runtime for cmd, runs fn and closes it.
func withRuntime(cmd *cobra.Command, opts runtimeOptions, fn func(ctx context.Context, rt *runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := newRuntime(ctx, opts)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(ctx, rt)
}
