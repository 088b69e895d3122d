// Package app assembles the dependencies shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"go-hiring-assistant/config"
	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/internal/interview"
	"go-hiring-assistant/internal/repository/candidatelog"
	"go-hiring-assistant/internal/repository/postgres"
	"go-hiring-assistant/internal/repository/session"
	"go-hiring-assistant/internal/usecase"
	"go-hiring-assistant/pkg/anonymize"
	"go-hiring-assistant/pkg/database"
	"go-hiring-assistant/pkg/llm"
	"go-hiring-assistant/pkg/logger"
	"go-hiring-assistant/pkg/redis"
	"go-hiring-assistant/pkg/storage"
	"go-hiring-assistant/pkg/validation"
)

// Container holds the wired services and the cleanup functions to run on exit.
type Container struct {
	InterviewUC domain.InterviewUsecase
	ExportUC    domain.ExportUsecase
	HealthUC    usecase.HealthUsecase
	Providers   llm.Options

	closers []func()
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func ProviderOptions(cfg *config.Config) (llm.Options, error) {
	kind, err := llm.ParseKind(cfg.LLMProvider)
	if err != nil {
		return llm.Options{}, err
	}
	return llm.Options{
		DefaultProvider: kind,
		APIKeys: map[llm.Kind]string{
			llm.KindGroq:   cfg.GroqAPIKey,
			llm.KindOpenAI: cfg.OpenAIAPIKey,
			llm.KindGemini: cfg.GeminiAPIKey,
		},
		Models: map[llm.Kind]string{
			llm.KindGroq:   cfg.GroqModel,
			llm.KindOpenAI: cfg.OpenAIModel,
			llm.KindGemini: cfg.GeminiModel,
		},
		BaseURLs: map[llm.Kind]string{
			llm.KindOpenAI: cfg.OpenAIURL,
		},
		Timeout: cfg.LLMTimeout,
	}, nil
}

// Build wires storage, providers and usecases from cfg. Redis is optional;
// without it sessions live in process memory.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}

	providers, err := ProviderOptions(cfg)
	if err != nil {
		return nil, err
	}
	c.Providers = providers
	if !providers.Configured() {
		logger.Log.Warn("No API key for the default provider; sessions must supply their own", "provider", providers.DefaultProvider)
	}

	var checks []usecase.HealthCheck

	var sessions domain.SessionStore
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, falling back to in-memory sessions", "error", err)
		}
	}
	if client := redis.Client(); client != nil {
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
		checks = append(checks, usecase.HealthCheck{Name: "redis", Probe: redis.HealthCheck})
		c.closers = append(c.closers, func() { _ = redis.Close() })
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	candidates, candidateChecks, err := c.candidateLog(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	checks = append(checks, candidateChecks...)

	machine := interview.NewMachine(interview.MaxQuestionsForFlow(cfg.InterviewFlow), validation.New())
	logger.Log.Info("Interview flow configured", "flow", cfg.InterviewFlow, "max_questions", machine.MaxQuestions())

	c.InterviewUC = usecase.NewInterviewUsecase(usecase.InterviewDeps{
		Sessions:   sessions,
		Candidates: candidates,
		Machine:    machine,
		Anonymizer: anonymize.New(cfg.DataSalt),
		Providers:  providers.Factory(),
		Configured: providers.Configured,
		Now:        time.Now,
	})
	c.ExportUC = usecase.NewExportUsecase(candidates)
	c.HealthUC = usecase.NewHealthUsecase(providers.Configured, checks...)

	return c, nil
}

func (c *Container) candidateLog(ctx context.Context, cfg *config.Config) (domain.CandidateLogRepository, []usecase.HealthCheck, error) {
	switch cfg.CandidateLogDriver {
	case config.CandidateLogPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("connect candidate log database: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		if err := postgres.EnsureCandidateLogSchema(ctx, pool); err != nil {
			return nil, nil, err
		}
		logger.Log.Info("Candidate log backend", "driver", "postgres")
		return postgres.NewCandidateLogRepository(pool),
			[]usecase.HealthCheck{{Name: "postgres", Probe: pool.Ping}}, nil

	case config.CandidateLogS3:
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Log.Info("Candidate log backend", "driver", "s3", "bucket", cfg.S3Bucket, "key", cfg.S3Key)
		probe := func(ctx context.Context) error { return storage.CheckBucket(ctx, client, cfg.S3Bucket) }
		return candidatelog.NewS3Repository(client, cfg.S3Bucket, cfg.S3Key),
			[]usecase.HealthCheck{{Name: "s3", Probe: probe}}, nil

	default:
		logger.Log.Info("Candidate log backend", "driver", "file", "path", cfg.DataFile)
		return candidatelog.NewFileRepository(cfg.DataFile), nil, nil
	}
}
