package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CANDIDATE_LOG_DRIVER", "file")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.CandidateLogDriver)
	assert.Equal(t, "standard", cfg.InterviewFlow)
	assert.Equal(t, "groq", cfg.LLMProvider)
	assert.Equal(t, "data/candidates.json", cfg.DataFile)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INTERVIEW_FLOW", "Minimal")
	t.Setenv("SESSION_TTL", "90")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example/, ,https://b.example")
	t.Setenv("CANDIDATE_LOG_DRIVER", "file")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "minimal", cfg.InterviewFlow)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigDriverRequirements(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("CANDIDATE_LOG_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "S3_BUCKET")

	t.Setenv("CANDIDATE_LOG_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("CANDIDATE_LOG_DRIVER", "sqlite")
	_, err = LoadConfig()
	assert.Error(t, err)
}
