package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]interface{}
}

// HealthCheck is a named dependency probe. A nil error means healthy.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

type healthUsecase struct {
	checks     []HealthCheck
	configured func() bool
}

func NewHealthUsecase(configured func() bool, checks ...HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks, configured: configured}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]interface{} {
	deps := make(map[string]string, len(u.checks))
	status := "ok"
	for _, c := range u.checks {
		if err := c.Probe(ctx); err != nil {
			deps[c.Name] = "unavailable"
			status = "degraded"
			continue
		}
		deps[c.Name] = "ok"
	}

	return map[string]interface{}{
		"status":         status,
		"llm_configured": u.configured != nil && u.configured(),
		"dependencies":   deps,
	}
}
