package health

import "context"

// Pinger reports whether the model server answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	Model Pinger
}

// NewService constructs a new health service.
func NewService(model Pinger) *Service {
	return &Service{Model: model}
}

// Status reports service liveness and whether the local model server is up.
func (s *Service) Status(ctx context.Context) map[string]any {
	status := map[string]any{"ok": true}
	if s.Model != nil {
		if err := s.Model.Ping(ctx); err != nil {
			status["model_server"] = "down"
		} else {
			status["model_server"] = "up"
		}
	}
	return status
}
