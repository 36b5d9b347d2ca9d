package bootstrap

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"cvtailor-backend/internal/llm/ollama"
	"cvtailor-backend/internal/render"
	"cvtailor-backend/internal/services/health"
	"cvtailor-backend/internal/shared/config"
	"cvtailor-backend/internal/shared/server"
	localstore "cvtailor-backend/internal/shared/storage/object/local"
	"cvtailor-backend/internal/tailoring"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	LLM              *ollama.Client
	TailoringService *tailoring.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	llmClient, err := ollama.NewClient(cfg.OllamaURL, cfg.OllamaModel, cfg.OllamaTimeout)
	if err != nil {
		return nil, err
	}

	svc := &tailoring.Service{
		Uploads:   localstore.New(cfg.UploadDir),
		LLM:       llmClient,
		Renderer:  render.PDFRenderer{},
		Repo:      tailoring.NewMemoryRepo(),
		OutputDir: cfg.OutputDir,
	}

	app := &App{
		Config:           cfg,
		LLM:              llmClient,
		TailoringService: svc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		TailoringHandler: tailoring.NewHandler(svc, cfg.OutputDir, cfg.MaxUploadBytes),
		Health:           health.NewService(llmClient),
	})

	return app, nil
}
