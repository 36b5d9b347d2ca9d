package main

import (
	"log"

	"cvtailor-backend/internal/bootstrap"
	"cvtailor-backend/internal/shared/config"
	"cvtailor-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("CV Tailor running on http://localhost%s (model %s via %s)", addr, cfg.OllamaModel, cfg.OllamaURL)
	log.Printf("Make sure Ollama is running (ollama serve)")

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
