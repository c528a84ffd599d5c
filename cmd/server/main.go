package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/ThamannaGM/Assignment-Tracker/internal/config"
	"github.com/ThamannaGM/Assignment-Tracker/internal/serverapp"
)

func main() {
	// Local overrides; absence is not an error.
	_ = godotenv.Load()

	cfg, err := loadConfig("tracker_config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.FromEnv()

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:  cfg,
		DataDir: cfg.Storage.DataDir,
		Logger:  log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if os.IsNotExist(err) {
		return config.Default(), nil
	}
	return cfg, err
}
