// Command cardioretina classifies retinal photographs from the command line.
// It is the presentation glue around the inference core: it decodes each image
// argument, runs the pipeline, and prints one JSON result per image.
package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ahsyx/CardioRetina/internal/assets"
	"github.com/Ahsyx/CardioRetina/internal/config"
	"github.com/Ahsyx/CardioRetina/internal/monitoring"
	"github.com/Ahsyx/CardioRetina/internal/risk"
	"github.com/Ahsyx/CardioRetina/internal/service"
)

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <image> [image ...]\n", os.Args[0])
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	arch := assets.FallbackArchitecture(cfg.Assets.FallbackTemplate)
	store := assets.NewStore(func() (assets.Model, *assets.Metadata, error) {
		return assets.Load(cfg.Assets.ModelPath, cfg.Assets.MetadataPath, arch)
	})
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	classifier := service.New(store, log, metrics)

	meta, err := classifier.Warmup()
	if err != nil {
		log.Error("inference unavailable", zap.Error(err),
			zap.String("model_path", cfg.Assets.ModelPath))
		os.Exit(1)
	}
	log.Info("assets loaded",
		zap.String("model_path", cfg.Assets.ModelPath),
		zap.String("version", meta.Version))

	enc := json.NewEncoder(os.Stdout)
	exitCode := 0
	for _, path := range os.Args[1:] {
		pred, err := classifyFile(classifier, path)
		if err != nil {
			// One bad image does not stop the rest of the batch.
			log.Warn("classification failed", zap.String("path", path), zap.Error(err))
			exitCode = 1
			continue
		}
		result := struct {
			Path        string  `json:"path"`
			Probability float64 `json:"probability"`
			Label       string  `json:"label"`
			Percent     string  `json:"percent"`
			Advice      string  `json:"advice"`
		}{path, pred.Probability, pred.Label, pred.Percent, pred.Advice}
		if err := enc.Encode(result); err != nil {
			log.Error("encode result", zap.Error(err))
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func classifyFile(classifier *service.Classifier, path string) (*risk.Prediction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return classifier.Classify(img)
}
