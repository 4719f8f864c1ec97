// Package service composes the inference pipeline: preprocess, forward pass,
// risk classification.
package service

import (
	"errors"
	"image"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ahsyx/CardioRetina/internal/assets"
	"github.com/Ahsyx/CardioRetina/internal/inference"
	"github.com/Ahsyx/CardioRetina/internal/monitoring"
	"github.com/Ahsyx/CardioRetina/internal/risk"
	"github.com/Ahsyx/CardioRetina/internal/vision"
)

// Classifier runs one synchronous classification per call over the shared,
// read-only model asset.
type Classifier struct {
	store   *assets.Store
	log     *zap.Logger
	metrics *monitoring.Metrics
}

// New builds a Classifier. metrics may be nil.
func New(store *assets.Store, log *zap.Logger, metrics *monitoring.Metrics) *Classifier {
	return &Classifier{store: store, log: log, metrics: metrics}
}

// Warmup forces asset construction and returns the advisory metadata. Failure
// here means inference is unavailable for the rest of the process.
func (c *Classifier) Warmup() (*assets.Metadata, error) {
	_, meta, err := c.store.Get()
	if err != nil {
		c.metrics.RecordFailure(errorKind(err))
		return nil, err
	}
	c.log.Info("model asset ready",
		zap.String("version", meta.Version),
		zap.String("trained_at", meta.TrainedAt),
	)
	return meta, nil
}

// Classify maps one decoded image to a risk prediction. Per-request failures
// are isolated: they never touch the cached asset or other requests.
func (c *Classifier) Classify(img image.Image) (*risk.Prediction, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := c.log.With(zap.String("request_id", requestID))

	model, _, err := c.store.Get()
	if err != nil {
		c.metrics.RecordFailure(errorKind(err))
		return nil, err
	}

	tensor, err := vision.Preprocess(img)
	if err != nil {
		c.metrics.RecordFailure(errorKind(err))
		log.Warn("preprocessing failed", zap.Error(err))
		return nil, err
	}

	p, err := inference.Run(model, tensor)
	if err != nil {
		c.metrics.RecordFailure(errorKind(err))
		log.Error("inference failed", zap.Error(err))
		return nil, err
	}

	pred := risk.Classify(p)
	c.metrics.RecordClassification(pred.Label, time.Since(start))
	log.Info("classification complete",
		zap.Float64("probability", pred.Probability),
		zap.String("label", pred.Label),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &pred, nil
}

// errorKind maps a pipeline error to its metric label.
func errorKind(err error) string {
	var loadErr *assets.LoadError
	var decodeErr *vision.DecodeError
	var shapeErr *inference.ShapeError
	switch {
	case errors.As(err, &loadErr):
		return "asset_load"
	case errors.As(err, &decodeErr):
		return "image_decode"
	case errors.As(err, &shapeErr):
		return "inference_shape"
	default:
		return "internal"
	}
}
