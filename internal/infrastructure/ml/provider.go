// Package ml adapts the trained forest artifact to the domain's
// RiskPredictor port.
package ml

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/forest"
)

// ModelProvider loads the forest artifact lazily on first use and caches
// it for the life of the process. Only a successful load is cached, so a
// missing or corrupt artifact is retried on the next prediction and the
// caller falls back to rule scoring in the meantime. Concurrent first
// loads race harmlessly; whichever finishes last wins the cache slot and
// all loads of the same file are equivalent.
type ModelProvider struct {
	path   string
	cached atomic.Pointer[forest.Forest]
	logger *slog.Logger
}

// NewModelProvider creates a provider reading the artifact at path.
func NewModelProvider(path string, logger *slog.Logger) *ModelProvider {
	return &ModelProvider{path: path, logger: logger}
}

// Predict classifies the feature vector with the cached model, loading
// the artifact first if needed. Confidence is the top class probability
// scaled to [0, 100].
func (p *ModelProvider) Predict(ctx context.Context, features valueobject.FeatureVector) (valueobject.RiskPrediction, error) {
	if err := ctx.Err(); err != nil {
		return valueobject.RiskPrediction{}, err
	}

	model, err := p.model()
	if err != nil {
		return valueobject.RiskPrediction{}, err
	}

	label, proba, err := model.Predict(features.Values())
	if err != nil {
		return valueobject.RiskPrediction{}, fmt.Errorf("model inference failed: %w", err)
	}

	category, err := valueobject.RiskCategoryFromString(label)
	if err != nil {
		return valueobject.RiskPrediction{}, fmt.Errorf("model produced unknown category: %w", err)
	}

	return valueobject.RiskPrediction{
		Category:   category,
		Confidence: valueobject.Round2(proba * 100),
	}, nil
}

func (p *ModelProvider) model() (*forest.Forest, error) {
	if model := p.cached.Load(); model != nil {
		return model, nil
	}

	model, err := forest.Load(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifact: %w", err)
	}

	p.cached.Store(model)
	p.logger.Info("model artifact loaded",
		slog.String("path", p.path),
		slog.Int("trees", len(model.Trees)),
		slog.Int("features", model.NumFeatures))
	return model, nil
}
