package categorize

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// ModelTier is one optional model-backed classifier. Categorize may return
// (nil, nil) when the tier has nothing confident to say.
type ModelTier interface {
	Categorize(ctx context.Context, tx *domain.ExtractedTransaction) (*domain.Categorization, error)
}

// Capabilities is the runtime state the cascade consults before attempting
// a model tier. It is passed per call rather than held as ambient state so
// the cascade is testable without a real model runtime.
type Capabilities struct {
	OnDeviceEnabled bool
	OnDeviceReady   bool

	CloudEnabled    bool
	CloudConfigured bool
	Online          bool
}

// Cascade orders the classifiers and short-circuits on the first result
// meeting its threshold. The rule tier always runs first and its result is
// the fallback when no model tier qualifies, so every call produces a
// category.
type Cascade struct {
	rules    *Rules
	onDevice ModelTier
	cloud    ModelTier

	ruleThreshold  float64
	modelThreshold float64

	log zerolog.Logger
}

// NewCascade wires the tiers. onDevice and cloud may be nil; a nil tier is
// treated as permanently unavailable.
func NewCascade(rules *Rules, onDevice, cloud ModelTier, ruleThreshold, modelThreshold float64, log zerolog.Logger) *Cascade {
	return &Cascade{
		rules:          rules,
		onDevice:       onDevice,
		cloud:          cloud,
		ruleThreshold:  ruleThreshold,
		modelThreshold: modelThreshold,
		log:            log,
	}
}

// Categorize runs the cascade for one transaction.
func (c *Cascade) Categorize(ctx context.Context, tx *domain.ExtractedTransaction, caps Capabilities) domain.Categorization {
	ruleResult := c.rules.Categorize(tx)
	if ruleResult.Confidence >= c.ruleThreshold {
		return ruleResult
	}

	if caps.OnDeviceEnabled && caps.OnDeviceReady && c.onDevice != nil {
		if result := c.tryTier(ctx, "on_device", c.onDevice, tx); result != nil {
			return *result
		}
	}

	if caps.CloudEnabled && caps.CloudConfigured && caps.Online && c.cloud != nil {
		if result := c.tryTier(ctx, "cloud", c.cloud, tx); result != nil {
			return *result
		}
	}

	return ruleResult
}

// tryTier runs one model tier and filters its answer. A tier error, panic,
// invalid category or sub-threshold confidence all collapse to "no result";
// tier failures never propagate past the cascade.
func (c *Cascade) tryTier(ctx context.Context, name string, tier ModelTier, tx *domain.ExtractedTransaction) (result *domain.Categorization) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn().Str("tier", name).Interface("panic", r).Msg("categorization tier panicked")
			result = nil
		}
	}()

	got, err := tier.Categorize(ctx, tx)
	if err != nil {
		c.log.Debug().Str("tier", name).Err(err).Msg("categorization tier unavailable")
		return nil
	}
	if got == nil {
		return nil
	}
	if !domain.ValidCategory(got.Category) {
		c.log.Debug().Str("tier", name).Str("category", string(got.Category)).Msg("tier returned unknown category")
		return nil
	}
	if got.Confidence < c.modelThreshold {
		return nil
	}
	return got
}
