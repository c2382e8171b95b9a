package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	"go.uber.org/zap"
)

// EstimateTokens approximates a language-model token count as one token per
// four Unicode code points, rounded down. The report figures depend on this
// exact formula.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// Tokenizer counts tokens with a real model vocabulary. It is only used for
// the optional "exact" line printed under the summary.
type Tokenizer interface {
	Name() string
	CountTokens(text string) (int, error)
}

type tiktokenCounter struct {
	model string
	ttk   *tiktoken.Tiktoken
}

func (t *tiktokenCounter) Name() string { return t.model }

func (t *tiktokenCounter) CountTokens(text string) (int, error) {
	return len(t.ttk.EncodeOrdinary(text)), nil
}

type hfCounter struct {
	model string
	htk   *hf.Tokenizer
}

func (h *hfCounter) Name() string { return h.model }

func (h *hfCounter) CountTokens(text string) (int, error) {
	en, err := h.htk.EncodeSingle(text)
	if err != nil {
		return 0, fmt.Errorf("huggingface tokenizer failed to encode text: %w", err)
	}
	return len(en.Tokens), nil
}

const (
	defaultTiktokenModel = "gpt-4o"
	defaultHFModel       = "gpt2"
)

// NewTokenizer returns the tokenizer selected by kind, or nil when kind is empty.
// For huggingface, model is either a pretrained model name or a path to a
// local tokenizer.json.
func NewTokenizer(kind, model string, logger *zap.Logger) (Tokenizer, error) {
	switch strings.ToLower(kind) {
	case "", "none":
		return nil, nil
	case "tiktoken":
		return loadTiktoken(model, logger)
	case "huggingface", "hf":
		return loadHuggingFace(model, logger)
	default:
		return nil, fmt.Errorf("%w: unsupported tokenizer %q (use tiktoken or huggingface)", ErrInvalidOption, kind)
	}
}

func loadTiktoken(model string, logger *zap.Logger) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("tiktoken model not found, falling back to default",
			zap.String("model", model), zap.String("default", defaultTiktokenModel), zap.Error(err))
		model = defaultTiktokenModel
		tke, err = tiktoken.EncodingForModel(model)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for model %q: %w", model, err)
		}
	}
	return &tiktokenCounter{model: model, ttk: tke}, nil
}

func loadHuggingFace(model string, logger *zap.Logger) (Tokenizer, error) {
	if strings.HasSuffix(model, ".json") {
		logger.Debug("loading huggingface tokenizer from file", zap.String("file", model))
		tk, err := pretrained.FromFile(model)
		if err != nil {
			return nil, fmt.Errorf("failed to load tokenizer from file %s: %w", model, err)
		}
		return &hfCounter{model: model, htk: tk}, nil
	}

	if model == "" {
		model = defaultHFModel
	}
	logger.Debug("loading huggingface tokenizer", zap.String("model", model))
	configFile, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache path for model %s: %w", model, err)
	}
	tk, err := pretrained.FromFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pretrained tokenizer for model %s (from %s): %w", model, configFile, err)
	}
	return &hfCounter{model: model, htk: tk}, nil
}
