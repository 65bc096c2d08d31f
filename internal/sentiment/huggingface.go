package sentiment

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/logger"
)

// emotionLabels maps the seven-class emotion model onto the label set.
var emotionLabels = map[string]string{
	"joy":      Positive,
	"surprise": Positive,
	"sadness":  Negative,
	"anger":    Negative,
	"disgust":  Negative,
	"fear":     Anxious,
	"neutral":  Neutral,
}

// HuggingFaceConfig configures the hosted emotion classifier.
type HuggingFaceConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// HuggingFace calls a hosted text-classification model over HTTP.
type HuggingFace struct {
	client *client.Client
	cfg    HuggingFaceConfig
	labels LabelSet
	log    *zap.Logger
}

// NewHuggingFace builds the analyzer with its own hertz client.
func NewHuggingFace(cfg HuggingFaceConfig, labels LabelSet, log *zap.Logger) (*HuggingFace, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("huggingface endpoint is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c, err := client.NewClient(
		client.WithDialer(standard.NewDialer()),
		client.WithTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}),
		client.WithDialTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http client: %w", err)
	}
	return &HuggingFace{client: c, cfg: cfg, labels: labels, log: logger.OrNop(log)}, nil
}

type emotionScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (h *HuggingFace) Analyze(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return NeutralResult, nil
	}

	scores, err := h.classify(ctx, text)
	if err != nil {
		return Result{}, &ClassifierError{Backend: "huggingface", Err: err}
	}

	totals := make(map[string]float64)
	for _, s := range scores {
		label, ok := emotionLabels[strings.ToLower(s.Label)]
		if !ok || !h.labels.Contains(label) {
			label = Neutral
		}
		totals[label] += s.Score
	}

	best := Result{Label: Neutral}
	for _, label := range h.labels.labels {
		if v := totals[label]; v > best.Score {
			best = Result{Label: label, Score: v}
		}
	}
	h.log.Debug("emotion classified", zap.String("label", best.Label), zap.Float64("score", best.Score))
	return h.labels.Coerce(best), nil
}

func (h *HuggingFace) classify(ctx context.Context, text string) ([]emotionScore, error) {
	body, err := json.Marshal(map[string]any{
		"inputs":  text,
		"options": map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return nil, err
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer protocol.ReleaseRequest(req)
	defer protocol.ReleaseResponse(resp)

	req.SetRequestURI(h.cfg.Endpoint)
	req.SetMethod(consts.MethodPost)
	req.Header.SetContentTypeBytes([]byte(consts.MIMEApplicationJSON))
	if h.cfg.APIKey != "" {
		req.Header.Set(consts.HeaderAuthorization, "Bearer "+h.cfg.APIKey)
	}
	req.SetBody(body)

	if err := h.client.DoTimeout(ctx, req, resp, h.cfg.Timeout); err != nil {
		return nil, fmt.Errorf("calling %s: %w", h.cfg.Endpoint, err)
	}
	if code := resp.StatusCode(); code != consts.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", code, logger.Truncate(string(resp.Body()), 200))
	}
	return decodeEmotions(resp.Body())
}

// decodeEmotions accepts both the batched [[...]] and flat [...] shapes the
// inference API returns.
func decodeEmotions(body []byte) ([]emotionScore, error) {
	var nested [][]emotionScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return nil, fmt.Errorf("empty classification")
		}
		return nested[0], nil
	}

	var flat []emotionScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("decoding classification: %w", err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("empty classification")
	}
	return flat, nil
}
