package remote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/documinds/internal/core/domain"
	"github.com/kirillkom/documinds/internal/infrastructure/resilience"
)

const (
	classifyPath = "/classify"
	feedbackPath = "/feedback"
)

// Recorder observes remote calls; metrics.ClientMetrics satisfies it.
type Recorder interface {
	StartRequest()
	FinishRequest(operation string, duration time.Duration, err error)
}

type Options struct {
	// Timeout bounds each request; zero waits indefinitely.
	Timeout    time.Duration
	Executor   *resilience.Executor
	Recorder   Recorder
	Logger     *slog.Logger
	HTTPClient *http.Client
}

// Client talks to the document classification service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
	recorder   Recorder
	logger     *slog.Logger
}

func New(baseURL string, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		executor:   opts.Executor,
		recorder:   opts.Recorder,
		logger:     logger,
	}
}

func (c *Client) Classify(ctx context.Context, req domain.ClassifyRequest) (string, error) {
	var resp domain.ClassifyResponse
	if err := c.call(ctx, "classify", classifyPath, req, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.PredictedCategory) == "" {
		return "", domain.WrapError(domain.ErrProtocol, "classify", errors.New("response has no predicted_category"))
	}
	return resp.PredictedCategory, nil
}

// SubmitFeedback succeeds once the service has answered, whatever the status
// or body. Only transport failures are reported.
func (c *Client) SubmitFeedback(ctx context.Context, req domain.FeedbackRequest) error {
	return c.call(ctx, "feedback", feedbackPath, req, nil)
}

func (c *Client) call(ctx context.Context, operation, path string, payload, out any) error {
	start := time.Now()
	if c.recorder != nil {
		c.recorder.StartRequest()
	}

	do := func(callCtx context.Context) error {
		return c.postJSON(callCtx, operation, path, payload, out)
	}
	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, operation, do, classifyRemoteError)
	} else {
		err = do(ctx)
	}
	err = ensureKind(operation, err)

	if c.recorder != nil {
		c.recorder.FinishRequest(operation, time.Since(start), err)
	}
	return err
}
