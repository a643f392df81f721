// Package orchestrator drives one card from raw text to a pipeline
// result: parse, assemble the crew for the detected technology, execute,
// persist the artifacts.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"cardsmith/internal/artifact"
	"cardsmith/internal/card"
	"cardsmith/internal/config"
	"cardsmith/internal/human"
	"cardsmith/internal/llm"
	"cardsmith/internal/logging"
	"cardsmith/internal/parser"
	"cardsmith/internal/pipeline"
	"cardsmith/internal/tools"
	"cardsmith/internal/transcript"
)

// State tracks a run through the processing state machine. Completed and
// Failed are terminal; there is no automatic retry.
type State string

const (
	StateReceived          State = "received"
	StateParsed            State = "parsed"
	StatePipelineAssembled State = "pipeline-assembled"
	StateExecuting         State = "executing"
	StateCompleted         State = "completed"
	StateFailed            State = "failed"
)

// Report is the outcome of one Run call.
type Report struct {
	State     State
	Card      card.Card
	Result    pipeline.Result
	OutputDir string
	Err       error
}

// ErrorKind names the failure class for user-facing reporting.
func (r Report) ErrorKind() string {
	var (
		parseErr  *parser.ParseError
		humanErr  *human.Error
		pipeErr   *pipeline.Error
		configErr *config.ValidationError
	)
	switch {
	case r.Err == nil:
		return ""
	case errors.As(r.Err, &parseErr):
		return "parse error"
	case human.IsTimeout(r.Err):
		return "human response timeout"
	case errors.As(r.Err, &humanErr):
		return "human response error"
	case errors.As(r.Err, &pipeErr):
		return "pipeline error"
	case errors.As(r.Err, &configErr):
		return "configuration error"
	default:
		return "error"
	}
}

// Orchestrator wires the parser, pipeline registry, gateway, and stores
// together for the lifetime of the process. Each Run call owns exactly
// one Card and one Pipeline; the gateway is the only shared state.
type Orchestrator struct {
	settings config.Settings
	parser   *parser.CardParser
	registry *pipeline.Registry
	gateway  *human.Gateway
	client   llm.Client
	analyzer *tools.Analyzer
	store    *artifact.Store
	log      *logging.Logger
	journal  *transcript.Transcript
}

// Option customizes orchestrator construction, mainly for tests.
type Option func(*Orchestrator)

// WithLLM injects the completion client used by crew stages.
func WithLLM(client llm.Client) Option {
	return func(o *Orchestrator) { o.client = client }
}

// WithRegistry swaps the pipeline registry.
func WithRegistry(registry *pipeline.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithStore overrides where run artifacts are written. A nil store
// disables persistence.
func WithStore(store *artifact.Store) Option {
	return func(o *Orchestrator) { o.store = store }
}

// WithAnalyzer overrides the codebase analyzer. Nil disables analysis.
func WithAnalyzer(analyzer *tools.Analyzer) Option {
	return func(o *Orchestrator) { o.analyzer = analyzer }
}

// WithLogger attaches the run log.
func WithLogger(log *logging.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithTranscript attaches the session transcript.
func WithTranscript(journal *transcript.Transcript) Option {
	return func(o *Orchestrator) { o.journal = journal }
}

// New builds an orchestrator from validated settings. The gateway is
// constructed by the caller so that its single-question lock can be
// shared with anything else that needs to reach the human.
func New(settings config.Settings, gateway *human.Gateway, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		settings: settings,
		parser:   parser.New(),
		registry: pipeline.DefaultRegistry(),
		gateway:  gateway,
		analyzer: tools.NewAnalyzer(),
		store:    artifact.NewStore(settings.OutputDir),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.client == nil {
		client, err := llm.New(llm.Config{
			APIKey:      settings.OpenAIKey,
			Model:       settings.Model,
			Temperature: settings.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("orchestrator: build llm client: %w", err)
		}
		o.client = client
	}
	return o, nil
}

// Run executes the full state machine for one raw card. Any failure at
// any stage maps to StateFailed carrying the originating error; nothing
// is swallowed and nothing is retried.
func (o *Orchestrator) Run(ctx context.Context, raw string, declared card.Format) Report {
	report := Report{State: StateReceived}
	o.log.Printf("run: received card (%d bytes)", len(raw))

	if declared == card.FormatAuto {
		declared = o.settings.DeclaredFormat
	}

	c, err := o.parser.Parse(raw, declared)
	if err != nil {
		o.log.Printf("run: parse failed: %v", err)
		return report.fail(err)
	}
	report.Card = c
	report.State = StateParsed
	o.log.Printf("run: parsed %q (format %s, technology %s)", c.Title, c.SourceFormat, c.Technology)
	o.journal.Milestone("parsed %q as %s, technology %s", c.Title, c.SourceFormat, c.Technology)

	pipe := o.registry.Build(c.Technology)
	report.State = StatePipelineAssembled
	o.log.Printf("run: assembled %s pipeline", pipe.Technology())

	toolset := pipeline.Toolset{
		LLM:        o.client,
		Gateway:    o.gateway,
		ProjectDir: o.settings.ProjectDir,
	}
	if o.analyzer != nil {
		analysis, err := o.analyzer.Analyze(o.settings.ProjectDir)
		if err != nil {
			// Analysis is advisory; the crew can work from the card alone.
			o.log.Printf("run: codebase analysis failed: %v", err)
		} else {
			toolset.Analysis = analysis
		}
	}

	o.gateway.Notify(fmt.Sprintf("New development session started for %q", c.Title))

	report.State = StateExecuting
	result, err := pipe.Execute(ctx, c, toolset)
	report.Result = result
	if err != nil {
		o.log.Printf("run: pipeline failed: %v", err)
		o.gateway.Notify(fmt.Sprintf("Run failed for %q: %v", c.Title, err))
		return report.fail(err)
	}

	if o.store != nil {
		outputDir, err := o.store.Save(c, result)
		if err != nil {
			o.log.Printf("run: persist result failed: %v", err)
			return report.fail(err)
		}
		report.OutputDir = outputDir
	}

	o.gateway.Notify(fmt.Sprintf("Implementation completed for %q", c.Title))
	o.journal.Milestone("completed %q", c.Title)
	report.State = StateCompleted
	o.log.Printf("run: completed %q", c.Title)
	return report
}

func (r Report) fail(err error) Report {
	r.State = StateFailed
	r.Err = err
	return r
}
