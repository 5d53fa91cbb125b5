package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/config"
	"github.com/GriffinCanCode/venture-blueprint/internal/providers/generation"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/id"
)

type showOptions struct {
	model   string
	baseURL string
	timeout time.Duration
}

func newShowCmd(opts *options) *cobra.Command {
	def := config.Default().Generation
	show := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <idea-id>...",
		Short: "Generate and render the blueprint of one or more ideas",
		Long: "Generate the blueprint of each idea with the text-generation service and render it with its dashboard.\n" +
			"The API key is read from API_KEY; the other generation settings from the same environment as the server.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, show, args)
		},
	}

	cmd.Flags().StringVar(&show.model, "model", "", "model name (default from GENERATION_MODEL, "+def.Model+")")
	cmd.Flags().StringVar(&show.baseURL, "base-url", "", "generation service base URL")
	cmd.Flags().DurationVar(&show.timeout, "timeout", 0, "per-idea generation timeout")
	return cmd
}

func runShow(cmd *cobra.Command, opts *options, show *showOptions, ideaIDs []string) error {
	logger := opts.logger()
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gen := cfg.Generation
	if show.model != "" {
		gen.Model = show.model
	}
	if show.baseURL != "" {
		gen.BaseURL = show.baseURL
	}
	if show.timeout > 0 {
		gen.Timeout = show.timeout
	}

	cat, err := opts.loadCatalog(cmd.Context(), logger.Logger)
	if err != nil {
		return err
	}

	gemini := generation.NewGeminiClient(generation.Config{
		APIKey:            gen.APIKey,
		Model:             gen.Model,
		BaseURL:           gen.BaseURL,
		Timeout:           gen.Timeout,
		Retries:           gen.Retries,
		RequestsPerSecond: gen.RequestsPerSecond,
	}, logger.Logger)

	// Repeated ids in one invocation are generated once
	cached := generation.NewCachedGenerator(gemini, generation.NewMemoryStore(), time.Hour, gemini.Model(), logger.Logger, nil)

	views := view.NewManager(cat, cached, logger.Logger).
		WithTimeout(gen.Timeout).
		WithModel(gemini.Model())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = views.Shutdown(ctx)
	}()

	r := opts.renderer()
	out := cmd.OutOrStdout()
	failed := 0
	for _, ideaID := range ideaIDs {
		opened, err := views.Open(ideaID)
		if err != nil {
			return err
		}

		v, err := awaitSettled(cmd.Context(), views, opened.ID)
		if err != nil {
			return err
		}
		if v.State == view.StateFailed {
			failed++
			logger.Warn("Blueprint generation failed", zap.String("idea_id", ideaID), zap.String("error", v.Error))
		}

		fmt.Fprintln(out, r.View(v, v.Dashboard()))
		_ = views.Close(v.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d blueprints failed", failed, len(ideaIDs))
	}
	return nil
}

// awaitSettled blocks until a view leaves the loading state.
func awaitSettled(ctx context.Context, views *view.Manager, viewID id.ViewID) (view.View, error) {
	events, unsubscribe, err := views.Subscribe(viewID)
	if err != nil {
		return view.View{}, err
	}
	defer unsubscribe()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return view.View{}, fmt.Errorf("view %s closed while loading", viewID)
			}
			if ev.State != view.StateLoading {
				return views.Get(viewID)
			}
		case <-ctx.Done():
			return view.View{}, ctx.Err()
		}
	}
}
