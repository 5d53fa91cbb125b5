package generation

import (
	"context"
	"fmt"
)

// Generator turns an idea title into markdown strategy text.
type Generator interface {
	Generate(ctx context.Context, title string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, title string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, title string) (string, error) {
	return f(ctx, title)
}

// BuildPrompt returns the instruction sent to the model for an idea.
func BuildPrompt(title string) string {
	return fmt.Sprintf(`Analyze the business idea: %s. Create a comprehensive 2026-ready business blueprint. Include these exact sections with emoji headers:

    📊 Executive Summary
    🚀 Marketing & Branding (Viral angles)
    💰 Sales Strategy
    🛠 Tech Stack & Tools (suggest specific modern software/AI tools)
    📅 Step-by-Step Launch Guide

    Base all advice on projected 2025-2026 technology trends. Format as clean Markdown. Use bolding for emphasis. Keep paragraphs concise.`, title)
}
