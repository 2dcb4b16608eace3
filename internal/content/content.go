// Package content generates presentation copy (descriptions, tag lists) for
// ingested videos by driving the transcript-search agent with fixed
// instructions.
package content

import (
	"context"
	"fmt"
	"strings"
)

// Agent runs a single instruction through the tool-calling loop.
type Agent interface {
	Run(ctx context.Context, input string) (string, error)
}

// Generator produces descriptions and tags for a video.
type Generator struct {
	agent Agent
}

// NewGenerator creates a content Generator.
func NewGenerator(agent Agent) *Generator {
	return &Generator{agent: agent}
}

// Describe returns a short viewer-facing description of the video,
// grounded in its transcript chunks.
func (g *Generator) Describe(ctx context.Context, videoID string) (string, error) {
	prompt := fmt.Sprintf(
		"Search the transcripts for video %q and write a short, engaging "+
			"description of what the video covers, in two or three sentences. "+
			"If no transcript is found, say so plainly.", videoID)
	out, err := g.agent.Run(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("describing video %s: %w", videoID, err)
	}
	return strings.TrimSpace(out), nil
}

// Tags returns a comma-separated tag list for the video.
func (g *Generator) Tags(ctx context.Context, videoID string) (string, error) {
	prompt := fmt.Sprintf(
		"Search the transcripts for video %q and produce 20 to 40 topical "+
			"tags for it, each 1 to 3 words long. Reply with the tags only, "+
			"separated by commas, no numbering and no extra commentary.", videoID)
	out, err := g.agent.Run(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("tagging video %s: %w", videoID, err)
	}
	return CleanTags(out), nil
}

// CleanTags normalizes model output into a canonical comma-separated list:
// tags may arrive split across newlines or commas, with stray whitespace or
// empty entries.
func CleanTags(raw string) string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tags = append(tags, t)
		}
	}
	return strings.Join(tags, ",")
}
