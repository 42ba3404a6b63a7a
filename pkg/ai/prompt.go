package ai

import "strings"

// buildScoringPrompt assembles the single prompt sent to the scoring model.
// The instruction pins the reply to a JSON object with exactly the six fields
// the coercer expects; the interview context is embedded verbatim.
func buildScoringPrompt(input EvaluationInput) string {
	builder := strings.Builder{}
	builder.WriteString("You are an English interview evaluator.\n\n")
	builder.WriteString("Return ONLY a JSON object with keys:\n")
	builder.WriteString("{\n")
	builder.WriteString("  \"fluency\": 1-10,\n")
	builder.WriteString("  \"grammar\": 1-10,\n")
	builder.WriteString("  \"vocabulary\": 1-10,\n")
	builder.WriteString("  \"coherence\": 1-10,\n")
	builder.WriteString("  \"relevance\": 1-10,\n")
	builder.WriteString("  \"overall_pass\": true/false,\n")
	builder.WriteString("  \"feedback\": \"short constructive feedback\"\n")
	builder.WriteString("}\n\n")
	builder.WriteString("Definitions:\n")
	builder.WriteString("- fluency: flow, pacing, hesitations\n")
	builder.WriteString("- grammar: correctness of structures, tenses\n")
	builder.WriteString("- vocabulary: range/precision for the topic\n")
	builder.WriteString("- coherence: logical organization, clarity\n")
	builder.WriteString("- relevance: alignment with the asked question and expected answer\n")
	builder.WriteString("\nQuestion:\n")
	builder.WriteString(input.Question)
	builder.WriteString("\n\nCandidate Response:\n")
	builder.WriteString(input.Transcript)
	builder.WriteString("\n\nExpected Answer (guideline):\n")
	builder.WriteString(input.ExpectedAnswer)
	builder.WriteString("\n\nNon-negotiables (if any):\n")
	builder.WriteString(input.NonNegotiables)
	return builder.String()
}
