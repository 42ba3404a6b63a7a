package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampScoreRange(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{8, 8},
		{0, 0},
		{10, 10},
		{11, 10},
		{-2, 0},
		{7.4, 7},
		{7.5, 8},
		{float64(100), 10},
		{"9", 9},
		{" 6.6 ", 7},
		{"not a number", 0},
		{nil, 0},
		{map[string]any{}, 0},
		{[]any{5}, 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ClampScore(tc.in), "input %v", tc.in)
	}
}

func TestClampScoreIdentityWithinRange(t *testing.T) {
	for v := 0; v <= 10; v++ {
		require.Equal(t, v, ClampScore(v))
		require.Equal(t, v, ClampScore(float64(v)))
	}
}

func TestCoerceRecordDefaultsMissingFields(t *testing.T) {
	record := CoerceRecord(map[string]any{})
	require.Equal(t, EvaluationRecord{}, record)
	require.Equal(t, [5]int{0, 0, 0, 0, 0}, record.SubScores())
	require.False(t, record.OverallPass)
	require.Empty(t, record.Feedback)
}

func TestCoerceRecordMalformedSubScores(t *testing.T) {
	record := CoerceRecord(map[string]any{
		"fluency":    "excellent",
		"grammar":    nil,
		"vocabulary": []any{1, 2},
		"coherence":  map[string]any{"x": 1},
		"relevance":  "7",
	})
	require.Equal(t, 0, record.Fluency)
	require.Equal(t, 0, record.Grammar)
	require.Equal(t, 0, record.Vocabulary)
	require.Equal(t, 0, record.Coherence)
	require.Equal(t, 7, record.Relevance)
}

func TestCoerceRecordClampsOutOfRange(t *testing.T) {
	record := CoerceRecord(map[string]any{
		"fluency": float64(11),
		"grammar": float64(-2),
	})
	require.Equal(t, 10, record.Fluency)
	require.Equal(t, 0, record.Grammar)
}

func TestCoerceRecordFeedbackTrimmed(t *testing.T) {
	record := CoerceRecord(map[string]any{"feedback": "  solid answer \n"})
	require.Equal(t, "solid answer", record.Feedback)
}

func TestCoerceRecordOverallPassTruthiness(t *testing.T) {
	require.True(t, CoerceRecord(map[string]any{"overall_pass": true}).OverallPass)
	require.True(t, CoerceRecord(map[string]any{"overall_pass": float64(1)}).OverallPass)
	require.True(t, CoerceRecord(map[string]any{"overall_pass": "true"}).OverallPass)
	require.False(t, CoerceRecord(map[string]any{"overall_pass": false}).OverallPass)
	require.False(t, CoerceRecord(map[string]any{"overall_pass": "no"}).OverallPass)
	require.False(t, CoerceRecord(map[string]any{}).OverallPass)
}

func TestCoerceRecordOverallPassRejectsArbitraryStrings(t *testing.T) {
	// Only a known affirmative spelling counts as a pass; anything else,
	// including "false" or free-form prose, fails the candidate.
	for _, s := range []string{"Passed", "false", "maybe", " ", "definitely yes"} {
		require.False(t, CoerceRecord(map[string]any{"overall_pass": s}).OverallPass, "input %q", s)
	}
	for _, s := range []string{"true", "YES", "pass", "1"} {
		require.True(t, CoerceRecord(map[string]any{"overall_pass": s}).OverallPass, "input %q", s)
	}
}

func TestCoerceRoundTrip(t *testing.T) {
	original := EvaluationRecord{
		Fluency:     8,
		Grammar:     7,
		Vocabulary:  6,
		Coherence:   9,
		Relevance:   7,
		OverallPass: true,
		Feedback:    "Good job",
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))

	require.Equal(t, original, CoerceRecord(raw))
}

func TestFinalScoreTruncatedMean(t *testing.T) {
	record := EvaluationRecord{Fluency: 8, Grammar: 7, Vocabulary: 6, Coherence: 9, Relevance: 7}
	require.Equal(t, 7, record.FinalScore())

	record = EvaluationRecord{Fluency: 1, Grammar: 1, Vocabulary: 1, Coherence: 1, Relevance: 2}
	require.Equal(t, 1, record.FinalScore())
}

func TestStatusMirrorsOverallPass(t *testing.T) {
	require.Equal(t, "pass", EvaluationRecord{OverallPass: true}.Status())
	require.Equal(t, "fail", EvaluationRecord{}.Status())
}
