package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeBankFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "section1_questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSeedFromFileValidBank(t *testing.T) {
	repo := &stubQuestionRepo{}
	svc, err := NewQuestionService(repo, zerolog.Nop())
	require.NoError(t, err)

	path := writeBankFile(t, `[
		{
			"id": 1,
			"question": "Tell me about yourself",
			"expected_answer": "background summary",
			"non_negotiables": "must mention experience",
			"what_we_are_testing": ["fluency", "coherence"]
		},
		{
			"id": 2,
			"question": "Describe a conflict you resolved",
			"expected_answer": "STAR-style story"
		}
	]`)

	require.NoError(t, svc.SeedFromFile(context.Background(), path))
	require.Len(t, repo.questions, 2)
	require.Equal(t, "Tell me about yourself", repo.questions[0].Prompt)
	require.Equal(t, "fluency, coherence", repo.questions[0].SkillsTested)
	require.Equal(t, 1, repo.questions[0].Position)
	require.Empty(t, repo.questions[1].NonNegotiables)
}

func TestSeedFromFileRejectsInvalidBank(t *testing.T) {
	repo := &stubQuestionRepo{}
	svc, err := NewQuestionService(repo, zerolog.Nop())
	require.NoError(t, err)

	for name, content := range map[string]string{
		"empty array":     `[]`,
		"missing answer":  `[{"id": 1, "question": "Q1"}]`,
		"not an array":    `{"id": 1}`,
		"malformed json":  `[{`,
		"blank question":  `[{"id": 1, "question": "", "expected_answer": "A"}]`,
		"zero identifier": `[{"id": 0, "question": "Q1", "expected_answer": "A"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			require.Error(t, svc.SeedFromFile(context.Background(), writeBankFile(t, content)))
			require.Empty(t, repo.questions)
		})
	}
}

func TestSeedFromFileMissingFile(t *testing.T) {
	repo := &stubQuestionRepo{}
	svc, err := NewQuestionService(repo, zerolog.Nop())
	require.NoError(t, err)

	require.Error(t, svc.SeedFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.json")))
}

func TestListForCandidateHidesExpectedAnswers(t *testing.T) {
	repo := &stubQuestionRepo{}
	svc, err := NewQuestionService(repo, zerolog.Nop())
	require.NoError(t, err)

	path := writeBankFile(t, `[
		{"id": 1, "question": "Q1", "expected_answer": "secret", "what_we_are_testing": ["grammar"]}
	]`)
	require.NoError(t, svc.SeedFromFile(context.Background(), path))

	questions, err := svc.ListForCandidate(context.Background())
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, "Q1", questions[0].Prompt)
	require.Equal(t, "grammar", questions[0].SkillsTested)
	require.Equal(t, 1, questions[0].Position)
}
