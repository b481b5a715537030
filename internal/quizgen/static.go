package quizgen

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

type bankQuestion struct {
	Prompt      string   `yaml:"prompt"`
	Options     []string `yaml:"options"`
	Answer      int      `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

type bankTopic struct {
	Topic     string         `yaml:"topic"`
	Aliases   []string       `yaml:"aliases"`
	Questions []bankQuestion `yaml:"questions"`
}

type questionBank struct {
	Topics []bankTopic `yaml:"topics"`
}

// StaticGenerator implements Generator from an embedded question bank.
// It is deterministic and needs no API key, backing the offline path
// and tests. Topics outside the bank are an error.
type StaticGenerator struct {
	topics []bankTopic
}

// NewStatic creates a StaticGenerator from the embedded bank.
func NewStatic() (*StaticGenerator, error) {
	var bank questionBank
	if err := yaml.Unmarshal(bankYAML, &bank); err != nil {
		return nil, fmt.Errorf("parse embedded question bank: %w", err)
	}
	return &StaticGenerator{topics: bank.Topics}, nil
}

// Generate returns the first N bank questions for the topic.
// The count is clamped to [MinQuestions, MaxQuestions] and capped at
// the bank size for the topic.
func (g *StaticGenerator) Generate(_ context.Context, input GenerateInput) (*Quiz, error) {
	t := g.lookup(input.Topic)
	if t == nil {
		return nil, fmt.Errorf("no offline question bank for topic %q (available: %s)",
			input.Topic, strings.Join(g.Topics(), ", "))
	}

	n := clampCount(input.NumQuestions)
	if n > len(t.Questions) {
		n = len(t.Questions)
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = DifficultyBeginner
	}

	quiz := &Quiz{
		Topic:      t.Topic,
		Difficulty: difficulty,
		Questions:  make([]Question, 0, n),
	}
	for _, q := range t.Questions[:n] {
		quiz.Questions = append(quiz.Questions, Question{
			Prompt:      q.Prompt,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}
	return quiz, nil
}

// Topics returns the bank topic names, sorted.
func (g *StaticGenerator) Topics() []string {
	names := make([]string, 0, len(g.topics))
	for _, t := range g.topics {
		names = append(names, t.Topic)
	}
	sort.Strings(names)
	return names
}

func (g *StaticGenerator) lookup(topic string) *bankTopic {
	key := normalizeTopic(topic)
	for i := range g.topics {
		t := &g.topics[i]
		if normalizeTopic(t.Topic) == key {
			return t
		}
		for _, a := range t.Aliases {
			if normalizeTopic(a) == key {
				return t
			}
		}
	}
	return nil
}

func normalizeTopic(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
