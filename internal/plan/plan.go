// Package plan builds and advances per-learner module ladders. Ladders
// are template-driven per level so plans work without an LLM provider.
package plan

import (
	"fmt"
	"strings"

	entschema "github.com/mentora/mentora/ent/schema"
)

// Level is a learner's self-assessed starting point for a skill.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelExpert       Level = "expert"
)

// Levels lists all valid levels in ascending order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelExpert}
}

// ParseLevel validates and normalizes a level string.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelBeginner:
		return LevelBeginner, nil
	case LevelIntermediate:
		return LevelIntermediate, nil
	case LevelExpert:
		return LevelExpert, nil
	default:
		return "", fmt.Errorf("unknown level %q (want beginner, intermediate, or expert)", s)
	}
}

// Module statuses. Exactly one module is active unless every module is
// completed; modules unlock strictly in order.
const (
	StatusLocked    = "locked"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// CompletionThreshold is the percent score that completes a module.
const CompletionThreshold = 70.0

// moduleTemplate shapes one ladder step. Name is a fmt string taking
// the skill.
type moduleTemplate struct {
	name        string
	description string
}

var ladderTemplates = map[Level][]moduleTemplate{
	LevelBeginner: {
		{"Foundations of %s", "Build the vocabulary and base skills the later modules lean on."},
		{"Core Concepts in %s", "Work through the ideas and techniques used day to day."},
		{"Practical Applications of %s", "Apply what you learned in small end-to-end exercises."},
	},
	LevelIntermediate: {
		{"Advanced Concepts in %s", "Go past the basics into the harder corners of the skill."},
		{"Real-World %s Projects", "Practice on problems shaped like real work."},
		{"Mastering %s", "Close the remaining gaps and sharpen your judgment."},
	},
	LevelExpert: {
		{"Expert-Level %s", "Stress-test your depth on advanced material."},
		{"Cutting-Edge %s Research", "Study the current frontier and open problems."},
		{"%s Innovation & Leadership", "Turn expertise into original work and mentoring."},
	},
}

// BuildLadder renders the module ladder for a skill at a level. The
// first module starts active, the rest locked.
func BuildLadder(skill string, level Level) []entschema.PlanModule {
	templates := ladderTemplates[level]
	modules := make([]entschema.PlanModule, 0, len(templates))
	for i, t := range templates {
		name := fmt.Sprintf(t.name, skill)
		status := StatusLocked
		if i == 0 {
			status = StatusActive
		}
		modules = append(modules, entschema.PlanModule{
			Name:        name,
			Topic:       strings.ToLower(name),
			Description: t.description,
			Status:      status,
		})
	}
	return modules
}

// ActiveIndex returns the index of the active module, or -1 when every
// module is completed.
func ActiveIndex(modules []entschema.PlanModule) int {
	for i, m := range modules {
		if m.Status == StatusActive {
			return i
		}
	}
	return -1
}

// Progress counts completed modules.
func Progress(modules []entschema.PlanModule) (completed, total int) {
	for _, m := range modules {
		if m.Status == StatusCompleted {
			completed++
		}
	}
	return completed, len(modules)
}
