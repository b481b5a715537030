package quizgen

// MinQuestions and MaxQuestions bound the number of questions in a quiz.
// Requests outside the range are clamped, not rejected.
const (
	MinQuestions = 3
	MaxQuestions = 10
)

// Difficulty labels the target difficulty of a quiz.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyExpert       Difficulty = "expert"
)

// DifficultyForScore maps a mastery score in [0, 1] to a quiz difficulty.
// Low mastery gets beginner questions, high mastery gets expert ones.
func DifficultyForScore(score float64) Difficulty {
	switch {
	case score < 0.4:
		return DifficultyBeginner
	case score < 0.75:
		return DifficultyIntermediate
	default:
		return DifficultyExpert
	}
}

// Question is a single multiple-choice question.
type Question struct {
	// Prompt is the question text displayed to the learner.
	// Plain ASCII text, no markdown or LaTeX.
	Prompt string `json:"prompt"`

	// Options holds exactly 4 answer options.
	Options []string `json:"options"`

	// Answer is the index of the correct option in [0, 3].
	Answer int `json:"answer"`

	// Explanation is a brief worked justification shown after answering.
	// Always present.
	Explanation string `json:"explanation"`
}

// Quiz is a validated set of questions on one topic.
type Quiz struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Questions  []Question `json:"questions"`
}

// GenerateInput holds all context needed to generate a quiz.
type GenerateInput struct {
	// Topic is the subject of the quiz, e.g. "fractions" or "go basics".
	Topic string

	// Difficulty is the target difficulty level.
	Difficulty Difficulty

	// NumQuestions is the requested question count. Values outside
	// [MinQuestions, MaxQuestions] are clamped by the generator.
	NumQuestions int

	// PriorQuestions contains prompts of questions the learner has already
	// seen on this topic. Used for deduplication in the prompt.
	PriorQuestions []string
}
