package profile

import "time"

// TopicMastery is the running mastery estimate for one topic.
type TopicMastery struct {
	Topic     string    `json:"topic"`
	Score     float64   `json:"score"`
	Attempts  int       `json:"attempts"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizAttempt is one quiz history entry.
type QuizAttempt struct {
	Topic        string    `json:"topic"`
	NumQuestions int       `json:"num_questions"`
	NumCorrect   int       `json:"num_correct"`
	Timestamp    time.Time `json:"timestamp"`
}

// Accuracy returns the fraction of questions answered correctly.
func (a QuizAttempt) Accuracy() float64 {
	if a.NumQuestions == 0 {
		return 0
	}
	return float64(a.NumCorrect) / float64(a.NumQuestions)
}

// LearnerProfile is an immutable snapshot of one learner's persisted state.
// Mutations go through Service operations, never through the snapshot.
type LearnerProfile struct {
	UserID      string                  `json:"user_id"`
	Topics      map[string]TopicMastery `json:"topics"`
	QuizHistory []QuizAttempt           `json:"quiz_history"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// Summary condenses a profile for progress reporting.
type Summary struct {
	UserID        string         `json:"user_id"`
	TopicsStudied int            `json:"topics_studied"`
	TotalQuizzes  int            `json:"total_quizzes"`
	Topics        []TopicMastery `json:"topics"`
	Strongest     string         `json:"strongest_topic,omitempty"`
	Weakest       string         `json:"weakest_topic,omitempty"`
}
