package models

// Category groups quizzes by subject.
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Difficulty is the difficulty record embedded in a quiz. Higher Level means harder.
type Difficulty struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	Level int    `json:"level"`
}

// DifficultyLevel is a filter option returned by /quiz-difficulty-levels.
type DifficultyLevel struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// Quiz as listed by the backend. Category and Difficulty are snapshots taken
// when the quiz was serialized; they are not kept in sync with the
// standalone records.
type Quiz struct {
	ID                ID          `json:"id"`
	Title             string      `json:"title"`
	Slug              string      `json:"slug"`
	Description       string      `json:"description,omitempty"`
	Difficulty        *Difficulty `json:"difficulty,omitempty"`
	Category          *Category   `json:"category,omitempty"`
	QuestionsCount    *int        `json:"questions_count,omitempty"`
	ParticipantsCount *int        `json:"participants_count,omitempty"`
	CreatedAt         string      `json:"created_at,omitempty"`
	UpdatedAt         string      `json:"updated_at,omitempty"`
}

// Question belongs to a quiz; Choices keep the backend's order.
type Question struct {
	ID       ID       `json:"id"`
	Question string   `json:"question"`
	QuizID   ID       `json:"quiz_id"`
	Choices  []Choice `json:"choices"`
}

type Choice struct {
	ID         ID     `json:"id"`
	Choice     string `json:"choice"`
	QuestionID ID     `json:"question_id"`
}

type User struct {
	ID        ID     `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// QuizUser is a user's participation in one quiz, with the running score.
type QuizUser struct {
	ID        ID     `json:"id"`
	QuizID    ID     `json:"quiz_id"`
	UserID    ID     `json:"user_id"`
	Score     int    `json:"score"`
	Username  string `json:"username,omitempty"`
	JoinedAt  string `json:"joined_at,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// AnswerResult is the backend's verdict on a submitted answer.
type AnswerResult struct {
	ChoiceID  ID   `json:"choice_id"`
	IsCorrect bool `json:"is_correct"`
	Score     int  `json:"score"`
}
