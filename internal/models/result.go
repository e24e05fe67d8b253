package models

import "fmt"

// AnswerMark records what the user picked for one question.
type AnswerMark struct {
	ChoiceID  ID   `json:"choiceId"`
	IsCorrect bool `json:"isCorrect"`
}

// QuestionResult is the client-side scratchpad of in-progress answers, keyed
// by question id. It is never sent to the backend.
type QuestionResult map[string]AnswerMark

// Record stores the answer for questionID, replacing any earlier one.
func (r QuestionResult) Record(questionID, choiceID any, correct bool) {
	r[fmt.Sprint(questionID)] = AnswerMark{ChoiceID: NewID(choiceID), IsCorrect: correct}
}

func (r QuestionResult) Answered(questionID any) bool {
	_, ok := r[fmt.Sprint(questionID)]
	return ok
}

func (r QuestionResult) CorrectCount() int {
	n := 0
	for _, m := range r {
		if m.IsCorrect {
			n++
		}
	}
	return n
}
