// Package realtime subscribes to per-quiz pub/sub channels.
//
// The Service is a thin naming layer over a ChannelProvider; PusherClient is
// the production provider. Tests substitute their own provider.
package realtime

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/soaringjerry/Quizline/internal/models"
)

// EventLeaderboardChanged is broadcast on quiz.<id> whenever scores move.
const EventLeaderboardChanged = "leaderboard.changed"

// Channel is a subscribed topic. Handlers receive the event payload as JSON.
type Channel interface {
	Name() string
	Bind(event string, fn func(data []byte))
	Unbind(event string)
}

type ChannelProvider interface {
	Subscribe(name string) (Channel, error)
	Unsubscribe(name string)
}

type LeaderboardChangedEvent struct {
	TopUsers []models.QuizUser `json:"topUsers"`
}

// QuizChannelName returns "quiz.<id>"; 42 and "42" give the same name.
func QuizChannelName(quizID any) string {
	return fmt.Sprintf("quiz.%v", quizID)
}

type Service struct {
	provider ChannelProvider
}

func NewService(provider ChannelProvider) *Service {
	return &Service{provider: provider}
}

// SubscribeToQuiz returns the quiz channel for the caller to bind events on.
// The subscription lives until UnsubscribeFromQuiz is called.
func (s *Service) SubscribeToQuiz(quizID any) (Channel, error) {
	ch, err := s.provider.Subscribe(QuizChannelName(quizID))
	if err != nil {
		log.Printf("error subscribing to quiz %v: %v", quizID, err)
		return nil, err
	}
	return ch, nil
}

func (s *Service) UnsubscribeFromQuiz(quizID any) {
	s.provider.Unsubscribe(QuizChannelName(quizID))
}

// OnLeaderboardChanged decodes leaderboard events on ch and hands them to fn.
// Payloads that do not decode are logged and dropped.
func OnLeaderboardChanged(ch Channel, fn func(LeaderboardChangedEvent)) {
	ch.Bind(EventLeaderboardChanged, func(data []byte) {
		var ev LeaderboardChangedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Printf("realtime: bad %s payload on %s: %v", EventLeaderboardChanged, ch.Name(), err)
			return
		}
		fn(ev)
	})
}
