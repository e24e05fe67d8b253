package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/soaringjerry/Quizline/internal/realtime"
	"github.com/soaringjerry/Quizline/internal/services"
)

var errUsage = errors.New("usage")

// realtimeConn is the part of PusherClient that watch needs.
type realtimeConn interface {
	realtime.ChannelProvider
	Done() <-chan struct{}
	Close() error
}

type app struct {
	out          io.Writer
	categories   *services.CategoryService
	quizzes      *services.QuizService
	questions    *services.QuestionService
	users        *services.UserService
	leaderboard  *services.LeaderboardService
	dialRealtime func(ctx context.Context) (realtimeConn, error)
}

func newApp(client *services.APIClient, out io.Writer) *app {
	return &app{
		out:         out,
		categories:  services.NewCategoryService(client),
		quizzes:     services.NewQuizService(client),
		questions:   services.NewQuestionService(client),
		users:       services.NewUserService(client),
		leaderboard: services.NewLeaderboardService(client),
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "categories":
		return a.print(a.categories.GetCategories(ctx))
	case "quizzes":
		fs := flag.NewFlagSet("quizzes", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		var f services.QuizFilter
		fs.StringVar(&f.Difficulty, "difficulty", "", "difficulty filter")
		fs.StringVar(&f.CategoryID, "category", "", "category id filter")
		if err := fs.Parse(args); err != nil {
			return errUsage
		}
		return a.print(a.quizzes.GetQuizzes(ctx, f))
	case "featured":
		return a.print(a.quizzes.GetFeaturedQuizzes(ctx))
	case "difficulties":
		return a.print(a.quizzes.GetDifficultyLevels(ctx))
	case "quiz":
		if len(args) != 1 {
			return errUsage
		}
		return a.print(a.quizzes.GetQuizBySlug(ctx, args[0]))
	case "questions":
		if len(args) != 1 {
			return errUsage
		}
		return a.print(a.questions.GetQuizQuestions(ctx, args[0]))
	case "leaderboard":
		fs := flag.NewFlagSet("leaderboard", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		asCSV := fs.Bool("csv", false, "print CSV instead of JSON")
		if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
			return errUsage
		}
		board, err := a.leaderboard.GetLeaderboard(ctx, fs.Arg(0))
		if err != nil || !*asCSV {
			return a.print(board, err)
		}
		b, err := services.ExportLeaderboardCSV(board)
		if err != nil {
			return err
		}
		_, err = a.out.Write(b)
		return err
	case "join":
		if len(args) != 2 {
			return errUsage
		}
		u, err := a.users.CreateUser(ctx, args[1])
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return a.print(a.users.JoinQuiz(ctx, args[0], u.ID))
	case "me":
		if len(args) != 2 {
			return errUsage
		}
		return a.print(a.users.GetQuizUser(ctx, args[0], args[1]))
	case "answer":
		if len(args) != 4 {
			return errUsage
		}
		return a.print(a.questions.SubmitAnswer(ctx, args[0], args[1], jsonID(args[2]), jsonID(args[3])))
	case "watch":
		if len(args) != 1 {
			return errUsage
		}
		return a.watch(ctx, args[0])
	default:
		return errUsage
	}
}

func (a *app) print(v any, err error) error {
	if err != nil {
		if se, ok := services.AsHTTPStatusError(err); ok {
			return fmt.Errorf("backend returned %d: %s", se.Status, string(se.Body))
		}
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// watch prints every leaderboard change on the quiz channel until ctx ends.
func (a *app) watch(ctx context.Context, quizID string) error {
	if a.dialRealtime == nil {
		return errors.New("realtime not configured")
	}
	conn, err := a.dialRealtime(ctx)
	if err != nil {
		return fmt.Errorf("connect realtime: %w", err)
	}
	defer conn.Close()

	rt := realtime.NewService(conn)
	ch, err := rt.SubscribeToQuiz(quizID)
	if err != nil {
		return err
	}
	defer rt.UnsubscribeFromQuiz(quizID)

	updates := make(chan realtime.LeaderboardChangedEvent, 8)
	realtime.OnLeaderboardChanged(ch, func(ev realtime.LeaderboardChangedEvent) {
		select {
		case updates <- ev:
		default:
		}
	})
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-conn.Done():
			return errors.New("realtime connection closed")
		case ev := <-updates:
			if err := a.print(ev.TopUsers, nil); err != nil {
				return err
			}
		}
	}
}

// jsonID sends numeric ids as JSON numbers, as the web client does.
func jsonID(s string) any {
	var n json.Number
	if err := json.Unmarshal([]byte(s), &n); err == nil {
		return n
	}
	return s
}
