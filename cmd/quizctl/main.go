// Command quizctl calls the quiz backend from a terminal: list quizzes, join
// one, answer questions and watch its leaderboard live.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/soaringjerry/Quizline/internal/config"
	"github.com/soaringjerry/Quizline/internal/realtime"
)

const usage = `usage: quizctl <command> [args]

commands:
  categories
  quizzes [-difficulty d] [-category id]
  featured
  difficulties
  quiz <slug|id>
  questions <quizID>
  leaderboard [-csv] <quizID>
  join <quizID> <username>
  me <quizID> <userID>
  answer <quizID> <questionID> <userID> <choiceID>
  watch <quizID>
`

func main() {
	log.SetFlags(0)
	log.SetPrefix("quizctl: ")
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg.PublicClient(), os.Stdout)
	a.dialRealtime = func(ctx context.Context) (realtimeConn, error) {
		p := realtime.NewPusherClient(realtime.PusherConfig{Key: cfg.PusherKey, Cluster: cfg.PusherCluster})
		if err := p.Connect(ctx); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if err == errUsage {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
