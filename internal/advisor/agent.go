package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

var errEmptyResponse = errors.New("empty agent response")

// Agent answers one prompt on behalf of a user.
type Agent interface {
	Ask(ctx context.Context, userID, prompt string) (string, error)
}

// RunnerAgent drives an ADK runner. Each Ask gets its own in-memory session
// that is deleted afterwards, so conversations never leak between requests.
type RunnerAgent struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
}

func NewRunnerAgent(a agent.Agent, sessions session.Service) (*RunnerAgent, error) {
	r, err := runner.New(runner.Config{
		AppName:        a.Name(),
		Agent:          a,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &RunnerAgent{runner: r, sessions: sessions, appName: a.Name()}, nil
}

func (a *RunnerAgent) Ask(ctx context.Context, userID, prompt string) (answer string, err error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.appName,
		UserID:    userID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	sess := created.Session
	defer func() {
		derr := a.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   sess.AppName(),
			UserID:    sess.UserID(),
			SessionID: sess.ID(),
		})
		if derr != nil && err == nil {
			err = fmt.Errorf("failed to delete agent session: %w", derr)
		}
	}()

	stream := a.runner.Run(ctx, sess.UserID(), sess.ID(), &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", err
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", errEmptyResponse
	}
	return output, nil
}
