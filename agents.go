package main

import (
	"context"
	"fmt"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

const coachAgentName = "career_coach"

func GetCoachAgent(ctx context.Context, apiKey, modelName string) (agent.Agent, error) {
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	coach, err := llmagent.New(llmagent.Config{
		Name:        coachAgentName,
		Model:       model,
		Description: "Career advice for job seekers",
		Instruction: coachInstruction(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return coach, nil
}
