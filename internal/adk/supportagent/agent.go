package supportagent

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log"
	"time"

	"github.com/amityadav/helpcenter/internal/adk/tools"
	"github.com/amityadav/helpcenter/prompts"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	appName   = "HelpCenter"
	agentName = "help_center_agent"
)

// Dependencies holds the services needed by the agent
type Dependencies struct {
	Tools        *tools.Registry
	Model        model.LLM // optional; built from GoogleAPIKey/ModelName when nil
	GoogleAPIKey string
	ModelName    string
}

// New creates the Help Center support agent
func New(ctx context.Context, deps Dependencies) (agent.Agent, error) {
	if deps.Tools == nil || deps.Tools.Count() == 0 {
		return nil, errors.New("no tools registered for support agent")
	}

	llm := deps.Model
	if llm == nil {
		if deps.GoogleAPIKey == "" {
			return nil, errors.New("GOOGLE_API_KEY not configured")
		}
		var err error
		llm, err = gemini.NewModel(ctx, deps.ModelName, &genai.ClientConfig{
			APIKey:  deps.GoogleAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
	}

	log.Printf("[SupportAgent] Initializing with model: %s (%d tools)", llm.Name(), deps.Tools.Count())

	return llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       llm,
		Description: "Answers support questions from Zendesk Help Center articles",
		Instruction: prompts.AgentHelpCenter,
		Tools:       deps.Tools.GetAll(),
	})
}

// RunResult contains the outcome of an agent run
type RunResult struct {
	Answer    string
	SessionID string
}

// Run asks the agent one question in a fresh in-memory session
func Run(ctx context.Context, deps Dependencies, userID, question string) (*RunResult, error) {
	myAgent, err := New(ctx, deps)
	if err != nil {
		return nil, err
	}

	sessionSvc := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          myAgent,
		SessionService: sessionSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	sessionID := fmt.Sprintf("%s-%s", userID, time.Now().Format("20060102-150405"))
	_, err = sessionSvc.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	inputMsg := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(question),
		},
	}

	log.Printf("[SupportAgent] Starting run for user %s (session %s)", userID, sessionID)

	next, stop := iter.Pull2(r.Run(ctx, userID, sessionID, inputMsg, agent.RunConfig{}))
	defer stop()

	answer, err := lastText(next)
	if err != nil {
		return nil, err
	}

	log.Printf("[SupportAgent] Run completed for user %s", userID)
	return &RunResult{Answer: answer, SessionID: sessionID}, nil
}

// lastText drains the event stream and keeps the last text the model produced
func lastText(next func() (*session.Event, error, bool)) (string, error) {
	var answer string
	for {
		event, err, ok := next()
		if !ok {
			break
		}
		if err != nil {
			log.Printf("[SupportAgent] Error during run: %v", err)
			return "", err
		}
		if event.Content == nil {
			continue
		}
		for _, p := range event.Content.Parts {
			if p.Text != "" {
				answer = p.Text
			}
		}
	}
	return answer, nil
}
