package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/staffhub/staffhub/pkg/aigateway"
)

// QuestionCount is the fixed number of questions generated per session.
const QuestionCount = 5

// ErrEmptyBatch rejects an evaluation request carrying no responses.
var ErrEmptyBatch = errors.New("response batch is empty")

// Question is one generated interview question.
type Question struct {
	Question       string   `json:"question"`
	Category       string   `json:"category"`
	ExpectedPoints []string `json:"expected_points"`
}

// ResponseItem pairs a generated question with the candidate's answer.
type ResponseItem struct {
	QuestionID     string   `json:"question_id"`
	Question       string   `json:"question"`
	Category       string   `json:"category"`
	ExpectedPoints []string `json:"expected_points"`
	Response       string   `json:"response"`
}

// Evaluation is the judged result for a single response.
type Evaluation struct {
	QuestionID string `json:"question_id"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
}

// BatchResult is the all-or-nothing outcome of evaluating a response batch:
// either every member was scored or the batch failed as a whole.
type BatchResult struct {
	Evaluations    []Evaluation `json:"evaluations"`
	OverallScore   int          `json:"overall_score"`
	Recommendation string       `json:"recommendation"`
}

// Engine orchestrates the interview workflow against the model gateway.
type Engine struct {
	client *aigateway.Client
	logger *slog.Logger
}

func NewEngine(client *aigateway.Client, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{client: client, logger: logger}
}

// GenerateQuestions asks the gateway for exactly QuestionCount questions for
// the given position and department. The structured output is validated
// against the questions schema before it is decoded; sentinel gateway errors
// (missing key, 429, 402) pass through unwrapped for the handler to map.
func (e *Engine) GenerateQuestions(ctx context.Context, position, department string) ([]Question, error) {
	prompt, err := aigateway.RenderTemplate(questionsPromptTmpl, map[string]any{
		"Position":   position,
		"Department": department,
	})
	if err != nil {
		return nil, fmt.Errorf("render questions prompt: %w", err)
	}

	req := &aigateway.ChatRequest{
		Model: e.client.Model(),
		Messages: []aigateway.Message{
			{Role: "system", Content: interviewerSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Tools: []aigateway.Tool{{
			Type:        "function",
			Name:        "return_questions",
			Description: "Returns the generated interview questions",
			Parameters:  json.RawMessage(questionsSchemaJSON),
		}},
		ToolChoice: &aigateway.ToolChoice{Type: "function", Function: aigateway.ToolChoiceName{Name: "return_questions"}},
	}

	resp, err := e.client.Chat(ctx, req)
	if err != nil {
		return nil, err
	}

	args, err := resp.ToolArguments()
	if err != nil {
		return nil, err
	}

	if err := validatePayload(ctx, questionsSchema, args); err != nil {
		e.logger.Error("invalid questions payload", slog.Any("err", err), slog.String("raw", string(args)))
		return nil, fmt.Errorf("questions payload: %w", err)
	}

	var payload struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, fmt.Errorf("decode questions payload: %w", err)
	}

	return payload.Questions, nil
}

// EvaluateResponses scores every response concurrently and fail-fast: the
// first failed member aborts the whole batch and nothing is returned. On
// success it computes the rounded mean score and asks the gateway for a short
// free-text hiring recommendation.
func (e *Engine) EvaluateResponses(ctx context.Context, position, department string, items []ResponseItem) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	evals := make([]Evaluation, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			ev, err := e.evaluateOne(gctx, item)
			if err != nil {
				return err
			}
			evals[i] = *ev
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := 0
	for _, ev := range evals {
		sum += ev.Score
	}
	overall := int(math.Round(float64(sum) / float64(len(evals))))

	rec, err := e.recommend(ctx, position, overall, len(evals))
	if err != nil {
		return nil, err
	}

	return &BatchResult{Evaluations: evals, OverallScore: overall, Recommendation: rec}, nil
}

func (e *Engine) evaluateOne(ctx context.Context, item ResponseItem) (*Evaluation, error) {
	prompt, err := aigateway.RenderTemplate(evaluationPromptTmpl, map[string]any{
		"Question":       item.Question,
		"Category":       item.Category,
		"ExpectedPoints": strings.Join(item.ExpectedPoints, ", "),
		"Response":       item.Response,
	})
	if err != nil {
		return nil, fmt.Errorf("render evaluation prompt: %w", err)
	}

	req := &aigateway.ChatRequest{
		Model: e.client.Model(),
		Messages: []aigateway.Message{
			{Role: "system", Content: evaluatorSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Tools: []aigateway.Tool{{
			Type:        "function",
			Name:        "return_evaluation",
			Description: "Returns the evaluation of the candidate's response",
			Parameters:  json.RawMessage(evaluationSchemaJSON),
		}},
		ToolChoice: &aigateway.ToolChoice{Type: "function", Function: aigateway.ToolChoiceName{Name: "return_evaluation"}},
	}

	resp, err := e.client.Chat(ctx, req)
	if err != nil {
		return nil, err
	}

	args, err := resp.ToolArguments()
	if err != nil {
		return nil, err
	}

	if err := validatePayload(ctx, evaluationSchema, args); err != nil {
		e.logger.Error("invalid evaluation payload",
			slog.String("question_id", item.QuestionID),
			slog.Any("err", err),
			slog.String("raw", string(args)),
		)
		return nil, fmt.Errorf("evaluation payload: %w", err)
	}

	var payload struct {
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, fmt.Errorf("decode evaluation payload: %w", err)
	}

	return &Evaluation{QuestionID: item.QuestionID, Score: payload.Score, Feedback: payload.Feedback}, nil
}

// recommend issues the final free-text recommendation call. The output is not
// schema constrained but must be non-empty.
func (e *Engine) recommend(ctx context.Context, position string, overall, count int) (string, error) {
	prompt, err := aigateway.RenderTemplate(recommendationPromptTmpl, map[string]any{
		"Score":    overall,
		"Count":    count,
		"Position": position,
	})
	if err != nil {
		return "", fmt.Errorf("render recommendation prompt: %w", err)
	}

	req := &aigateway.ChatRequest{
		Model: e.client.Model(),
		Messages: []aigateway.Message{
			{Role: "system", Content: recommenderSystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	resp, err := e.client.Chat(ctx, req)
	if err != nil {
		return "", err
	}

	rec := strings.TrimSpace(resp.Content())
	if rec == "" {
		return "", fmt.Errorf("empty recommendation from gateway")
	}
	return rec, nil
}
