package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riple-app/backend/internal/appstate"
	"github.com/riple-app/backend/internal/model"
	"github.com/riple-app/backend/pkg/api/openai"
	"github.com/riple-app/backend/pkg/crypto"
	"github.com/riple-app/backend/pkg/errorx"
	"github.com/riple-app/backend/pkg/xcontext"
)

// fallbackDailyTasks is the local bank used when the model cannot serve a
// suggestion. Every entry fits the 5-15 minute contract of the prompt.
var fallbackDailyTasks = []struct {
	Text         string
	CategoryTags []string
}{
	{"Take a 5-minute stretching break.", []string{"wellness", "physical"}},
	{"Write down one thing you're grateful for today.", []string{"mindfulness", "wellness"}},
	{"Read one article or blog post related to your interests.", []string{"learning", "personal_growth"}},
	{"Drink a glass of water right now.", []string{"health", "wellness"}},
	{"Spend 10 minutes tidying up your workspace.", []string{"productivity", "organization"}},
	{"Reach out to a friend or family member you haven't spoken to recently.", []string{"social", "connection"}},
	{"Learn one new word or concept.", []string{"learning"}},
	{"Step outside for 5 minutes of fresh air.", []string{"wellness", "nature"}},
	{"Plan one small, healthy meal for tomorrow.", []string{"health", "planning"}},
	{"Reflect on one accomplishment from the past week.", []string{"mindfulness", "reflection"}},
}

var errNoSuggestion = errors.New("model returned no suggestion")

type DailyTaskDomain interface {
	Get(context.Context, *model.GetDailyTaskRequest) (*model.GetDailyTaskResponse, error)
}

type dailyTaskDomain struct {
	stateManager *appstate.Manager
	openaiCaller openai.Caller
}

func NewDailyTaskDomain(stateManager *appstate.Manager, openaiCaller openai.Caller) DailyTaskDomain {
	return &dailyTaskDomain{stateManager: stateManager, openaiCaller: openaiCaller}
}

// Get returns today's task for the session. The first call of a calendar
// day asks the model; later calls reuse the cached task. A model failure
// never fails the request, it only downgrades the task to the fallback
// bank.
func (d *dailyTaskDomain) Get(
	ctx context.Context, req *model.GetDailyTaskRequest,
) (*model.GetDailyTaskResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if requestUserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	store, err := d.stateManager.Get(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get app state: %v", err)
		return nil, errorx.Unknown
	}

	now := timeNow()
	if task := store.State().CurrentTaskFor(now); task != nil {
		return &model.GetDailyTaskResponse{Task: convertDailyTask(*task)}, nil
	}

	task := appstate.DailyTask{
		ID:  xcontext.SnowFlake(ctx).Generate().String(),
		Day: now.Format("2006-01-02"),
	}

	text, err := d.suggest(ctx, req.Interest, req.Goal)
	if err != nil {
		// A missing credential is an operator problem and must surface,
		// not hide behind the fallback bank.
		var errx errorx.Error
		if errors.As(err, &errx) && errx.Code == errorx.NotConfigured {
			xcontext.Logger(ctx).Errorf("Daily task provider is not configured: %v", err)
			return nil, errx
		}

		xcontext.Logger(ctx).Warnf("Cannot get daily task suggestion: %v", err)
		fallback := fallbackDailyTasks[crypto.RandIntn(len(fallbackDailyTasks))]
		task.Text = fallback.Text
		task.CategoryTags = fallback.CategoryTags
		task.Source = appstate.TaskSourceFallback
	} else {
		task.Text = text
		task.Source = appstate.TaskSourceModel
	}

	store.Apply(ctx, func(s appstate.AppState) appstate.AppState {
		return s.SetCurrentDailyTask(&task)
	})

	return &model.GetDailyTaskResponse{Task: convertDailyTask(task)}, nil
}

// suggest asks the chat model for one task, personalized by the caller's
// interest and goal when available.
func (d *dailyTaskDomain) suggest(ctx context.Context, interest, goal string) (string, error) {
	cfg := xcontext.Configs(ctx).DailyTask
	if cfg.OpenAIAPIKey == "" {
		return "", errorx.New(errorx.NotConfigured, "OpenAI API key not configured")
	}

	if d.openaiCaller == nil {
		return "", errorx.New(errorx.NotConfigured, "No chat completion client")
	}

	prompt := "Suggest one short, actionable daily task."
	switch {
	case interest != "" && goal != "":
		prompt = fmt.Sprintf(
			"Suggest one short, actionable daily task for someone interested in %q and working towards the goal: %q.",
			interest, goal)
	case interest != "":
		prompt = fmt.Sprintf(
			"Suggest one short, actionable daily task for someone interested in %q.", interest)
	case goal != "":
		prompt = fmt.Sprintf(
			"Suggest one short, actionable daily task for someone working towards the goal: %q.", goal)
	}
	prompt += " The task should be something that can be completed in 5-15 minutes. Be concise."

	resp, err := d.openaiCaller.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []openai.Message{
			{Role: "system", Content: "You are a helpful assistant that suggests daily tasks."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errNoSuggestion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errNoSuggestion
	}

	return text, nil
}

func convertDailyTask(task appstate.DailyTask) model.DailyTask {
	return model.DailyTask{
		ID:           task.ID,
		Text:         task.Text,
		CategoryTags: task.CategoryTags,
		Source:       string(task.Source),
		Day:          task.Day,
	}
}
