package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"RubyAI/models"
	"RubyAI/pkg/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Model is the slice of the completion-client surface the chat service needs.
// Satisfied by langchaingo's OpenAI-compatible clients and by StubModel.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Delta is one element of a streamed reply. A non-nil Err is terminal.
type Delta struct {
	Text string
	Err  error
}

const maxReplyTokens = 4096

// ChatService relays chat turns to the upstream completion providers. Text
// turns go to the fast text model, any conversation that has ever carried an
// image goes to the vision model.
type ChatService struct {
	Text    Model
	Vision  Model
	Timeout time.Duration
}

// NewChatService builds provider clients from config. A provider with no API
// key falls back to the local stub so development setups keep working.
func NewChatService() *ChatService {
	return &ChatService{
		Text:    modelOrLocal("text", config.GroqAPIKey, config.GroqBaseURL, config.GroqModel),
		Vision:  modelOrLocal("vision", config.OpenRouterAPIKey, config.OpenRouterBaseURL, config.VisionModel),
		Timeout: config.LLMTimeout,
	}
}

func modelOrLocal(kind, key, baseURL, model string) Model {
	if strings.TrimSpace(key) == "" {
		log.Printf("[chat] no API key for %s provider, using local stub", kind)
		return LocalModel()
	}
	m, err := openai.New(
		openai.WithToken(key),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		log.Printf("[chat] failed to build %s provider client: %v, using local stub", kind, err)
		return LocalModel()
	}
	log.Printf("[chat] %s provider ready (model %s)", kind, model)
	return m
}

// StreamReply opens a streamed completion for the current turn and returns a
// channel of text fragments. The channel closes after the last fragment; a
// terminal Delta with Err set reports upstream failure. Cancelling ctx tears
// down the upstream stream.
//
// history must be the full ordered message list including the just-written
// user turn; content/imageDataURL describe that same turn.
func (s *ChatService) StreamReply(ctx context.Context, history []models.Message, content, imageDataURL string) <-chan Delta {
	vision := HasImageContent(imageDataURL, history)
	model := s.Text
	if vision {
		model = s.Vision
	}
	transcript := BuildTranscript(history, content, imageDataURL, vision)

	ch := make(chan Delta)
	go func() {
		defer close(ch)

		ctx, cancel := context.WithTimeout(ctx, s.timeout())
		defer cancel()

		sent := false
		run := func() error {
			_, err := model.GenerateContent(ctx, transcript,
				llms.WithMaxTokens(maxReplyTokens),
				llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
					if len(chunk) == 0 {
						return nil
					}
					select {
					case ch <- Delta{Text: string(chunk)}:
						sent = true
						return nil
					case <-ctx.Done():
						return ctx.Err()
					}
				}),
			)
			return err
		}

		err := run()
		if err != nil && !sent && isRetriable(err) && ctx.Err() == nil {
			log.Printf("[chat] retrying after retriable provider error: %v", err)
			sleepWithContext(ctx, 2*time.Second)
			err = run()
		}
		if err != nil {
			select {
			case ch <- Delta{Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return ch
}

func (s *ChatService) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return 120 * time.Second
}

// isRetriable matches overload/quota style upstream failures worth one retry.
func isRetriable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	e := strings.ToLower(err.Error())
	if strings.Contains(e, "status 503") || strings.Contains(e, "unavailable") || strings.Contains(e, "overloaded") {
		return true
	}
	if strings.Contains(e, "status 429") || strings.Contains(e, "rate limit") || strings.Contains(e, "quota") {
		return true
	}
	return false
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
