package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/qaops/testcase-gateway/internal/config"
	"github.com/qaops/testcase-gateway/internal/metrics"
	"github.com/qaops/testcase-gateway/internal/models"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// TestCaseService turns a generation request into a stream of text deltas
// from the model provider.
type TestCaseService struct {
	logger       *log.Logger
	openaiClient openai.Client
	modelName    string
	cache        Cache
}

func NewTestCaseService(logger *log.Logger, openaiClient openai.Client, cfg config.OpenAIConfig) *TestCaseService {
	return &TestCaseService{
		logger:       logger,
		openaiClient: openaiClient,
		modelName:    cfg.Model,
	}
}

func (s *TestCaseService) SetCacheClient(cache Cache) {
	s.cache = cache
}

// GenerateStream opens a streaming completion and re-emits every non-empty
// text delta in arrival order. The stream is lazy, finite and not
// restartable: it ends with exactly one chunk carrying Done or Err. All
// upstream failures after this call returns are reported in-band through
// the channel, never as a second error return.
//
// Cancelling ctx (the inbound connection closing) stops the upstream
// iteration; the producer never blocks on a reader that went away.
func (s *TestCaseService) GenerateStream(ctx context.Context, req *models.GenerateRequest) (<-chan models.StreamChunk, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ch := make(chan models.StreamChunk, 1)

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, cacheKey(req))
		if err != nil {
			s.logger.Printf("cache get error: %v\n", err)
		}
		if found {
			metrics.GenerationStreamsTotal(string(req.Mode), "cached")
			ch <- models.StreamChunk{Delta: cached, Done: true}
			close(ch)
			return ch, nil
		}
	}

	params := s.buildChatRequest(req)

	go func() {
		defer close(ch)

		sendOrStop := func(msg models.StreamChunk) bool {
			select {
			case ch <- msg:
				return true
			case <-ctx.Done():
				return false
			}
		}

		sendNonBlocking := func(msg models.StreamChunk) {
			select {
			case ch <- msg:
			default:
			}
		}

		stream := s.openaiClient.Chat.Completions.NewStreaming(ctx, *params)
		defer stream.Close()

		var builder strings.Builder

		for stream.Next() {
			if ctx.Err() != nil {
				metrics.GenerationStreamsTotal(string(req.Mode), "canceled")
				sendNonBlocking(models.StreamChunk{Err: ctx.Err()})
				return
			}

			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}

			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}

			builder.WriteString(delta)
			if !sendOrStop(models.StreamChunk{Delta: delta}) {
				metrics.GenerationStreamsTotal(string(req.Mode), "canceled")
				return
			}
		}

		if err := stream.Err(); err != nil {
			s.logger.Printf("model stream error: %v\n", err)
			metrics.GenerationStreamsTotal(string(req.Mode), "error")
			// The buffer slot may still hold an unread delta; block until
			// the consumer drains it so the error frame is never lost.
			sendOrStop(models.StreamChunk{Err: err})
			return
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, cacheKey(req), builder.String()); err != nil {
				s.logger.Printf("failed to set cache: %v\n", err)
			}
		}

		metrics.GenerationStreamsTotal(string(req.Mode), "ok")
		sendNonBlocking(models.StreamChunk{Done: true})
	}()

	return ch, nil
}

// cacheKey hashes everything that shapes the prompt: mode, free text and
// the image payloads themselves.
func cacheKey(req *models.GenerateRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s", req.Mode, req.AdditionalInfo)
	for _, img := range req.Images {
		fmt.Fprintf(h, "\x00%s", img.Base64)
	}
	return hex.EncodeToString(h.Sum(nil))
}
