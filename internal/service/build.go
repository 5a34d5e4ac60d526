package service

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
	"github.com/qaops/testcase-gateway/internal/models"
)

// buildChatRequest assembles the single user message the upstream sees:
// one leading text part with the selected template, followed by one image
// part per upload, in input order.
func (s *TestCaseService) buildChatRequest(req *models.GenerateRequest) *openai.ChatCompletionNewParams {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(req.Images)+1)
	parts = append(parts, openai.TextContentPart(promptFor(req.Mode, req.AdditionalInfo)))

	for _, img := range req.Images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: img.DataURL(),
		}))
	}

	return &openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	}
}
