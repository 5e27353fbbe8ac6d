package service

import (
	"context"
	"time"

	"github.com/raneshrk02/regulations-chat/internal/config"
	"github.com/raneshrk02/regulations-chat/internal/dto"
	"github.com/raneshrk02/regulations-chat/internal/pkg/logger"
	"github.com/raneshrk02/regulations-chat/internal/repository/contract"
	"github.com/raneshrk02/regulations-chat/pkg/agent/intent"
	"github.com/raneshrk02/regulations-chat/pkg/agent/prompt"
	"github.com/raneshrk02/regulations-chat/pkg/agent/response"
	"github.com/raneshrk02/regulations-chat/pkg/agent/retrieval"
	"github.com/raneshrk02/regulations-chat/pkg/llm"
)

// IChatService drives one full pipeline pass per query:
// Classify -> Retrieve -> Compose -> Generate -> Format.
type IChatService interface {
	// ProcessQuery never fails: retrieval and generation errors are recovered
	// into degraded replies so every inbound message gets exactly one answer.
	ProcessQuery(ctx context.Context, query string) *dto.StructuredReply
}

type chatService struct {
	retriever         *retrieval.Retriever
	promptBuilder     *prompt.Builder
	llmProvider       llm.LLMProvider
	generationTimeout time.Duration
	logger            logger.ILogger
}

func NewChatService(
	documentRepo contract.DocumentRepository,
	llmProvider llm.LLMProvider,
	cfg *config.Config,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		retriever:         retrieval.NewRetriever(documentRepo, cfg.Retrieval.Cap),
		promptBuilder:     prompt.NewBuilder(cfg.Retrieval.PromptTokenBudget, cfg.Retrieval.ExcerptCharBudget),
		llmProvider:       llmProvider,
		generationTimeout: cfg.Ai.GenerationTimeout,
		logger:            sysLogger,
	}
}

func (cs *chatService) ProcessQuery(ctx context.Context, query string) *dto.StructuredReply {
	// 1. Classify (pure, never fails)
	it := intent.Classify(query)

	// 2. Retrieve. Store failure degrades to an empty candidate set so the
	// user still gets a reply.
	candidates, err := cs.retriever.Retrieve(ctx, it)
	if err != nil {
		cs.logger.Error("ChatService", "Retrieval failed, continuing with empty candidate set", map[string]interface{}{
			"intent": string(it.Kind),
			"error":  err.Error(),
		})
		candidates = retrieval.CandidateSet{}
	}
	cs.logger.Info("ChatService", "Retrieved candidates", map[string]interface{}{
		"intent": string(it.Kind),
		"count":  len(candidates),
	})

	// 3. Compose (never fails)
	genRequest := cs.promptBuilder.Build(query, it, candidates)

	// 4. Generate. The single blocking step of the pipeline; failures are
	// absorbed here, not propagated to the session handler.
	genCtx, cancel := context.WithTimeout(ctx, cs.generationTimeout)
	defer cancel()

	generated, err := cs.llmProvider.Generate(genCtx, genRequest.Prompt)
	if err != nil {
		cs.logger.Error("ChatService", "Generation failed, substituting fallback narrative", map[string]interface{}{
			"intent": string(it.Kind),
			"error":  err.Error(),
		})
		generated = ""
	}

	// 5. Format
	reply := response.Format(generated, candidates)

	return toReplyDTO(reply)
}

func toReplyDTO(reply response.StructuredReply) *dto.StructuredReply {
	citations := make([]dto.CitationDTO, 0, len(reply.Citations))
	for _, c := range reply.Citations {
		citations = append(citations, dto.CitationDTO{
			DocumentNumber:  c.DocumentNumber,
			Title:           c.Title,
			PublicationDate: c.PublicationDate,
			Agency:          c.Agency,
			Excerpt:         c.Excerpt,
		})
	}
	return &dto.StructuredReply{
		Response:       reply.Narrative,
		Success:        reply.Success,
		DocumentsFound: reply.DocumentsFound,
		Citations:      citations,
	}
}
