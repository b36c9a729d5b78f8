package port

import (
	"context"

	"tradeflow/internal/annotation"
	"tradeflow/internal/domain"
)

// InferenceInput carries what the inference service reads: the scan itself, its
// extracted page texts, or both.
type InferenceInput struct {
	DocumentType domain.DocumentType
	FileBytes    []byte
	ContentType  string
	PageTexts    []string
	Prompt       string
}

// InferenceOutput holds one page annotation per physical page, in page order.
type InferenceOutput struct {
	Pages      *annotation.PageSet
	ModelUsed  string
	PromptUsed string
}

// Inferencer abstracts the external page annotation service.
type Inferencer interface {
	Infer(ctx context.Context, input InferenceInput) (*InferenceOutput, error)
}
