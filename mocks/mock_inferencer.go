package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tradeflow/internal/port"
)

// MockInferencer is a mock implementation of port.Inferencer.
type MockInferencer struct {
	mock.Mock
}

func (m *MockInferencer) Infer(ctx context.Context, input port.InferenceInput) (*port.InferenceOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.InferenceOutput), args.Error(1)
}
