//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/MGTheTrain/crypto-session-service/internal/domain/engines"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"

	"github.com/stretchr/testify/mock"
)

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, cipherSpec, hashSpec *engines.AlgorithmSpec) (string, error) {
	args := m.Called(ctx, cipherSpec, hashSpec)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Destroy(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionService) DestroyAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionService) Info(ctx context.Context, sessionID string) (*sessions.SessionInfo, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessions.SessionInfo), args.Error(1)
}

// MockPipelineService is a mock implementation of PipelineService
type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) Run(ctx context.Context, request *sessions.OperationRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}
