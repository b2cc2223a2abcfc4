package mocks

import (
	"context"

	"docanchor/internal/ledger"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Submit(ctx context.Context, fingerprint string) (*ledger.Proof, error) {
	args := m.Called(ctx, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Proof), args.Error(1)
}

func (m *MockGateway) Fetch(ctx context.Context, fileID string) (string, error) {
	args := m.Called(ctx, fileID)
	return args.String(0), args.Error(1)
}
