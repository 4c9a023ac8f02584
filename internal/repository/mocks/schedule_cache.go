package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockScheduleCache struct {
	mock.Mock
}

func (m *MockScheduleCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockScheduleCache) Set(ctx context.Context, key string, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func (m *MockScheduleCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
