package store

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of gateway.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Do(ctx context.Context, method, path string, body any, header http.Header) (json.RawMessage, error) {
	args := m.Called(ctx, method, path, body, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}
