package store

import (
	"context"
	"net/http"
	"testing"

	"kart-checkout/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShippingMethodStore_Fetch_Success(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Do", mock.Anything, http.MethodGet, "/shipping-methods", nil, mock.Anything).
		Return(raw(`[
			{"id":"sm-1","name":"Standard","price":3.00},
			{"id":"sm-2","name":"Express","price":9.50}
		]`), nil)

	s := NewShippingMethodStore(gw, zerolog.Nop())
	require.NoError(t, s.Fetch(context.Background()))

	snap := s.Snapshot()
	require.Len(t, snap.Methods, 2)
	assert.Equal(t, "Express", snap.Methods[1].Name)
	assert.Empty(t, snap.Err)
}

func TestShippingMethodStore_Get(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Do", mock.Anything, http.MethodGet, "/shipping-methods", nil, mock.Anything).
		Return(raw(`[{"id":"sm-1","name":"Standard","price":3.00}]`), nil)

	s := NewShippingMethodStore(gw, zerolog.Nop())
	require.NoError(t, s.Fetch(context.Background()))

	method, ok := s.Get("sm-1")
	require.True(t, ok)
	assert.Equal(t, 3.00, method.Price)

	_, ok = s.Get("sm-missing")
	assert.False(t, ok)
}

func TestShippingMethodStore_Fetch_RecordsErrorState(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Do", mock.Anything, http.MethodGet, "/shipping-methods", nil, mock.Anything).
		Return(nil, &model.APIError{Message: "backend unreachable: dial refused"})

	s := NewShippingMethodStore(gw, zerolog.Nop())
	require.Error(t, s.Fetch(context.Background()))

	snap := s.Snapshot()
	assert.Contains(t, snap.Err, "backend unreachable")
	assert.Empty(t, snap.Methods)
}

func TestShippingMethodStore_FetchClearsPreviousError(t *testing.T) {
	gw := new(MockGateway)
	gw.On("Do", mock.Anything, http.MethodGet, "/shipping-methods", nil, mock.Anything).
		Return(nil, &model.APIError{Message: "boom"}).Once()
	gw.On("Do", mock.Anything, http.MethodGet, "/shipping-methods", nil, mock.Anything).
		Return(raw(`[{"id":"sm-1","name":"Standard","price":3.00}]`), nil).Once()

	s := NewShippingMethodStore(gw, zerolog.Nop())
	require.Error(t, s.Fetch(context.Background()))
	require.NoError(t, s.Fetch(context.Background()))

	snap := s.Snapshot()
	assert.Empty(t, snap.Err)
	assert.Len(t, snap.Methods, 1)
}
