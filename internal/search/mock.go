package search

import (
	"github.com/cristianoliveira/alertdeck/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: n, query.
func (m *MockProvider) Match(n domain.Notification, query string) bool {
	ret := m.Called(n, query)
	if rf, ok := ret.Get(0).(func(domain.Notification, string) bool); ok {
		return rf(n, query)
	}
	return ret.Bool(0)
}

// Name provides a mock function.
func (m *MockProvider) Name() string {
	ret := m.Called()
	return ret.String(0)
}
