package services

import (
	"github.com/stretchr/testify/mock"

	"bpmsclient/pkg/contracts/domain"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(msg domain.NotificationMessage) int {
	args := m.Called(msg)
	return args.Int(0)
}

type mockHub struct {
	mock.Mock
}

func (m *mockHub) ClientCount() int {
	return m.Called().Int(0)
}

type mockBridge struct {
	mock.Mock
}

func (m *mockBridge) Connected() bool {
	return m.Called().Bool(0)
}
