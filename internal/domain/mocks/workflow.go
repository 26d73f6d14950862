// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cs2kt.dev/pkg/cs2kt/internal/domain"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted
// when the test ends.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	w := &MockWorkflow{}
	w.Mock.Test(t)

	t.Cleanup(func() { w.AssertExpectations(t) })

	return w
}

// Translate mocks domain.Workflow.
func (w *MockWorkflow) Translate(ctx context.Context, args domain.TranslateArgs) error {
	return w.Called(ctx, args).Error(0)
}

// Estimate mocks domain.Workflow.
func (w *MockWorkflow) Estimate(ctx context.Context, args domain.EstimateArgs) error {
	return w.Called(ctx, args).Error(0)
}

// View mocks domain.Workflow.
func (w *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	return w.Called(ctx, args).Error(0)
}

// Show mocks domain.Workflow.
func (w *MockWorkflow) Show(ctx context.Context, args domain.ShowArgs) error {
	return w.Called(ctx, args).Error(0)
}
