// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cs2kt.dev/pkg/cs2kt/internal/controller"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI whose expectations are asserted when the test
// ends.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	u := &MockUI{}
	u.Mock.Test(t)

	t.Cleanup(func() { u.AssertExpectations(t) })

	return u
}

func (u *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	return u.Called(ctx, options).Error(0)
}

func (u *MockUI) Close(ctx context.Context) {
	u.Called(ctx)
}

func (u *MockUI) Wait(ctx context.Context) {
	u.Called(ctx)
}

func (u *MockUI) DisplaySources(ctx context.Context, sources []controller.SourceInfo) error {
	return u.Called(ctx, sources).Error(0)
}

func (u *MockUI) DisplayTranslationStarted(ctx context.Context, total int, parallel int) {
	u.Called(ctx, total, parallel)
}

func (u *MockUI) DisplayUnitCompleted(ctx context.Context, report m.Report) {
	u.Called(ctx, report)
}

func (u *MockUI) DisplayDiff(ctx context.Context, path m.Path, diff string) {
	u.Called(ctx, path, diff)
}

func (u *MockUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	return u.Called(ctx, reports).Error(0)
}

func (u *MockUI) DisplayText(ctx context.Context, text string) {
	u.Called(ctx, text)
}
