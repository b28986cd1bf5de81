package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockJobProcessor is a mock implementation of JobProcessor
type MockJobProcessor struct {
	mock.Mock
}

func (m *MockJobProcessor) ProcessJobs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRetentionStore is a mock implementation of AnalyticsRetentionStore
type MockRetentionStore struct {
	mock.Mock
}

func (m *MockRetentionStore) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// TestWorker_StartStop tests the worker start and stop functionality
func TestWorker_StartStop(t *testing.T) {
	mockProcessor := new(MockJobProcessor)
	mockProcessor.On("ProcessJobs", mock.Anything).Return(nil)

	worker := NewWorker(mockProcessor, 100*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	// Let it run for a bit
	time.Sleep(250 * time.Millisecond)

	worker.Stop()
	wg.Wait()

	mockProcessor.AssertCalled(t, "ProcessJobs", mock.Anything)
}

// TestWorker_ContextCancellation tests worker stops on context cancellation
func TestWorker_ContextCancellation(t *testing.T) {
	mockProcessor := new(MockJobProcessor)
	mockProcessor.On("ProcessJobs", mock.Anything).Return(nil)

	worker := NewWorker(mockProcessor, 100*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	time.Sleep(150 * time.Millisecond)

	cancel()
	wg.Wait()

	mockProcessor.AssertCalled(t, "ProcessJobs", mock.Anything)
}

// TestWorker_ProcessorError verifies the loop survives processor errors
func TestWorker_ProcessorError(t *testing.T) {
	mockProcessor := new(MockJobProcessor)
	mockProcessor.On("ProcessJobs", mock.Anything).Return(errors.New("boom"))

	worker := NewWorker(mockProcessor, 50*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	time.Sleep(175 * time.Millisecond)
	worker.Stop()
	wg.Wait()

	// Multiple ticks happened despite the error on each one
	assert.GreaterOrEqual(t, len(mockProcessor.Calls), 2)
}

// TestRetentionSweeper_CutoffWindow tests the cutoff derivation
func TestRetentionSweeper_CutoffWindow(t *testing.T) {
	mockStore := new(MockRetentionStore)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sweeper := NewRetentionSweeper(mockStore, 90*24*time.Hour, nil)
	sweeper.now = func() time.Time { return fixed }

	expectedCutoff := fixed.Add(-90 * 24 * time.Hour)
	mockStore.On("DeleteEventsBefore", mock.Anything, expectedCutoff).Return(int64(12), nil)

	err := sweeper.ProcessJobs(context.Background())

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

// TestRetentionSweeper_StoreError tests error propagation from the store
func TestRetentionSweeper_StoreError(t *testing.T) {
	mockStore := new(MockRetentionStore)
	mockStore.On("DeleteEventsBefore", mock.Anything, mock.Anything).Return(int64(0), errors.New("database error"))

	sweeper := NewRetentionSweeper(mockStore, 24*time.Hour, nil)
	err := sweeper.ProcessJobs(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prune search events")
	mockStore.AssertExpectations(t)
}

// TestRetentionSweeper_NothingToDelete tests the quiet path
func TestRetentionSweeper_NothingToDelete(t *testing.T) {
	mockStore := new(MockRetentionStore)
	mockStore.On("DeleteEventsBefore", mock.Anything, mock.Anything).Return(int64(0), nil)

	sweeper := NewRetentionSweeper(mockStore, 24*time.Hour, nil)
	err := sweeper.ProcessJobs(context.Background())

	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}
