package model

import "testing"

func TestTaskStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusIdle, false},
		{TaskStatusPending, false},
		{TaskStatusRunning, true},
		{TaskStatusCompleted, false},
		{TaskStatusFailed, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusIdle, false},
		{TaskStatusPending, false},
		{TaskStatusRunning, false},
		{TaskStatusCompleted, true},
		{TaskStatusFailed, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to TaskStatus
		expected bool
	}{
		{TaskStatusIdle, TaskStatusRunning, true},
		{TaskStatusIdle, TaskStatusPending, true},
		{TaskStatusIdle, TaskStatusCompleted, false},
		{TaskStatusPending, TaskStatusRunning, true},
		{TaskStatusPending, TaskStatusFailed, false},
		{TaskStatusRunning, TaskStatusCompleted, true},
		{TaskStatusRunning, TaskStatusFailed, true},
		{TaskStatusRunning, TaskStatusIdle, false},
		{TaskStatusCompleted, TaskStatusRunning, false},
		{TaskStatusFailed, TaskStatusRunning, false},
	}

	for _, test := range tests {
		if got := test.from.CanTransition(test.to); got != test.expected {
			t.Errorf("%s -> %s = %v, expected %v", test.from, test.to, got, test.expected)
		}
	}
}

func TestTaskStatus_String(t *testing.T) {
	status := TaskStatusRunning
	expected := "Running"
	result := status.String()

	if result != expected {
		t.Errorf("TaskStatus.String() = %s, expected %s", result, expected)
	}
}
