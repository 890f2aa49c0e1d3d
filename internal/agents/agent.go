package agents

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"benchgate/domain/core"
	"benchgate/internal"
	"benchgate/internal/errors"
)

// Activity statuses recorded in the log.
const (
	StatusStarted             = "started"
	StatusCompleted           = "completed"
	StatusCompletedWithErrors = "completed_with_errors"
	StatusFailed              = "failed"
)

// Activity is one entry in an agent's activity log.
type Activity struct {
	ID           core.ActivityID `json:"id"`
	AgentName    string          `json:"agent_name"`
	ActivityType string          `json:"activity_type"`
	Status       string          `json:"status"`
	Timestamp    time.Time       `json:"timestamp"`
	Details      map[string]any  `json:"details"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

// Handoff is a packaged data transfer between cooperating agents.
type Handoff struct {
	FromAgent string         `json:"from_agent"`
	ToAgent   string         `json:"to_agent"`
	Timestamp time.Time      `json:"timestamp"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
}

// StatusInfo is the snapshot returned by an agent's Status call.
type StatusInfo struct {
	AgentName           string   `json:"agent_name"`
	Status              string   `json:"status"`
	TotalActivities     int      `json:"total_activities"`
	CompletedActivities int      `json:"completed_activities"`
	FailedActivities    int      `json:"failed_activities"`
	Capabilities        []string `json:"capabilities"`
}

// Agent provides the bookkeeping shared by all agents: a status field,
// an append-only activity log, and handoff packaging.
type Agent struct {
	name   string
	logger *internal.Logger

	mu         sync.Mutex
	status     string
	activities []Activity
}

func newAgent(name string) *Agent {
	a := &Agent{
		name:   name,
		logger: internal.NewDefaultLogger(),
		status: "initialized",
	}
	a.logger.Info("Agent '%s' initialized", name)
	return a
}

// Name returns the agent identifier.
func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) setStatus(status string) {
	a.mu.Lock()
	a.status = status
	a.mu.Unlock()
}

// LogActivity appends an entry to the activity log and returns it.
func (a *Agent) LogActivity(activityType, status string, details map[string]any, errorMessage string) Activity {
	if details == nil {
		details = map[string]any{}
	}
	activity := Activity{
		ID:           core.NewActivityID(),
		AgentName:    a.name,
		ActivityType: activityType,
		Status:       status,
		Timestamp:    time.Now(),
		Details:      details,
		ErrorMessage: errorMessage,
	}

	a.mu.Lock()
	a.activities = append(a.activities, activity)
	a.mu.Unlock()

	if status == StatusFailed {
		a.logger.Error("Activity '%s' failed: %s", activityType, errorMessage)
	} else {
		a.logger.Info("Activity '%s' - Status: %s", activityType, status)
	}
	return activity
}

// Activities returns log entries matching the optional type and status
// filters; empty strings match everything.
func (a *Agent) Activities(activityType, status string) []Activity {
	a.mu.Lock()
	defer a.mu.Unlock()

	var results []Activity
	for _, act := range a.activities {
		if activityType != "" && act.ActivityType != activityType {
			continue
		}
		if status != "" && act.Status != status {
			continue
		}
		results = append(results, act)
	}
	return results
}

// PrepareHandoff packages data for another agent and logs the transfer.
func (a *Agent) PrepareHandoff(targetAgent string, data map[string]any, message string) Handoff {
	handoff := Handoff{
		FromAgent: a.name,
		ToAgent:   targetAgent,
		Timestamp: time.Now(),
		Message:   message,
		Data:      data,
	}

	a.LogActivity("handoff", StatusCompleted, map[string]any{
		"target_agent": targetAgent,
		"message":      message,
	}, "")

	a.logger.Info("Handoff prepared for agent '%s'", targetAgent)
	return handoff
}

// ReceiveHandoff logs an incoming handoff and returns its payload.
func (a *Agent) ReceiveHandoff(handoff Handoff) map[string]any {
	a.LogActivity("receive_handoff", StatusCompleted, map[string]any{
		"from_agent": handoff.FromAgent,
		"message":    handoff.Message,
	}, "")
	return handoff.Data
}

// SaveJSON writes a document to disk as indented JSON.
func (a *Agent) SaveJSON(doc any, outputPath string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal document")
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return errors.ReportWriteError(outputPath, err)
	}
	a.logger.Info("Saved %s", outputPath)
	return nil
}

// statusSnapshot builds the shared part of a status report.
func (a *Agent) statusSnapshot(capabilities []string) StatusInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	completed, failed := 0, 0
	for _, act := range a.activities {
		switch act.Status {
		case StatusCompleted, StatusCompletedWithErrors:
			completed++
		case StatusFailed:
			failed++
		}
	}

	return StatusInfo{
		AgentName:           a.name,
		Status:              a.status,
		TotalActivities:     len(a.activities),
		CompletedActivities: completed,
		FailedActivities:    failed,
		Capabilities:        capabilities,
	}
}
