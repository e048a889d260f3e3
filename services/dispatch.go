package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"playstore-dashboard/models"
	"playstore-dashboard/utils"
)

// ErrUnknownTask is returned when a menu selection names no pipeline.
var ErrUnknownTask = errors.New("unknown task")

// Task is one entry of the dashboard menu.
type Task int

const (
	TaskSentiment Task = iota + 1
	TaskInstalls
	TaskTrend
)

// Tasks lists the menu entries in display order.
var Tasks = []Task{TaskSentiment, TaskInstalls, TaskTrend}

// String returns the menu label.
func (t Task) String() string {
	switch t {
	case TaskSentiment:
		return "Sentiment Distribution"
	case TaskInstalls:
		return "Global Installs by Category"
	case TaskTrend:
		return "Installs Trend Over Time"
	}
	return fmt.Sprintf("Task(%d)", int(t))
}

// Slug is the short command-line name.
func (t Task) Slug() string {
	switch t {
	case TaskSentiment:
		return "sentiment"
	case TaskInstalls:
		return "installs"
	case TaskTrend:
		return "trend"
	}
	return ""
}

// Title is the page heading shown above the chart.
func (t Task) Title() string {
	switch t {
	case TaskSentiment:
		return "Sentiment Distribution by Rating Groups"
	case TaskInstalls:
		return "Global Installs by Category"
	case TaskTrend:
		return "Installs Trend Over Time"
	}
	return ""
}

// ParseTask accepts a menu label or a slug, ignoring case.
func ParseTask(s string) (Task, error) {
	s = strings.TrimSpace(s)
	for _, t := range Tasks {
		if strings.EqualFold(s, t.String()) || strings.EqualFold(s, t.Slug()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTask, s)
}

// Dispatcher routes a menu selection to its pipeline and applies the viewing window.
type Dispatcher struct {
	logger   *utils.Logger
	insights *InsightService
	clock    Clock
	gates    map[Task]*TimeGate
}

// NewDispatcher wires the pipelines with the viewing windows evaluated in loc.
// The sentiment task has no window.
func NewDispatcher(logger *utils.Logger, clock Clock, loc *time.Location) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		insights: NewInsightService(logger),
		clock:    clock,
		gates: map[Task]*TimeGate{
			TaskInstalls: {
				Start:    12 * time.Hour,
				End:      20 * time.Hour,
				Location: loc,
				Warning:  "The dashboard is only available between 12 PM and 8 PM IST.",
			},
			TaskTrend: {
				Start:    12 * time.Hour,
				End:      21 * time.Hour,
				Location: loc,
				Warning:  "The graph is only visible between 12 PM and 9 PM IST.",
			},
		},
	}
}

// Run executes the pipeline for task over tables. The table is always built;
// Renderable is false and Warning set when the task's window is closed.
func (d *Dispatcher) Run(task Task, tables *models.Tables) (*models.Result, error) {
	if tables == nil {
		tables = &models.Tables{}
	}

	res := &models.Result{Task: task.String(), Title: task.Title(), Renderable: true}

	switch task {
	case TaskSentiment:
		res.Sentiment = d.insights.SentimentByRatingGroup(tables.Apps, tables.Reviews)
	case TaskInstalls:
		res.Installs = d.insights.InstallsByCategory(tables.Apps)
	case TaskTrend:
		res.Trend = d.insights.InstallsTrend(tables.Apps)
	default:
		return nil, fmt.Errorf("dispatch: %w: %d", ErrUnknownTask, int(task))
	}

	if gate, ok := d.gates[task]; ok {
		if now := d.clock.Now(); !gate.Open(now) {
			res.Renderable = false
			res.Warning = gate.Warning
			d.logger.Warn("[dispatch] %s outside viewing window at %s", task, now.In(gate.Location).Format("15:04"))
		}
	}

	d.logger.Info("[dispatch] %s: %d rows (renderable=%t)", task, res.Rows(), res.Renderable)
	return res, nil
}
