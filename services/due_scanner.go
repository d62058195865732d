package services

import (
	"time"

	"github.com/harukimz/taskboard-app/models"
	"github.com/harukimz/taskboard-app/repository"
	"github.com/harukimz/taskboard-app/utils"
)

// dueThresholds are how many days ahead a reminder fires.
var dueThresholds = []int{3, 1, 0}

// DueDateScanner sweeps tasks whose due date crosses one of the reminder
// thresholds and files a due_soon notification for each, at most once per
// task per calendar day. The sweep is stateless and safe to trigger any
// number of times, including concurrently with itself.
type DueDateScanner struct {
	Store    *repository.Store
	StopChan chan struct{}
	Interval time.Duration
}

func NewDueDateScanner(store *repository.Store) *DueDateScanner {
	return &DueDateScanner{
		Store:    store,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Hour,
	}
}

// Run sweeps once against the given calendar day. "today" is a parameter so
// tests control the clock. Returns the number of notifications created and
// the dates that were checked.
func (s *DueDateScanner) Run(today time.Time) (int, []string, error) {
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	created := 0
	checked := make([]string, 0, len(dueThresholds))
	for _, days := range dueThresholds {
		target := today.AddDate(0, 0, days).Format("2006-01-02")
		checked = append(checked, target)

		tasks, err := s.Store.ListTasksDueOn(target)
		if err != nil {
			return created, checked, err
		}

		for i := range tasks {
			task := &tasks[i]
			notif := DueSoon(task, days)
			if notif == nil {
				continue
			}
			// Dedup check and insert share one transaction, so a concurrent
			// sweep cannot file a second alert for the same task today.
			ok, err := s.Store.CreateNotificationIfNoneSince(
				notif, task.ID, models.NotificationDueSoon, dayStart)
			if err != nil {
				utils.ErrorLogger.Errorf("due scan: task %d: %v", task.ID, err)
				continue
			}
			if ok {
				created++
			}
		}
	}
	return created, checked, nil
}

// Start runs the sweep on a ticker until Stop is called. The HTTP trigger
// endpoint covers cron-style external scheduling; this is for standalone use.
func (s *DueDateScanner) Start() {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				created, _, err := s.Run(time.Now())
				if err != nil {
					utils.ErrorLogger.Errorf("due scan failed: %v", err)
					continue
				}
				if created > 0 {
					utils.InfoLogger.Printf("due scan created %d notification(s)", created)
				}
			case <-s.StopChan:
				return
			}
		}
	}()
}

func (s *DueDateScanner) Stop() {
	close(s.StopChan)
}
