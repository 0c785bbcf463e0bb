// Seed fills the configured slot with sample tasks. Run from project root: go run ./scripts/seed -n 50
// With -publish the tasks are sent as create intents to KAFKA_BROKERS instead, for a running server to apply.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"task-list/internal/config"
	"task-list/internal/models"
	"task-list/internal/queue"
	"task-list/internal/repository"
	"task-list/internal/slot"
	"task-list/internal/storage"
	"task-list/internal/store"
)

var priorities = []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}

func main() {
	n := flag.Int("n", 20, "number of tasks to create")
	publish := flag.Bool("publish", false, "send create intents to Kafka instead of writing the slot")
	flag.Parse()

	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "Reading .env failed:", err)
	}
	cfg := config.Get()
	ctx := context.Background()
	start := time.Now()
	fields := sampleTasks(*n, start)

	if *publish {
		if !cfg.KafkaEnabled() {
			fmt.Fprintln(os.Stderr, "-publish needs KAFKA_BROKERS")
			os.Exit(1)
		}
		queue.EnsureTopic(ctx, cfg)
		w := queue.NewWriter(cfg)
		err := publishTasks(ctx, w, cfg.SlotName, fields)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Publishing intents failed:", err)
			os.Exit(1)
		}
		fmt.Printf("Done: %d create intents to %s (%v)\n", len(fields), cfg.KafkaTopic, time.Since(start))
		return
	}

	s, closeSlot, err := storage.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Opening slot failed:", err)
		os.Exit(1)
	}
	total, err := seedSlot(ctx, s, fields)
	closeSlot()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Seeding failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Done: %d tasks in %s slot %q (%v)\n", total, cfg.StorageBackend, s.Name(), time.Since(start))
}

// seedSlot appends fields to the tasks already in s and returns the new total.
func seedSlot(ctx context.Context, s slot.Slot, fields []models.TaskFields) (int, error) {
	st, err := store.New(ctx, repository.New(s))
	if err != nil {
		return 0, err
	}
	for _, f := range fields {
		st.Create(ctx, f)
	}
	if err := st.Close(ctx); err != nil {
		return 0, fmt.Errorf("save tasks: %w", err)
	}
	return len(st.Tasks()), nil
}

func publishTasks(ctx context.Context, w queue.MessageWriter, slotName string, fields []models.TaskFields) error {
	for i, f := range fields {
		if err := queue.PublishIntent(ctx, w, slotName, models.CreateIntent{Fields: f}); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return nil
}

func sampleTasks(n int, now time.Time) []models.TaskFields {
	out := make([]models.TaskFields, 0, n)
	for i := range n {
		out = append(out, models.TaskFields{
			Title:       fmt.Sprintf("Task %d", i+1),
			Description: fmt.Sprintf("Description for task %d", i+1),
			Priority:    priorities[i%len(priorities)],
			DueDate:     now.AddDate(0, 0, i%14).Format(time.DateOnly),
			Completed:   i%5 == 0,
		})
	}
	return out
}
