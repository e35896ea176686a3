package main

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/hibiken/asynq"

	"closetbuddyapi/dbhelper"
	"closetbuddyapi/services"
	"closetbuddyapi/tasks"
)

func NewStyleRefreshTask() *asynq.Task {
	return asynq.NewTask("analyze:refresh", []byte{})
}

func runScheduler() {

	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")}, &asynq.SchedulerOpts{

		LogLevel: asynq.InfoLevel,
	})

	scheduled := []struct {
		cron string
		task *asynq.Task
		desc string
	}{
		{
			cron: "0 5 * * *", // 5:00 AM daily, before the morning usage peak
			task: NewStyleRefreshTask(),
			desc: "Daily style profile refresh",
		},
	}

	for _, t := range scheduled {
		entryID, err := scheduler.Register(t.cron, t.task)
		if err != nil {
			log.Fatalf("Failed to register task '%s': %v", t.desc, err)
		}
		log.Printf("Registered task '%s' with ID: %s, cron: %s", t.desc, entryID, t.cron)
	}

	log.Println("Starting scheduler...")
	if err := scheduler.Run(); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}

func main() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")},
		asynq.Config{Concurrency: 10, Queues: map[string]int{
			"analyze": 7,
		}},
	)
	stylist := services.NewGoogleStylist()
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v\n", err)
		return
	}
	mux := asynq.NewServeMux()
	db := dbhelper.SetupDB()
	mux.HandleFunc(tasks.TypeStyleAnalysis, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleStyleAnalysisTask(ctx, t, db, stylist, app)
	})
	mux.HandleFunc("analyze:refresh", func(ctx context.Context, t *asynq.Task) error {
		return tasks.ScheduledStyleRefreshTask(ctx, t, db)
	})

	go runScheduler()
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
