package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Shiki0138/sms-sub001/config"
	"github.com/Shiki0138/sms-sub001/services/optimizer"
	"github.com/Shiki0138/sms-sub001/services/tasks"
	"github.com/Shiki0138/sms-sub001/utils"
)

const (
	// forecastCacheTTL covers one precompute cycle plus slack.
	forecastCacheTTL = 26 * time.Hour
	// forecastInterval is how far out each run schedules its successor.
	forecastInterval = 24 * time.Hour
)

// InitForecastWorker runs the async worker that precomputes demand forecasts
// and caches them in Redis for dashboard reads.
func InitForecastWorker(svc optimizer.OptimizerService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisForecastQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeForecastPrecompute, handleForecastTask(svc, enqueueForecast))

	go func() {
		log.Println("[ForecastWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[ForecastWorker] failed to start worker: %v", err)
		}
	}()
}

// EnqueueForecastPrecompute schedules the initial precompute run for
// immediate processing. Each run then enqueues its own successor a day out,
// so the cache stays warm for as long as the worker is up.
func EnqueueForecastPrecompute(horizonDays int) error {
	return enqueueForecast(horizonDays, 0)
}

func enqueueForecast(horizonDays int, delay time.Duration) error {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisForecastQueueDB,
	})
	defer client.Close()

	task, err := tasks.NewForecastPrecomputeTask(tasks.ForecastPayload{HorizonDays: horizonDays})
	if err != nil {
		return err
	}
	var opts []asynq.Option
	if delay > 0 {
		opts = append(opts, asynq.ProcessIn(delay))
	}
	_, err = client.Enqueue(task, opts...)
	return err
}

func handleForecastTask(svc optimizer.OptimizerService, reenqueue func(int, time.Duration) error) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ForecastPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ForecastWorker] invalid payload: %v", err)
			return err
		}
		if p.HorizonDays <= 0 {
			p.HorizonDays = 7
		}

		start := time.Now()
		predictions, err := svc.PredictDemand(start, start.AddDate(0, 0, p.HorizonDays-1))
		if err != nil {
			log.Printf("[ForecastWorker] demand prediction failed: %v", err)
			return err
		}

		cache := utils.GetCacheClient()
		for _, prediction := range predictions {
			data, err := json.Marshal(prediction)
			if err != nil {
				return err
			}
			key := "forecast:daily:" + prediction.Date
			if err := cache.Set(ctx, key, data, forecastCacheTTL).Err(); err != nil {
				log.Printf("[ForecastWorker] failed to cache %s: %v", key, err)
				return err
			}
		}
		log.Printf("[ForecastWorker] cached %d daily forecasts", len(predictions))

		// Schedule the next run. A failed schedule does not fail the task:
		// the forecasts above are already cached.
		if err := reenqueue(p.HorizonDays, forecastInterval); err != nil {
			log.Printf("[ForecastWorker] failed to schedule next run: %v", err)
		}
		return nil
	}
}
