package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"marketplace/storefront/internal/domain"
	"marketplace/storefront/internal/domain/task"
	"marketplace/storefront/internal/queue"
	"marketplace/storefront/internal/repository"
)

// Recounter keeps categories.product_count in step with the number of active
// products, driven by tasks published from product mutations.
type Recounter struct {
	products    repository.ProductRepository
	categories  repository.CategoryRepository
	queue       queue.Queue
	groupName   string
	minIdleTime time.Duration
	maxRetries  int
}

func NewRecounter(
	store *repository.Store,
	queue queue.Queue,
	groupName string,
	minIdleTime int,
	maxRetries int,
) *Recounter {
	return &Recounter{
		products:    store.Products,
		categories:  store.Categories,
		queue:       queue,
		groupName:   groupName,
		minIdleTime: time.Duration(minIdleTime) * time.Second,
		maxRetries:  maxRetries,
	}
}

func (r *Recounter) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	r.runWorkersForStream(ctx, &wg, numWorkers, r.queue.StreamName(task.TypeCategoryRecount), "main")
	r.runWorkersForStream(ctx, &wg, max(1, numWorkers/2), r.queue.StreamName(task.TypeRecountRetry), "retry")

	wg.Wait()
	return nil
}

func (r *Recounter) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for this stream
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(r.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s", workerType)
				claimed, err := r.queue.AutoClaim(ctx, r.groupName, consumer, streamName, r.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimed) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimed), workerType)
				}
				for _, msg := range claimed {
					if err := r.processMessage(ctx, &msg); err != nil {
						log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
					}
				}
			}
		}
	}()

	for i := range numWorkers {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
					msg, err := r.queue.GetTask(ctx, r.groupName, consumer, streamName)
					if err != nil {
						if ctx.Err() == nil {
							log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
						}
						continue
					}
					if msg == nil {
						continue
					}
					if err := r.processMessage(ctx, msg); err != nil {
						log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
					}
				}
			}
		}(i + 1)
	}
}

func (r *Recounter) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return fmt.Errorf("invalid task type in message %s", msg.ID)
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	switch taskType {
	case task.TypeCategoryRecount:
		recountTask, err := task.UnmarshalTask[*task.CategoryRecountTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal recount task data: %w", err)
		}

		if err := r.recount(ctx, recountTask.Category); err != nil {
			r.scheduleRetry(ctx, &task.RecountRetryTask{
				Category: recountTask.Category,
				Error:    err.Error(),
			})
		}

	case task.TypeRecountRetry:
		retryTask, err := task.UnmarshalTask[*task.RecountRetryTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal retry task data: %w", err)
		}

		r.retryRecount(ctx, retryTask)

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	if err := r.queue.AckTask(ctx, r.queue.StreamName(taskType), r.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}

func (r *Recounter) recount(ctx context.Context, category string) error {
	count, err := r.products.CountActive(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to count products in %s: %w", category, err)
	}

	err = r.categories.SetProductCount(ctx, category, count)
	if errors.Is(err, domain.ErrNotFound) {
		log.Debugf("Category %s has no row, skipping recount", category)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to store product count for %s: %w", category, err)
	}

	log.Debugf("🔢 Category %s now has %d active products", category, count)
	return nil
}

func (r *Recounter) retryRecount(ctx context.Context, retryTask *task.RecountRetryTask) {
	retryTask.RetryCount++

	log.Infof("🔄 Retrying recount for %s (attempt %d)", retryTask.Category, retryTask.RetryCount)

	err := r.recount(ctx, retryTask.Category)
	if err == nil {
		log.Infof("✅ Recounted %s after %d attempts", retryTask.Category, retryTask.RetryCount)
		return
	}

	if retryTask.RetryCount >= r.maxRetries {
		log.Errorf("❌ Giving up on recount for %s after %d attempts: %v",
			retryTask.Category, retryTask.RetryCount, err)
		return
	}

	r.scheduleRetry(ctx, &task.RecountRetryTask{
		Category:   retryTask.Category,
		RetryCount: retryTask.RetryCount,
		Error:      err.Error(),
	})
}

func (r *Recounter) scheduleRetry(ctx context.Context, retryTask *task.RecountRetryTask) {
	if _, err := r.queue.AddTask(ctx, retryTask); err != nil {
		log.Errorf("❌ Failed to add retry task for %s: %v", retryTask.Category, err)
		return
	}
	log.Warnf("🔄 Added %s to retry queue due to error: %s", retryTask.Category, retryTask.Error)
}
