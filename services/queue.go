package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"yatube/db"
	"yatube/models"

	"github.com/go-redis/redis/v8"
)

const (
	FOLLOWER_NOTIFY_QUEUE = "follower_notify_queue"
	QUEUE_WORKER_COUNT    = 5
)

// FollowerNotifyTask - задача оповещения подписчиков о новом посте
type FollowerNotifyTask struct {
	Post models.Post `json:"post"`
}

type QueueService struct{}

func NewQueueService() *QueueService {
	return &QueueService{}
}

// StartWorkers запускает воркеры для обработки очереди оповещений
func (qs *QueueService) StartWorkers(ctx context.Context) {
	for i := 0; i < QUEUE_WORKER_COUNT; i++ {
		go qs.worker(ctx, i)
	}
}

func (qs *QueueService) worker(ctx context.Context, workerID int) {
	log.Printf("Follower notify worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Follower notify worker %d stopping", workerID)
			return
		default:
			result, err := RedisClient.BLPop(ctx, 5*time.Second, FOLLOWER_NOTIFY_QUEUE).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				log.Printf("Worker %d error getting task: %v", workerID, err)
				time.Sleep(time.Second)
				continue
			}

			if len(result) < 2 {
				continue
			}

			var task FollowerNotifyTask
			if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
				log.Printf("Worker %d error unmarshaling task: %v", workerID, err)
				continue
			}

			NotifyFollowers(ctx, &task.Post)
		}
	}
}

// EnqueueFollowerNotify добавляет задачу оповещения подписчиков в очередь
func (qs *QueueService) EnqueueFollowerNotify(ctx context.Context, post models.Post) error {
	if RedisClient == nil {
		return fmt.Errorf("redis not available")
	}

	taskData, err := json.Marshal(FollowerNotifyTask{Post: post})
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := RedisClient.RPush(ctx, FOLLOWER_NOTIFY_QUEUE, taskData).Err(); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

// GetQueueStats возвращает длину очереди оповещений
func (qs *QueueService) GetQueueStats(ctx context.Context) (int64, error) {
	if RedisClient == nil {
		return 0, fmt.Errorf("redis not available")
	}
	return RedisClient.LLen(ctx, FOLLOWER_NOTIFY_QUEUE).Val(), nil
}

// NotifyFollowers рассылает событие о новом посте всем подписчикам автора:
// через RabbitMQ, а при его недоступности - напрямую в WebSocket
func NotifyFollowers(ctx context.Context, post *models.Post) {
	var author models.User
	if err := db.GetReadOnlyDB(ctx).First(&author, post.AuthorID).Error; err != nil {
		log.Printf("NotifyFollowers: failed to get author %d: %v", post.AuthorID, err)
		return
	}

	var followerIDs []int64
	err := db.GetReadOnlyDB(ctx).Model(&models.Follow{}).
		Where("author_id = ?", post.AuthorID).
		Pluck("follower_id", &followerIDs).Error
	if err != nil {
		log.Printf("NotifyFollowers: failed to get followers of %d: %v", post.AuthorID, err)
		return
	}

	for _, followerID := range followerIDs {
		event := FeedEvent{
			UserID:    followerID,
			PostID:    post.ID,
			AuthorID:  post.AuthorID,
			Author:    author.Username,
			Preview:   post.Preview(),
			CreatedAt: post.CreatedAt,
		}
		if err := PublishFeedEvent(ctx, event); err != nil {
			sendDirectWSEvent(event)
		}
	}
}

// sendDirectWSEvent отправляет событие в WebSocket напрямую (fallback для RabbitMQ)
func sendDirectWSEvent(event FeedEvent) {
	pushData, err := json.Marshal(newPostPush(event))
	if err != nil {
		log.Printf("failed to marshal push message: %v", err)
		return
	}
	GlobalWSConnManager.Send(event.UserID, pushData)
}
