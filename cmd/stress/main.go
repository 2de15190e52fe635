// Command stress fires concurrent orders at a freshly inserted lesson and
// verifies that seats are never over-sold: with N seats and M > N competing
// single-seat orders, exactly N must succeed and the lesson must end at 0.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"afterschool/internal/adapter/storage"
	"afterschool/internal/config"
	"afterschool/internal/core/domain"
	"afterschool/internal/core/service"
)

const (
	initialSpace  = 20
	totalRequests = 50
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	mongoAdapter := storage.NewMongoAdapter(client.Database(cfg.MongoDB))
	redisAdapter := storage.NewRedisAdapter(rdb)
	orderService := service.NewOrderService(mongoAdapter, mongoAdapter, redisAdapter, zap.NewNop())

	lessonID, err := mongoAdapter.InsertLesson(ctx, domain.Lesson{
		Subject:  "Stress Run",
		Location: "Leeds",
		Price:    1,
		Space:    initialSpace,
		Icon:     "fa-bolt",
	})
	if err != nil {
		log.Fatalf("failed to insert lesson: %v", err)
	}

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := orderService.Create(ctx, service.OrderInput{
				RequestID: uuid.NewString(),
				Name:      "Load Test",
				Phone:     "07000000000",
				Items:     []service.OrderItemInput{{LessonID: lessonID, Quantity: 1}},
			})
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Space:    %d\n", initialSpace)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == int32(initialSpace) && fail == int32(totalRequests-initialSpace) {
		fmt.Printf("PASS: Exactly %d orders succeeded, %d failed\n", initialSpace, totalRequests-initialSpace)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d fail, got %d/%d\n",
			initialSpace, totalRequests-initialSpace, success, fail)
	}

	lesson, err := mongoAdapter.GetLesson(ctx, lessonID)
	if err != nil {
		log.Fatalf("failed to read back lesson: %v", err)
	}
	fmt.Printf("Final Space: %d\n", lesson.Space)

	if lesson.Space == 0 {
		fmt.Println("PASS: Space depleted to 0")
	} else {
		fmt.Printf("FAIL: Expected space 0, got %d\n", lesson.Space)
	}
}
