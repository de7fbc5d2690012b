package async

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LionsAd/commerce/pkg/logger"
)

// Task 表示一个异步任务
type Task struct {
	ID       string
	Name     string
	Handler  func(ctx context.Context) error
	Timeout  time.Duration
	RetryMax int
}

// Result 表示任务执行结果
type Result struct {
	TaskID    string
	Completed bool
	Error     error
	StartTime time.Time
	EndTime   time.Time
}

// DefaultMaxResults 默认保留的任务结果数量
const DefaultMaxResults = 1024

// Worker 异步任务处理器
type Worker struct {
	taskQueue  chan Task
	results    map[string]Result
	order      []string // 结果写入顺序，超出 maxResults 时淘汰最早的
	maxResults int
	mu         sync.RWMutex
	logger     *logger.Logger
	wg         sync.WaitGroup
	seq        atomic.Uint64
	backoff    time.Duration
	stopOnce   sync.Once
}

// NewWorker 创建一个新的工作器
func NewWorker(queueSize int, logger *logger.Logger) *Worker {
	return &Worker{
		taskQueue:  make(chan Task, queueSize),
		results:    make(map[string]Result),
		maxResults: DefaultMaxResults,
		logger:     logger,
		backoff:    time.Second,
	}
}

// Start 启动 numWorkers 个工作协程
func (w *Worker) Start(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.processTask()
	}
}

// Stop 关闭队列并等待已入队任务执行完毕
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.taskQueue)
	})
	w.wg.Wait()
}

// Submit 将任务加入队列并返回任务ID
func (w *Worker) Submit(task Task) string {
	if task.ID == "" {
		task.ID = fmt.Sprintf("task_%d_%d", time.Now().UnixNano(), w.seq.Add(1))
	}
	w.taskQueue <- task
	return task.ID
}

// AddTask 以默认参数提交一个任务
func (w *Worker) AddTask(name string, handler func(ctx context.Context) error) string {
	return w.Submit(Task{Name: name, Handler: handler, Timeout: 10 * time.Second})
}

// GetResult 获取任务结果，只保留最近 maxResults 个任务的结果
func (w *Worker) GetResult(taskID string) (Result, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result, exists := w.results[taskID]
	return result, exists
}

func (w *Worker) processTask() {
	defer w.wg.Done()

	for task := range w.taskQueue {
		w.executeTask(task)
	}
}

func (w *Worker) executeTask(task Task) {
	result := Result{
		TaskID:    task.ID,
		StartTime: time.Now(),
	}

	ctx := context.Background()
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	var err error
	for attempt := 0; attempt <= task.RetryMax; attempt++ {
		if attempt > 0 {
			w.logger.Info("重试异步任务", "task_id", task.ID, "task", task.Name, "attempt", attempt)
			time.Sleep(w.backoff * time.Duration(attempt))
		}

		err = task.Handler(ctx)
		if err == nil {
			break
		}

		w.logger.Warn("异步任务执行失败", "task_id", task.ID, "task", task.Name, "attempt", attempt, "error", err)
	}

	result.EndTime = time.Now()
	result.Error = err
	result.Completed = err == nil

	w.storeResult(result)

	if err != nil {
		w.logger.Error("异步任务最终失败", "task_id", task.ID, "task", task.Name, "error", err)
	} else {
		w.logger.Debug("异步任务完成", "task_id", task.ID, "task", task.Name, "duration", result.EndTime.Sub(result.StartTime))
	}
}

func (w *Worker) storeResult(result Result) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.results[result.TaskID]; !exists {
		w.order = append(w.order, result.TaskID)
	}
	w.results[result.TaskID] = result

	for len(w.order) > w.maxResults {
		delete(w.results, w.order[0])
		w.order = w.order[1:]
	}
}
