package engine

import (
	"container/heap"
	"time"

	"github.com/ChrisWaycott/mini-chalice/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Scheduler - очередь отложенных задач на виртуальных часах.
// Время двигает только Advance, поэтому тесты детерминированы,
// а хост-цикл просто передает прошедшее время кадра.
type Scheduler struct {
	now     time.Duration
	queue   TaskQueue
	itemMap map[TaskID]*Task
	nextID  TaskID
	nextSeq uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		queue:   make(TaskQueue, 0),
		itemMap: make(map[TaskID]*Task),
	}
}

// Now - текущее виртуальное время.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After ставит fn на выполнение через delay от текущего времени.
func (s *Scheduler) After(delay time.Duration, name string, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.nextSeq++
	task := &Task{
		ID:   s.nextID,
		Name: name,
		Due:  s.now + delay,
		seq:  s.nextSeq,
		fn:   fn,
		done: make(chan struct{}),
	}

	heap.Push(&s.queue, task)
	s.itemMap[task.ID] = task

	logger.Log.WithFields(logrus.Fields{
		"component": "scheduler",
		"task_id":   task.ID,
		"task":      name,
		"due":       task.Due,
	}).Debug("Task scheduled")
	return task
}

// Cancel снимает задачу, fn не вызывается. false - задачи уже нет.
func (s *Scheduler) Cancel(id TaskID) bool {
	task, ok := s.itemMap[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, task.index)
	delete(s.itemMap, id)
	task.canceled = true
	close(task.done)
	return true
}

// CancelAll снимает все задачи и возвращает их количество.
func (s *Scheduler) CancelAll() int {
	n := 0
	for s.queue.Len() > 0 {
		task := heap.Pop(&s.queue).(*Task)
		delete(s.itemMap, task.ID)
		task.canceled = true
		close(task.done)
		n++
	}
	return n
}

// Advance двигает часы на dt и выполняет созревшие задачи по порядку.
// Задачи, поставленные изнутри и созревающие в том же окне, тоже выполняются.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	for s.queue.Len() > 0 && s.queue[0].Due <= target {
		task := heap.Pop(&s.queue).(*Task)
		delete(s.itemMap, task.ID)

		// Вложенные задачи отсчитываются от срока текущей
		s.now = task.Due
		task.fn()
		close(task.done)
		fired++
	}

	s.now = target
	return fired
}

// RunUntilIdle прокручивает часы до опустошения очереди, не больше limit задач.
func (s *Scheduler) RunUntilIdle(limit int) int {
	fired := 0
	for s.queue.Len() > 0 && fired < limit {
		fired += s.Advance(s.queue[0].Due - s.now)
	}
	return fired
}

// NextDue - срок ближайшей задачи.
func (s *Scheduler) NextDue() (time.Duration, bool) {
	if s.queue.Len() == 0 {
		return 0, false
	}
	return s.queue[0].Due, true
}

func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (s *Scheduler) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for _, item := range s.queue {
		result = append(result, map[string]interface{}{
			"id":    item.ID,
			"name":  item.Name,
			"due":   item.Due.String(),
			"index": item.index,
		})
	}
	return result
}
