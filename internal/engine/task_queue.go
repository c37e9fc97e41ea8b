package engine

import "time"

// TaskID - идентификатор отложенной задачи
type TaskID uint64

// Task - отложенная задача на виртуальных часах контроллера.
// Done закрывается, когда задача выполнена или отменена.
type Task struct {
	ID   TaskID
	Name string
	Due  time.Duration // Момент срабатывания. Чем меньше, тем раньше.

	seq      uint64 // Порядок постановки, разрывает ничьи по Due
	index    int    // Индекс в куче (нужен для remove)
	fn       func()
	done     chan struct{}
	canceled bool
}

func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) Canceled() bool { return t.canceled }

// Finished - задача выполнена или отменена.
func (t *Task) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// TaskQueue реализует heap.Interface и хранит задачи
type TaskQueue []*Task

func (pq TaskQueue) Len() int { return len(pq) }

func (pq TaskQueue) Less(i, j int) bool {
	// MinHeap по Due, при равенстве - кто раньше поставлен
	if pq[i].Due != pq[j].Due {
		return pq[i].Due < pq[j].Due
	}
	return pq[i].seq < pq[j].seq
}

func (pq TaskQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *TaskQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*Task)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *TaskQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}
