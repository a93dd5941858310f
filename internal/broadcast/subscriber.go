package broadcast

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber логическое членство одного соединения в broadcast-группах.
// Канал send никогда не закрывается — писатели делают только неблокирующую
// отправку; жизненный цикл завершается закрытием done.
type Subscriber struct {
	ID uuid.UUID

	send chan []byte
	done chan struct{}

	closeOnce sync.Once
}

func NewSubscriber(buffer int) *Subscriber {
	return &Subscriber{
		ID:   uuid.New(),
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Messages канал исходящих кадров для write-пампа соединения.
func (s *Subscriber) Messages() <-chan []byte {
	return s.send
}

// Done закрывается при отключении подписчика.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Push неблокирующая адресная отправка кадра, мимо групп. При полном буфере
// кадр теряется, возвращается false.
func (s *Subscriber) Push(payload []byte) bool {
	select {
	case s.send <- payload:
		return true
	default:
		return false
	}
}

func (s *Subscriber) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
