package channels

// SendNonBlock attempts to send a message without blocking.
// Returns error if the channel is full or closed.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

// Drain receives everything currently buffered in ch without blocking and
// hands each item to fn in arrival order. It returns the number of items
// drained. A closed channel stops the drain.
func Drain[T any](ch <-chan T, fn func(T)) int {
	n := 0
	for {
		select {
		case item, ok := <-ch:
			if !ok {
				return n
			}
			fn(item)
			n++
		default:
			return n
		}
	}
}
