package channels_test

import (
	"testing"

	"github.com/alkime/voicescribe/pkg/channels"
	"github.com/stretchr/testify/assert"
)

func TestSendNonBlock(t *testing.T) {
	t.Run("success - buffered channel with capacity", func(t *testing.T) {
		ch := make(chan int, 2)
		err := channels.SendNonBlock(ch, 42)
		assert.NoError(t, err)
		assert.Equal(t, 42, <-ch)
	})

	t.Run("full - buffered channel", func(t *testing.T) {
		ch := make(chan int, 1)
		ch <- 1
		err := channels.SendNonBlock(ch, 42)
		assert.ErrorIs(t, err, channels.ErrChannelFull)
	})

	t.Run("full - unbuffered with no receiver", func(t *testing.T) {
		ch := make(chan int)
		err := channels.SendNonBlock(ch, 42)
		assert.ErrorIs(t, err, channels.ErrChannelFull)
	})

	t.Run("closed channel", func(t *testing.T) {
		ch := make(chan int, 2)
		ch <- 1
		close(ch)
		err := channels.SendNonBlock(ch, 42)
		assert.ErrorIs(t, err, channels.ErrChannelClosed)
		assert.Equal(t, 1, <-ch)
	})
}

func TestDrain(t *testing.T) {
	t.Run("drains buffered items in order", func(t *testing.T) {
		ch := make(chan []byte, 4)
		ch <- []byte("a")
		ch <- []byte("b")
		ch <- []byte("c")

		var got []string
		n := channels.Drain(ch, func(b []byte) { got = append(got, string(b)) })

		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})

	t.Run("empty channel returns immediately", func(t *testing.T) {
		ch := make(chan int, 1)
		n := channels.Drain(ch, func(int) { t.Fatal("unexpected item") })
		assert.Zero(t, n)
	})

	t.Run("closed channel stops drain", func(t *testing.T) {
		ch := make(chan int, 2)
		ch <- 7
		close(ch)

		var got []int
		n := channels.Drain(ch, func(i int) { got = append(got, i) })
		assert.Equal(t, 1, n)
		assert.Equal(t, []int{7}, got)
	})
}
