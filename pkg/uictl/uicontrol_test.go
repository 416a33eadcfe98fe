package uictl_test

import (
	"testing"

	"github.com/alkime/voicescribe/pkg/uictl"
	"github.com/stretchr/testify/assert"
)

func TestFuncAdapters(t *testing.T) {
	var levels uictl.Levels[int16] = uictl.LevelsFunc[int16](func() []int16 {
		return []int16{1, -2, 3}
	})
	assert.Equal(t, []int16{1, -2, 3}, levels.Read())

	n := int64(0)
	var dial uictl.Dial[int64] = uictl.DialFunc[int64](func() int64 {
		n++
		return n
	})
	assert.Equal(t, int64(1), dial.Read())
	assert.Equal(t, int64(2), dial.Read())
}
