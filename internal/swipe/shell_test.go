package swipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muhammadolammi/icanmatch/internal/recommend"
	"github.com/muhammadolammi/icanmatch/internal/swipe"
)

func TestRender(t *testing.T) {
	c, _ := fixture(t)
	stack := []recommend.Recommendation{jobRec(t, c, 2), certRec(t, c, 2), jobRec(t, c, 5)}

	t.Run("loading wins", func(t *testing.T) {
		s := swipe.Render(swipe.State{Loading: true, Stack: stack})
		assert.Equal(t, swipe.ViewLoading, s.View)
		assert.Empty(t, s.Cards)
		assert.False(t, s.CanReset)
	})

	t.Run("empty offers reset", func(t *testing.T) {
		s := swipe.Render(swipe.State{})
		assert.Equal(t, swipe.ViewEmpty, s.View)
		assert.True(t, s.CanReset)
		assert.NotNil(t, s.Cards)
	})

	t.Run("stack", func(t *testing.T) {
		s := swipe.Render(swipe.State{Stack: stack})
		assert.Equal(t, swipe.ViewStack, s.View)
		assert.Len(t, s.Cards, 3)
		for i, card := range s.Cards {
			assert.Equal(t, i, card.ZIndex)
			assert.Equal(t, i == 2, card.Active)
		}
		assert.Equal(t, "job-5", s.Cards[2].Key)
	})
}
