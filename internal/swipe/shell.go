package swipe

import "github.com/muhammadolammi/icanmatch/internal/recommend"

// View selects which of the three screens is shown.
type View string

const (
	ViewLoading View = "loading"
	ViewStack   View = "stack"
	ViewEmpty   View = "empty"
)

type CardView struct {
	Key            string                   `json:"key"`
	ZIndex         int                      `json:"zIndex"`
	Active         bool                     `json:"active"`
	Recommendation recommend.Recommendation `json:"recommendation"`
}

type Screen struct {
	View     View       `json:"view"`
	Cards    []CardView `json:"cards"`
	CanReset bool       `json:"canReset"`
}

// Render maps controller state to a screen. Loading wins over everything;
// cards are drawn bottom to top with z-index equal to their stack position
// and only the last one active.
func Render(s State) Screen {
	switch {
	case s.Loading:
		return Screen{View: ViewLoading, Cards: []CardView{}}
	case len(s.Stack) == 0:
		return Screen{View: ViewEmpty, Cards: []CardView{}, CanReset: true}
	}

	cards := make([]CardView, len(s.Stack))
	for i, rec := range s.Stack {
		cards[i] = CardView{
			Key:            rec.Key().String(),
			ZIndex:         i,
			Active:         i == len(s.Stack)-1,
			Recommendation: rec,
		}
	}
	return Screen{View: ViewStack, Cards: cards}
}
