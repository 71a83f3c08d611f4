//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func (in *hostInput) poll() {
	key := func(k ebiten.Key, code KeyCode) {
		if inpututil.IsKeyJustPressed(k) {
			in.push(Event{Type: EventKey, Code: code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k) {
			in.push(Event{Type: EventKey, Code: code, Press: false})
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		in.push(Event{Type: EventKey, Press: true, Rune: r})
	}

	key(ebiten.KeyEnter, KeyEnter)
	key(ebiten.KeyEscape, KeyEscape)
	key(ebiten.KeySpace, KeySpace)

	if ebiten.IsWindowBeingClosed() {
		in.quit()
	}
}
