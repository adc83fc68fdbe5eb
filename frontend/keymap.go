package frontend

import "github.com/pkg/errors"

// Layout maps host key identities to keypad symbols.
type Layout[K comparable] map[K]Key

// NewLayout builds a layout from a table in keypad order: keys[i] maps to
// Key(i). A host key may appear only once.
func NewLayout[K comparable](keys [KeyCount]K) (Layout[K], error) {
	l := make(Layout[K], KeyCount)
	for i, k := range keys {
		if prev, ok := l[k]; ok {
			return nil, errors.Errorf("host key %v bound to both %X and %X", k, prev, i)
		}
		l[k] = Key(i)
	}
	return l, nil
}

// Translator forwards host key events to the engine keypad.
type Translator[K comparable] struct {
	engine Engine
	layout Layout[K]
}

// NewTranslator returns a translator using layout.
func NewTranslator[K comparable](engine Engine, layout Layout[K]) *Translator[K] {
	return &Translator[K]{engine: engine, layout: layout}
}

// OnKey reports a press or release of host key k. Keys outside the layout are
// ignored.
func (t *Translator[K]) OnKey(k K, pressed bool) {
	if key, ok := t.layout[k]; ok {
		t.engine.SetKey(key, pressed)
	}
}

// Keys returns the host keys the translator listens to.
func (t *Translator[K]) Keys() []K {
	keys := make([]K, 0, len(t.layout))
	for k := range t.layout {
		keys = append(keys, k)
	}
	return keys
}
