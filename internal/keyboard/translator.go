// Package keyboard implements the PS/2 scan-code-to-ASCII state machine
// and controller handshake, transcribed from keyboard.rs, plus a queueing
// Manager and a host-stdin feed adapter for interactive use.
package keyboard

// KeyData is one decoded key event, combining an ASCII byte (when
// printable), a special key identity (when not), and whether this is a
// press or a release.
type KeyData struct {
	ASCII    byte
	Special  SpecialKey
	Down     bool
	Combined bool // this event's scan code arrived with a preceding 0xE0 prefix
}

// Translator holds modifier/lock state across calls to Feed, the same
// persistent state keyboard.rs keeps in its static combination-key flags.
type Translator struct {
	shift    bool
	ctrl     bool
	alt      bool
	capsLock bool
	numLock  bool

	expectExtended bool
	expectPause    int // remaining bytes of a pause (0xE1) sequence to swallow
}

// NewTranslator returns a translator with no modifiers held.
func NewTranslator() *Translator {
	return &Translator{}
}

// isUseCombinedCode reports whether code (following an 0xE0 prefix) is one
// this translator turns into a SpecialKey rather than a plain character,
// mirroring keyboard.rs's IsUseCombinedCode predicate.
func isUseCombinedCode(code byte) bool {
	_, ok := extendedKeys[code&^breakMask]
	return ok
}

// Feed processes one raw scan-code byte and returns a decoded event. ok is
// false when the byte was consumed internally (a prefix byte, or a
// modifier-only make/break code) and produced no user-visible event.
func (t *Translator) Feed(b byte) (KeyData, bool) {
	if t.expectPause > 0 {
		t.expectPause--
		return KeyData{}, false
	}
	if b == pauseByte {
		// Pause/Break sends a fixed 6-byte sequence; the leading byte
		// produces the PAUSE-down event immediately, and the remaining
		// two bytes of this model's sequence are swallowed.
		t.expectPause = 2
		return KeyData{Special: SpecialPause, Down: true}, true
	}
	if b == extendByte {
		t.expectExtended = true
		return KeyData{}, false
	}

	extended := t.expectExtended
	t.expectExtended = false

	down := b&breakMask == 0
	code := b &^ breakMask

	if extended && isUseCombinedCode(code) {
		if !down {
			return KeyData{}, false
		}
		return KeyData{Special: extendedKeys[code], Down: true, Combined: true}, true
	}

	if !extended {
		if digit, ok := numpadDigits[code]; ok {
			if !down {
				return KeyData{}, false
			}
			if t.numLock {
				return KeyData{ASCII: byte(digit), Down: true}, true
			}
			return KeyData{Special: extendedKeys[code], Down: true}, true
		}
	}

	if sk, ok := functionKeys[code]; ok {
		if !down {
			return KeyData{}, false
		}
		return KeyData{Special: sk, Down: true, Combined: extended}, true
	}

	if t.updateLocksAndModifiers(code, down) {
		return KeyData{}, false
	}

	entry, ok := keyTable[code]
	if !ok {
		return KeyData{}, false
	}
	if !down {
		return KeyData{}, false
	}

	ascii := entry.base
	useShifted := t.shift
	if isLetterEntry(code) && t.capsLock {
		useShifted = !useShifted
	}
	if useShifted {
		ascii = entry.shifted
	}
	if t.ctrl && ascii >= 'a' && ascii <= 'z' {
		ascii = rune(ascii - 'a' + 1) // Ctrl-A..Ctrl-Z -> 0x01..0x1A
	}

	return KeyData{ASCII: byte(ascii), Down: true, Combined: extended}, true
}

// updateLocksAndModifiers applies code as a modifier/lock transition if it
// is one, returning true if it consumed the code (so the caller shouldn't
// also look it up in keyTable), mirroring
// UpdateCombinationKeyStatusAndLED's role in keyboard.rs.
func (t *Translator) updateLocksAndModifiers(code byte, down bool) bool {
	switch code {
	case scLeftShift, scRightShift:
		t.shift = down
		return true
	case scLeftCtrl:
		t.ctrl = down
		return true
	case scLeftAlt:
		t.alt = down
		return true
	case scCapsLock:
		if down {
			t.capsLock = !t.capsLock
		}
		return true
	case scNumLock:
		if down {
			t.numLock = !t.numLock
		}
		return true
	case scScrollLock:
		return true
	}
	return false
}

// Modifiers reports the currently held modifier state, used by the shell
// for things like Ctrl-C handling.
func (t *Translator) Modifiers() (shift, ctrl, alt, capsLock bool) {
	return t.shift, t.ctrl, t.alt, t.capsLock
}
