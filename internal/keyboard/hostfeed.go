package keyboard

// HostFeed turns raw bytes read from a real terminal (via
// internal/console.HostConsole) into synthetic PS/2 scan codes posted to a
// Manager, so the shell is usable from an interactive host terminal even
// though there is no physical keyboard controller underneath. Grounded on
// terminal_host.go's raw-byte-to-queue routing, generalized here to also
// reconstruct a scan code instead of routing a raw ASCII byte directly.
type HostFeed struct {
	manager *Manager
}

// NewHostFeed returns a feed that posts decoded events into manager.
func NewHostFeed(manager *Manager) *HostFeed {
	return &HostFeed{manager: manager}
}

var reverseASCII = buildReverseASCII()

type reverseEntry struct {
	code   byte
	shifted bool
}

func buildReverseASCII() map[byte]reverseEntry {
	m := make(map[byte]reverseEntry, len(keyTable)*2)
	for code, entry := range keyTable {
		if entry.base != 0 {
			m[byte(entry.base)] = reverseEntry{code: code}
		}
		if entry.shifted != 0 && entry.shifted != entry.base {
			m[byte(entry.shifted)] = reverseEntry{code: code, shifted: true}
		}
	}
	return m
}

// Feed accepts one raw host byte (already translated by the console host
// adapter: CR -> LF, DEL -> BS) and posts the equivalent PS/2 make/break
// sequence into the bound Manager.
func (h *HostFeed) Feed(b byte) {
	if b >= 1 && b <= 26 && b != '\n' && b != '\t' && b != '\b' {
		// Ctrl-A..Ctrl-Z: reconstruct as Ctrl held + letter.
		letter := byte(b - 1 + 'a')
		h.manager.PostScanCode(scLeftCtrl)
		if e, ok := reverseASCII[letter]; ok {
			h.manager.PostScanCode(e.code)
			h.manager.PostScanCode(e.code | breakMask)
		}
		h.manager.PostScanCode(scLeftCtrl | breakMask)
		return
	}

	e, ok := reverseASCII[b]
	if !ok {
		return
	}
	if e.shifted {
		h.manager.PostScanCode(scLeftShift)
	}
	h.manager.PostScanCode(e.code)
	h.manager.PostScanCode(e.code | breakMask)
	if e.shifted {
		h.manager.PostScanCode(scLeftShift | breakMask)
	}
}
