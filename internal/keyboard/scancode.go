package keyboard

// SpecialKey names non-ASCII keys the translator can produce, standing in
// for keyboard.rs's KeySpecial enum.
type SpecialKey int

const (
	SpecialNone SpecialKey = iota
	SpecialUp
	SpecialDown
	SpecialLeft
	SpecialRight
	SpecialHome
	SpecialEnd
	SpecialPageUp
	SpecialPageDown
	SpecialInsert
	SpecialDelete
	SpecialF1
	SpecialF2
	SpecialF3
	SpecialF4
	SpecialF5
	SpecialF6
	SpecialF7
	SpecialF8
	SpecialF9
	SpecialF10
	SpecialF11
	SpecialF12
	SpecialPause
)

const (
	breakMask  = 0x80
	extendByte = 0xE0
	pauseByte  = 0xE1
)

// scan code (set 1, make code) -> base/shifted rune, transcribed from
// keyboard.rs's KeyMappingTable.
type keyEntry struct {
	base    rune
	shifted rune
}

var keyTable = map[byte]keyEntry{
	0x02: {'1', '!'},
	0x03: {'2', '@'},
	0x04: {'3', '#'},
	0x05: {'4', '$'},
	0x06: {'5', '%'},
	0x07: {'6', '^'},
	0x08: {'7', '&'},
	0x09: {'8', '*'},
	0x0A: {'9', '('},
	0x0B: {'0', ')'},
	0x0C: {'-', '_'},
	0x0D: {'=', '+'},
	0x0E: {'\b', '\b'}, // backspace
	0x0F: {'\t', '\t'},
	0x10: {'q', 'Q'},
	0x11: {'w', 'W'},
	0x12: {'e', 'E'},
	0x13: {'r', 'R'},
	0x14: {'t', 'T'},
	0x15: {'y', 'Y'},
	0x16: {'u', 'U'},
	0x17: {'i', 'I'},
	0x18: {'o', 'O'},
	0x19: {'p', 'P'},
	0x1A: {'[', '{'},
	0x1B: {']', '}'},
	0x1C: {'\n', '\n'}, // enter
	0x1E: {'a', 'A'},
	0x1F: {'s', 'S'},
	0x20: {'d', 'D'},
	0x21: {'f', 'F'},
	0x22: {'g', 'G'},
	0x23: {'h', 'H'},
	0x24: {'j', 'J'},
	0x25: {'k', 'K'},
	0x26: {'l', 'L'},
	0x27: {';', ':'},
	0x28: {'\'', '"'},
	0x29: {'`', '~'},
	0x2B: {'\\', '|'},
	0x2C: {'z', 'Z'},
	0x2D: {'x', 'X'},
	0x2E: {'c', 'C'},
	0x2F: {'v', 'V'},
	0x30: {'b', 'B'},
	0x31: {'n', 'N'},
	0x32: {'m', 'M'},
	0x33: {',', '<'},
	0x34: {'.', '>'},
	0x35: {'/', '?'},
	0x37: {'*', '*'}, // keypad *
	0x39: {' ', ' '}, // space
	0x4A: {'-', '-'}, // keypad -
	0x4E: {'+', '+'}, // keypad +
}

// modifier/lock keys, tracked as state rather than producing characters.
const (
	scLeftShift  = 0x2A
	scRightShift = 0x36
	scLeftCtrl   = 0x1D
	scLeftAlt    = 0x38
	scCapsLock   = 0x3A
	scNumLock    = 0x45
	scScrollLock = 0x46
)

var functionKeys = map[byte]SpecialKey{
	0x3B: SpecialF1,
	0x3C: SpecialF2,
	0x3D: SpecialF3,
	0x3E: SpecialF4,
	0x3F: SpecialF5,
	0x40: SpecialF6,
	0x41: SpecialF7,
	0x42: SpecialF8,
	0x43: SpecialF9,
	0x44: SpecialF10,
	0x57: SpecialF11,
	0x58: SpecialF12,
}

// extended (0xE0-prefixed) make codes for cursor/navigation keys.
var extendedKeys = map[byte]SpecialKey{
	0x48: SpecialUp,
	0x50: SpecialDown,
	0x4B: SpecialLeft,
	0x4D: SpecialRight,
	0x47: SpecialHome,
	0x4F: SpecialEnd,
	0x49: SpecialPageUp,
	0x51: SpecialPageDown,
	0x52: SpecialInsert,
	0x53: SpecialDelete,
}

// numpad digits share scan codes with the dedicated cursor-key cluster in
// extendedKeys above: the controller only adds the 0xE0 prefix for the
// cluster, so an unprefixed code here came from the physical numpad, and
// NumLock selects between the digit below and the navigation meaning the
// same byte has in extendedKeys. 0x4C (numpad 5) has no navigation
// counterpart and carries SpecialNone when NumLock is off.
var numpadDigits = map[byte]rune{
	0x47: '7',
	0x48: '8',
	0x49: '9',
	0x4B: '4',
	0x4C: '5',
	0x4D: '6',
	0x4F: '1',
	0x50: '2',
	0x51: '3',
	0x52: '0',
	0x53: '.',
}

func isLetterEntry(code byte) bool {
	e, ok := keyTable[code]
	return ok && e.base >= 'a' && e.base <= 'z'
}
