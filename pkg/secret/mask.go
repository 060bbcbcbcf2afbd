package secret

// MaskSeparator replaces the hidden part of a masked secret.
const MaskSeparator = "******"

// Mask returns a display form of s that shows at most two leading and two
// trailing characters. Secrets shorter than four characters show less, and
// never every character.
func Mask(s string) string {
	r := []rune(s)
	var head, tail int
	switch n := len(r); {
	case n >= 4:
		head, tail = 2, 2
	case n == 3:
		head, tail = 1, 1
	case n == 2:
		head = 1
	}
	return string(r[:head]) + MaskSeparator + string(r[len(r)-tail:])
}
