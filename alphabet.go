package amsid

const (
	// URLAlphabet contains uppercase letters, lowercase letters, digits, hyphen and underscore.
	URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	// AlphabetLen is the length of URLAlphabet (64).
	AlphabetLen = len(URLAlphabet)

	// MaxAlphabetLen is the largest custom alphabet a random byte can index.
	MaxAlphabetLen = 256

	// DefaultSize is the length of Nanoid identifiers, ~126 bits of entropy.
	DefaultSize = 21

	// urlMask selects the 6 bits that index URLAlphabet.
	urlMask = byte(AlphabetLen - 1)
)
