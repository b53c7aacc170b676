package summary

import "github.com/atotto/clipboard"

// Clipboard receives copied summaries
type Clipboard interface {
	Available() bool
	WriteText(text string) error
}

// SystemClipboard is the host clipboard. It is unavailable on headless
// machines without xsel, xclip or wl-clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

func (SystemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}
