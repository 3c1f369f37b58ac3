package jtable

import (
	"errors"
	"strings"
)

// CauseChain flattens err into one message per line, outermost first and
// innermost last. Each level contributes only its own text: for
// fmt.Errorf("outer: %w", errors.New("inner")) the result is "outer\ninner".
// Joined errors contribute the chain of every branch.
func CauseChain(err error) string {
	return strings.Join(causes(err), "\n")
}

func causes(err error) []string {
	var lines []string
	for err != nil {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			own := ownMessage(err, "")
			if own != "" && !isJoinText(err, joined.Unwrap()) {
				lines = append(lines, own)
			}
			for _, branch := range joined.Unwrap() {
				lines = append(lines, causes(branch)...)
			}
			return lines
		}
		inner := errors.Unwrap(err)
		innerText := ""
		if inner != nil {
			innerText = inner.Error()
		}
		if own := ownMessage(err, innerText); own != "" && own != innerText {
			lines = append(lines, own)
		}
		err = inner
	}
	return lines
}

// ownMessage strips the text of the wrapped error from the text of err.
func ownMessage(err error, inner string) string {
	msg := err.Error()
	if inner != "" {
		msg = strings.TrimSuffix(msg, inner)
		msg = strings.TrimRight(msg, " ")
		msg = strings.TrimSuffix(msg, ":")
	}
	return strings.TrimSpace(msg)
}

func isJoinText(err error, branches []error) bool {
	texts := make([]string, 0, len(branches))
	for _, b := range branches {
		if b != nil {
			texts = append(texts, b.Error())
		}
	}
	return err.Error() == strings.Join(texts, "\n")
}
