package base

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrLineBreak is returned when a value to send contains a line break,
// which the newline framing of the protocol cannot represent
var ErrLineBreak = errors.New("line must not contain a line break")

// readLine reads one newline terminated line and strips the terminator ("\n" or "\r\n").
// A final line without terminator is returned as a line, the next call then reports io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// writeLine writes line followed by a newline and flushes the writer
func writeLine(w *bufio.Writer, line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("%w: %q", ErrLineBreak, line)
	}
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
