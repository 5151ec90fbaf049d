package pkg

import (
	"bufio"
	"errors"
	"io"
)

var ErrLineTooLong = errors.New("line is too long")

// ReadLine returns the next line from reader without its line ending.
// A line longer than limit bytes is consumed to its end and reported as ErrLineTooLong,
// so the following call starts on the next line. io.EOF is returned once input is exhausted.
func ReadLine(reader *bufio.Reader, limit int) (string, error) {
	var (
		line    []byte
		tooLong bool
	)

	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(line) > 0 || tooLong) {
				break
			}

			return "", err
		}

		if !tooLong {
			line = append(line, chunk...)
			if len(line) > limit {
				tooLong = true
				line = nil
			}
		}

		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", ErrLineTooLong
	}

	return string(line), nil
}
