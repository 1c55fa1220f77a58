// This file is part of luar-sub001 - https://github.com/Malien/luar-sub001
//
// Copyright 2024 The luar-sub001 Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	charBackspace = 0x7f
	charCtrlH     = 0x08
	charCtrlD     = 0x04
)

// lineReader reads one line at a time from a REPL's input, in either raw
// (char-by-char, self-echoing) or cooked (bufio.Scanner) mode.
type lineReader struct {
	raw bool
	in  *bufio.Reader
	out io.Writer

	cooked *bufio.Scanner
}

func newLineReader(raw bool, in io.Reader, out io.Writer) *lineReader {
	if raw {
		return &lineReader{raw: true, in: bufio.NewReader(in), out: out}
	}
	return &lineReader{cooked: bufio.NewScanner(in)}
}

// readLine returns the next line, stripped of its terminator. err is
// io.EOF when the input stream ends; in raw mode, CTRL-D on an empty line
// returns an error wrapping io.EOF.
func (l *lineReader) readLine() (string, error) {
	if !l.raw {
		if !l.cooked.Scan() {
			if err := l.cooked.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return l.cooked.Text(), nil
	}
	var buf []byte
	for {
		b, err := l.in.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case charCtrlD:
			if len(buf) == 0 {
				return "", errors.Wrap(io.EOF, "caught CTRL-D")
			}
		case '\r', '\n':
			io.WriteString(l.out, "\r\n")
			return string(buf), nil
		case charBackspace, charCtrlH:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				io.WriteString(l.out, "\b \b")
			}
		default:
			buf = append(buf, b)
			l.out.Write([]byte{b})
		}
	}
}
