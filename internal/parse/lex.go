// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package parse

import (
	"fmt"

	"github.com/google/shlex"
)

// Split breaks line into tokens with POSIX shell quoting and escaping rules on every
// platform. A '#' outside quotes starts a comment running to the end of the line.
func Split(line string) ([]string, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("splitting %q: %w", line, err)
	}
	return tokens, nil
}
