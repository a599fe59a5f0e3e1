// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package completion

import (
	"fmt"
	"strings"
)

// FishGenerator renders fish completions with descriptions
type FishGenerator struct{}

func (g *FishGenerator) Generate(programName string, data Data) string {
	fn := funcName(programName)
	var script strings.Builder

	fmt.Fprintf(&script, "function __%s_children\n    switch \"$argv[1]\"\n", fn)
	for _, c := range data.All() {
		if len(c.Subcommands) == 0 {
			continue
		}
		fmt.Fprintf(&script, "        case %s\n", fishQuote(c.Key()))
		for _, sub := range c.Subcommands {
			fmt.Fprintf(&script, "            echo %s\n", fishQuote(sub))
		}
	}
	script.WriteString("    end\nend\n\n")

	fmt.Fprintf(&script, "function __%s_takes_value\n    switch \"$argv[1]\"\n", fn)
	for _, c := range data.All() {
		var patterns []string
		for _, f := range c.Flags {
			if !f.TakesValue {
				continue
			}
			for _, s := range f.Spellings() {
				patterns = append(patterns, fishQuote(c.Key()+"@"+s))
			}
		}
		if len(patterns) > 0 {
			fmt.Fprintf(&script, "        case %s\n            return 0\n", strings.Join(patterns, " "))
		}
	}
	script.WriteString("    end\n    return 1\nend\n")

	script.WriteString(strings.ReplaceAll(fishMain, "@@", fn))

	fmt.Fprintf(&script, "\ncomplete -c %s -f\n", programName)
	for _, c := range data.All() {
		cond := fmt.Sprintf("__%s_path_is %s", fn, fishQuote(c.Key()))
		for _, sub := range c.Subcommands {
			fmt.Fprintf(&script, "complete -c %s -n %s -a %s -d %s\n",
				programName, fishQuote(cond), fishQuote(sub), fishQuote(data.description(childKey(c.Key(), sub))))
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c %s -n %s", programName, fishQuote(cond))
			if f.Long != "" {
				line += " -l " + f.Long
			}
			if f.Short != "" {
				line += " -s " + f.Short
			}
			if f.TakesValue {
				line += " -r"
			}
			if len(f.Values) > 0 {
				line += " -a " + fishQuote(strings.Join(f.Values, " "))
			}
			if f.Description != "" {
				line += " -d " + fishQuote(f.Description)
			}
			script.WriteString(line + "\n")
		}
	}

	return script.String()
}

const fishMain = `
function __@@_path
    set -l tokens (commandline -opc)
    set -e tokens[1]
    set -l cmdpath ""
    set -l skip 0
    for tok in $tokens
        if test $skip -eq 1
            set skip 0
            continue
        end
        if string match -q -- '-*' $tok
            if not string match -q -- '*=*' $tok; and __@@_takes_value "$cmdpath@$tok"
                set skip 1
            end
            continue
        end
        if contains -- $tok (__@@_children "$cmdpath")
            if test -z "$cmdpath"
                set cmdpath $tok
            else
                set cmdpath "$cmdpath $tok"
            end
        end
    end
    echo $cmdpath
end

function __@@_path_is
    set -l current (__@@_path)
    test "$current" = "$argv[1]"
end
`

func fishQuote(s string) string {
	return "'" + escapeFish(s) + "'"
}
