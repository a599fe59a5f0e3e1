// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package completion

import (
	"fmt"
	"strings"
)

// BashGenerator renders a bash completion function. Bash shows no descriptions.
type BashGenerator struct{}

func (g *BashGenerator) Generate(programName string, data Data) string {
	fn := funcName(programName)
	var script strings.Builder

	script.WriteString("#!/bin/bash\n")

	// sub-commands per command path
	fmt.Fprintf(&script, "\n__%s_children() {\n    case \"$1\" in\n", fn)
	for _, c := range data.All() {
		if len(c.Subcommands) == 0 {
			continue
		}
		fmt.Fprintf(&script, "        %s) echo \"%s\" ;;\n", bashPattern(c.Key()), escapeBash(strings.Join(c.Subcommands, " ")))
	}
	script.WriteString("    esac\n}\n")

	fmt.Fprintf(&script, "\n__%s_flags() {\n    case \"$1\" in\n", fn)
	for _, c := range data.All() {
		if spellings := allSpellings(c); len(spellings) > 0 {
			fmt.Fprintf(&script, "        %s) echo \"%s\" ;;\n", bashPattern(c.Key()), strings.Join(spellings, " "))
		}
	}
	script.WriteString("    esac\n}\n")

	fmt.Fprintf(&script, "\n__%s_values() {\n    case \"$1\" in\n", fn)
	for _, c := range data.All() {
		for _, f := range c.Flags {
			if len(f.Values) == 0 {
				continue
			}
			fmt.Fprintf(&script, "        %s) echo \"%s\" ;;\n", bashFlagPattern(c.Key(), f), escapeBash(strings.Join(f.Values, " ")))
		}
	}
	script.WriteString("    esac\n}\n")

	fmt.Fprintf(&script, "\n__%s_takes_value() {\n    case \"$1\" in\n", fn)
	for _, c := range data.All() {
		for _, f := range c.Flags {
			if f.TakesValue {
				fmt.Fprintf(&script, "        %s) return 0 ;;\n", bashFlagPattern(c.Key(), f))
			}
		}
	}
	script.WriteString("    esac\n    return 1\n}\n")

	script.WriteString(strings.NewReplacer("@@", fn, "__PROG__", programName).Replace(bashMain))
	return script.String()
}

const bashMain = `
__@@_completion() {
    local cur prev cmdpath word child i skip=0
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev=""
    (( COMP_CWORD > 1 )) && prev="${COMP_WORDS[COMP_CWORD-1]}"
    cmdpath=""

    for ((i=1; i < COMP_CWORD; i++)); do
        word="${COMP_WORDS[i]}"
        if (( skip )); then
            skip=0
            continue
        fi
        if [[ "$word" == -* ]]; then
            [[ "$word" != *=* ]] && __@@_takes_value "$cmdpath@$word" && skip=1
            continue
        fi
        for child in $(__@@_children "$cmdpath"); do
            if [[ "$child" == "$word" ]]; then
                cmdpath="${cmdpath:+$cmdpath }$word"
                break
            fi
        done
    done

    if [[ -n "$prev" ]] && __@@_takes_value "$cmdpath@$prev"; then
        COMPREPLY=( $(compgen -W "$(__@@_values "$cmdpath@$prev")" -- "$cur") )
        return
    fi
    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$(__@@_flags "$cmdpath")" -- "$cur") )
        return
    fi
    COMPREPLY=( $(compgen -W "$(__@@_children "$cmdpath")" -- "$cur") )
}

complete -F __@@_completion __PROG__
`

func bashPattern(key string) string {
	return `"` + escapeBash(key) + `"`
}

func bashFlagPattern(key string, f Flag) string {
	patterns := make([]string, 0, 2)
	for _, s := range f.Spellings() {
		patterns = append(patterns, bashPattern(key+"@"+s))
	}
	return strings.Join(patterns, "|")
}
