// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package completion

import (
	"fmt"
	"strings"
)

// ZshGenerator renders a zsh completion function with descriptions
type ZshGenerator struct{}

func (g *ZshGenerator) Generate(programName string, data Data) string {
	fn := funcName(programName)
	var script strings.Builder

	fmt.Fprintf(&script, "#compdef %s\n", programName)

	fmt.Fprintf(&script, "\n__%s_children() {\n    case \"$1\" in\n", fn)
	for _, c := range data.All() {
		if len(c.Subcommands) == 0 {
			continue
		}
		items := make([]string, 0, len(c.Subcommands))
		for _, sub := range c.Subcommands {
			items = append(items, zshItem(sub, data.description(childKey(c.Key(), sub))))
		}
		fmt.Fprintf(&script, "        %s) reply=( %s ) ;;\n", zshPattern(c.Key()), strings.Join(items, " "))
	}
	script.WriteString("        *) reply=() ;;\n    esac\n}\n")

	fmt.Fprintf(&script, "\n__%s_flags() {\n    case \"$1\" in\n", fn)
	for _, c := range data.All() {
		var items []string
		for _, f := range c.Flags {
			for _, s := range f.Spellings() {
				items = append(items, zshItem(s, f.Description))
			}
		}
		if len(items) > 0 {
			fmt.Fprintf(&script, "        %s) reply=( %s ) ;;\n", zshPattern(c.Key()), strings.Join(items, " "))
		}
	}
	script.WriteString("        *) reply=() ;;\n    esac\n}\n")

	fmt.Fprintf(&script, "\n__%s_values() {\n    case \"$1\" in\n", fn)
	for _, c := range data.All() {
		for _, f := range c.Flags {
			if len(f.Values) == 0 {
				continue
			}
			values := make([]string, len(f.Values))
			for i, v := range f.Values {
				values[i] = "'" + quoteZsh(v) + "'"
			}
			fmt.Fprintf(&script, "        %s) reply=( %s ) ;;\n", zshFlagPattern(c.Key(), f), strings.Join(values, " "))
		}
	}
	script.WriteString("        *) reply=() ;;\n    esac\n}\n")

	fmt.Fprintf(&script, "\n__%s_takes_value() {\n    case \"$1\" in\n", fn)
	for _, c := range data.All() {
		for _, f := range c.Flags {
			if f.TakesValue {
				fmt.Fprintf(&script, "        %s) return 0 ;;\n", zshFlagPattern(c.Key(), f))
			}
		}
	}
	script.WriteString("    esac\n    return 1\n}\n")

	script.WriteString(strings.ReplaceAll(zshMain, "@@", fn))
	return script.String()
}

const zshMain = `
_@@() {
    local cmdpath="" word prev skip=0 i
    local -a reply

    for (( i = 2; i < CURRENT; i++ )); do
        word="${words[i]}"
        if (( skip )); then
            skip=0
            continue
        fi
        if [[ "$word" == -* ]]; then
            if [[ "$word" != *=* ]] && __@@_takes_value "$cmdpath@$word"; then
                skip=1
            fi
            continue
        fi
        __@@_children "$cmdpath"
        if (( ${reply[(I)${word}:*]} )); then
            cmdpath="${cmdpath:+$cmdpath }$word"
        fi
    done

    prev="${words[CURRENT-1]}"
    if (( CURRENT > 2 )) && __@@_takes_value "$cmdpath@$prev"; then
        __@@_values "$cmdpath@$prev"
        compadd -a reply
        return
    fi
    if [[ "${words[CURRENT]}" == -* ]]; then
        __@@_flags "$cmdpath"
        _describe -t options 'options' reply
        return
    fi
    __@@_children "$cmdpath"
    _describe -t commands 'commands' reply
}

_@@ "$@"
`

func zshItem(name, desc string) string {
	if desc == "" {
		return "'" + escapeZsh(name) + "'"
	}
	return "'" + escapeZsh(name) + ":" + quoteZsh(desc) + "'"
}

func zshPattern(key string) string {
	return `"` + strings.ReplaceAll(key, `"`, `\"`) + `"`
}

func zshFlagPattern(key string, f Flag) string {
	patterns := make([]string, 0, 2)
	for _, s := range f.Spellings() {
		patterns = append(patterns, zshPattern(key+"@"+s))
	}
	return strings.Join(patterns, "|")
}
