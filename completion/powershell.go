// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package completion

import (
	"fmt"
	"strings"
)

// PowerShellGenerator renders a native argument completer with tooltips
type PowerShellGenerator struct{}

func (g *PowerShellGenerator) Generate(programName string, data Data) string {
	var script strings.Builder

	fmt.Fprintf(&script, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", psQuote(programName))
	script.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	script.WriteString("    $children = @{\n")
	for _, c := range data.All() {
		if len(c.Subcommands) > 0 {
			fmt.Fprintf(&script, "        %s = @(%s)\n", psQuote(c.Key()), psList(c.Subcommands))
		}
	}
	script.WriteString("    }\n")

	script.WriteString("    $flags = @{\n")
	for _, c := range data.All() {
		if spellings := allSpellings(c); len(spellings) > 0 {
			fmt.Fprintf(&script, "        %s = @(%s)\n", psQuote(c.Key()), psList(spellings))
		}
	}
	script.WriteString("    }\n")

	script.WriteString("    $values = @{\n")
	var takesValue []string
	for _, c := range data.All() {
		for _, f := range c.Flags {
			for _, s := range f.Spellings() {
				key := c.Key() + "@" + s
				if f.TakesValue {
					takesValue = append(takesValue, key)
				}
				if len(f.Values) > 0 {
					fmt.Fprintf(&script, "        %s = @(%s)\n", psQuote(key), psList(f.Values))
				}
			}
		}
	}
	script.WriteString("    }\n")
	fmt.Fprintf(&script, "    $takesValue = @(%s)\n", psList(takesValue))

	script.WriteString("    $tips = @{\n")
	for _, c := range data.Commands {
		if c.Description != "" {
			fmt.Fprintf(&script, "        %s = %s\n", psQuote(c.Key()), psQuote(c.Description))
		}
	}
	for _, c := range data.All() {
		for _, f := range c.Flags {
			if f.Description == "" {
				continue
			}
			for _, s := range f.Spellings() {
				fmt.Fprintf(&script, "        %s = %s\n", psQuote(c.Key()+"@"+s), psQuote(f.Description))
			}
		}
	}
	script.WriteString("    }\n")

	script.WriteString(powerShellMain)
	return script.String()
}

const powerShellMain = `
    $words = @($commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() })
    if ($wordToComplete -ne '' -and $words.Count -gt 0) {
        $words = @($words | Select-Object -SkipLast 1)
    }

    $cmdpath = ''
    $prev = ''
    $skip = $false
    foreach ($word in $words) {
        $prev = $word
        if ($skip) { $skip = $false; continue }
        if ($word.StartsWith('-')) {
            if (-not $word.Contains('=') -and $takesValue -contains "$cmdpath@$word") { $skip = $true }
            continue
        }
        if ($children[$cmdpath] -contains $word) {
            $cmdpath = if ($cmdpath) { "$cmdpath $word" } else { $word }
        }
    }

    $kind = 'ParameterValue'
    if ($prev -and $takesValue -contains "$cmdpath@$prev") {
        $candidates = $values["$cmdpath@$prev"]
    } elseif ($wordToComplete.StartsWith('-')) {
        $candidates = $flags[$cmdpath]
        $kind = 'ParameterName'
    } else {
        $candidates = $children[$cmdpath]
        $kind = 'Command'
    }

    $candidates | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        $key = switch ($kind) {
            'Command' { if ($cmdpath) { "$cmdpath $_" } else { $_ } }
            'ParameterName' { "$cmdpath@$_" }
            default { '' }
        }
        $tip = $tips[$key]
        if (-not $tip) { $tip = $_ }
        [System.Management.Automation.CompletionResult]::new($_, $_, $kind, $tip)
    }
}
`

func psQuote(s string) string {
	return "'" + escapePowerShell(s) + "'"
}

func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = psQuote(item)
	}
	return strings.Join(quoted, ", ")
}
