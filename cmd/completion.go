package cmd

import (
	"fmt"
	"strings"
)

// completionCommand prints a completion script for shell.
func completionCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: completion <bash|zsh|fish|powershell>")
	}
	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	case "powershell", "pwsh":
		fmt.Print(powershellCompletion)
	default:
		return fmt.Errorf("unsupported shell %q (want bash, zsh, fish, or powershell)", args[0])
	}
	return nil
}

const commandWords = "stats cal rate unrate task ws export tui config completion version help"

var bashCompletion = `# dayrate bash completion
_dayrate() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    case "$prev" in
        task)
            COMPREPLY=($(compgen -W "ls add edit rm" -- "$cur")); return ;;
        ws)
            COMPREPLY=($(compgen -W "ls add rm" -- "$cur")); return ;;
        config)
            COMPREPLY=($(compgen -W "show example path" -- "$cur")); return ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur")); return ;;
    esac
    if [[ $COMP_CWORD -eq 1 ]]; then
        COMPREPLY=($(compgen -W "` + commandWords + `" -- "$cur"))
    fi
}
complete -F _dayrate dayrate
`

var zshCompletion = `#compdef dayrate
_dayrate() {
    local -a commands
    commands=(` + commandWords + `)
    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi
    case "$words[2]" in
        task) _values 'action' ls add edit rm ;;
        ws) _values 'action' ls add rm ;;
        config) _values 'action' show example path ;;
        completion) _values 'shell' bash zsh fish powershell ;;
    esac
}
compdef _dayrate dayrate
`

var fishCompletion = `# dayrate fish completion
complete -c dayrate -f
complete -c dayrate -n "__fish_use_subcommand" -a "` + commandWords + `"
complete -c dayrate -n "__fish_seen_subcommand_from task" -a "ls add edit rm"
complete -c dayrate -n "__fish_seen_subcommand_from ws" -a "ls add rm"
complete -c dayrate -n "__fish_seen_subcommand_from config" -a "show example path"
complete -c dayrate -n "__fish_seen_subcommand_from completion" -a "bash zsh fish powershell"
`

var powershellCompletion = `# dayrate PowerShell completion
Register-ArgumentCompleter -Native -CommandName dayrate -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }
    $candidates = '` + strings.Join(strings.Fields(commandWords), "','") + `'
    if ($words.Count -gt 2 -or ($words.Count -eq 2 -and $wordToComplete -eq '')) {
        switch ($words[1]) {
            'task' { $candidates = 'ls','add','edit','rm' }
            'ws' { $candidates = 'ls','add','rm' }
            'config' { $candidates = 'show','example','path' }
            'completion' { $candidates = 'bash','zsh','fish','powershell' }
            default { $candidates = @() }
        }
    }
    $candidates | Where-Object { $_ -like "$wordToComplete*" } |
        ForEach-Object { [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_) }
}
`
