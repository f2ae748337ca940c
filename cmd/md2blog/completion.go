package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	FileGlob string
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion hints. Flag names, types and
// descriptions come from the FlagSets.
type completionMeta struct {
	FileGlob string
	IsDir    bool
}

var flagCompletionMeta = map[string]completionMeta{
	"config":     {FileGlob: "*.yaml,*.yml"},
	"index":      {FileGlob: "*.json"},
	"content":    {IsDir: true},
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// commandDescriptions lists commands in help order.
var commandDescriptions = []struct{ name, desc string }{
	{"build", "Write the post index and render every article"},
	{"index", "Write the post index"},
	{"render", "Render every article to HTML"},
	{"serve", "Serve the built blog with the app shell"},
	{"toc", "Print or fill the table of contents of a rendered article"},
	{"inspect", "Open a post in a headless browser and report reading state"},
	{"doctor", "Check configuration, directories and browser"},
	{"completion", "Generate shell completion script"},
	{"version", "Show version information"},
	{"help", "Show help for a command"},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// sorted by name.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// getCommands returns the command registry for completion. Flags come from
// the same FlagSets the commands parse with.
func getCommands() []commandDef {
	cmds := make([]commandDef, 0, len(commandDescriptions))
	for _, c := range commandDescriptions {
		def := commandDef{Name: c.name, Desc: c.desc}
		switch c.name {
		case "index", "render", "build", "serve", "toc", "inspect", "doctor":
			fs := newFlagSet(c.name, &cmdFlags{}, func(io.Writer) {}, io.Discard)
			def.Flags = extractFlagsFromFlagSet(fs)
		}
		cmds = append(cmds, def)
	}
	return cmds
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func flagWords(c commandDef) string {
	var words []string
	for _, f := range c.Flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for md2blog\n")
	b.WriteString("_md2blog_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	dirFlags, fileFlags := []string{}, map[string][]string{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			switch f.Type {
			case flagDir:
				dirFlags = appendUnique(dirFlags, "--"+f.Long)
			case flagFile:
				fileFlags[f.FileGlob] = appendUnique(fileFlags[f.FileGlob], "--"+f.Long)
			}
		}
	}
	if len(dirFlags) > 0 {
		fmt.Fprintf(&b, "        %s)\n", strings.Join(dirFlags, "|"))
		b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
		b.WriteString("            return\n            ;;\n")
	}
	for _, glob := range sortedKeys(fileFlags) {
		exts := strings.ReplaceAll(strings.ReplaceAll(glob, "*.", ""), ",", "|")
		fmt.Fprintf(&b, "        %s)\n", strings.Join(fileFlags[glob], "|"))
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\"))\n", exts)
		b.WriteString("            return\n            ;;\n")
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("        completion)\n")
			b.WriteString("            COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"${cur}\"))\n")
			b.WriteString("            ;;\n")
		case c.Name == "help":
			b.WriteString("        help)\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
			b.WriteString("            ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "        %s)\n", c.Name)
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", flagWords(c))
			b.WriteString("            ;;\n")
		}
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _md2blog_completions md2blog\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef md2blog\n\n")
	b.WriteString("_md2blog() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("        completion)\n            _values 'shell' bash zsh fish powershell\n            ;;\n")
		case c.Name == "help":
			b.WriteString("        help)\n            _describe 'command' commands\n            ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "        %s)\n", c.Name)
			b.WriteString("            _arguments \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "                '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), zshAction(f))
			}
			b.WriteString("                '*:file:_files'\n")
			b.WriteString("            ;;\n")
		}
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2blog md2blog\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagDir:
		return ":directory:_directories"
	case flagFile:
		globs := strings.Split(f.FileGlob, ",")
		return fmt.Sprintf(":file:_files -g \"%s\"", strings.Join(globs, " "))
	default:
		return ":value:"
	}
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for md2blog\n\n")
	b.WriteString("function __fish_md2blog_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_md2blog_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c md2blog -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2blog -n __fish_md2blog_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("complete -c md2blog -n '__fish_md2blog_using_command completion' -a 'bash zsh fish powershell'\n")
	fmt.Fprintf(&b, "complete -c md2blog -n '__fish_md2blog_using_command help' -a '%s'\n", commandNames(cmds))

	for _, c := range cmds {
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c md2blog -n '__fish_md2blog_using_command %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagBool:
			case flagDir:
				b.WriteString(" -r -a '(__fish_complete_directories)'")
			case flagFile:
				b.WriteString(" -r -F")
			default:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# PowerShell completion for md2blog\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2blog -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	b.WriteString("    }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if c.Name == "completion" {
			b.WriteString("        'completion' = @('bash', 'zsh', 'fish', 'powershell')\n")
			continue
		}
		if len(c.Flags) == 0 {
			continue
		}
		words := strings.Fields(flagWords(c))
		for i := range words {
			words[i] = "'" + words[i] + "'"
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(words, ", "))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    if ($elements.Count -le 1 -or ($elements.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | Sort-Object Key | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    if ($flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    eval \"$(md2blog completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2blog completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2blog completion fish > ~/.config/fish/completions/md2blog.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell (add to $PROFILE):")
	fmt.Fprintln(w, "    md2blog completion powershell | Out-String | Invoke-Expression")
}
